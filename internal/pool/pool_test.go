package pool

import (
	"strconv"
	"sync"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestStringBuilderResetOnPut(t *testing.T) {
	sb := GetStringBuilder()
	sb.WriteString("window title [fullscreen]")
	if sb.Len() == 0 {
		t.Fatal("builder dropped its content")
	}
	PutStringBuilder(sb)

	sb = GetStringBuilder()
	defer PutStringBuilder(sb)
	if sb.Len() != 0 {
		t.Errorf("pooled builder holds %d stale bytes", sb.Len())
	}
}

func TestLayerSliceTruncatedOnPut(t *testing.T) {
	layers := GetLayerSlice()
	if cap(*layers) < layerSliceCap {
		t.Fatalf("fresh slice capacity = %d, want at least %d", cap(*layers), layerSliceCap)
	}

	// Grow past the seeded capacity, as a busy canvas would.
	for i := 0; i < layerSliceCap+4; i++ {
		*layers = append(*layers, lipgloss.NewLayer(strconv.Itoa(i)))
	}
	PutLayerSlice(layers)

	layers = GetLayerSlice()
	defer PutLayerSlice(layers)
	if len(*layers) != 0 {
		t.Errorf("pooled slice holds %d stale layers", len(*layers))
	}
}

// TestPoolsUnderConcurrentFrames drives both pools the way overlapping render
// frames would, checking no goroutine sees another's leftovers.
func TestPoolsUnderConcurrentFrames(t *testing.T) {
	const frames = 200
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			want := "frame " + strconv.Itoa(g)
			for i := 0; i < frames; i++ {
				sb := GetStringBuilder()
				layers := GetLayerSlice()
				sb.WriteString(want)
				*layers = append(*layers, lipgloss.NewLayer(sb.String()))
				if sb.String() != want || len(*layers) != 1 {
					t.Errorf("frame %d: builder %q, %d layers", i, sb.String(), len(*layers))
				}
				PutLayerSlice(layers)
				PutStringBuilder(sb)
			}
		}(g)
	}
	wg.Wait()
}

func BenchmarkStringBuilderReuse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		sb := GetStringBuilder()
		sb.WriteString("focused window title")
		_ = sb.String()
		PutStringBuilder(sb)
	}
}

func BenchmarkLayerSliceReuse(b *testing.B) {
	layer := lipgloss.NewLayer("w")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		layers := GetLayerSlice()
		for j := 0; j < layerSliceCap; j++ {
			*layers = append(*layers, layer)
		}
		PutLayerSlice(layers)
	}
}
