// Package pool recycles the demo renderer's per-frame allocations: string
// builders for window titles and lipgloss layer slices for the canvas.
package pool

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

// layerSliceCap is the starting capacity of pooled layer slices, enough for
// a typical count of simultaneously tiled windows.
const layerSliceCap = 16

var builders = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return builders.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	builders.Put(sb)
}

var layerSlices = sync.Pool{
	New: func() any {
		s := make([]*lipgloss.Layer, 0, layerSliceCap)
		return &s
	},
}

// GetLayerSlice returns an empty layer slice with pre-grown capacity.
func GetLayerSlice() *[]*lipgloss.Layer {
	return layerSlices.Get().(*[]*lipgloss.Layer)
}

// PutLayerSlice truncates layers and returns it to the pool.
func PutLayerSlice(layers *[]*lipgloss.Layer) {
	*layers = (*layers)[:0]
	layerSlices.Put(layers)
}
