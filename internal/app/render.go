package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/mosaic/internal/geom"
	"github.com/Gaurav-Gosain/mosaic/internal/pool"
	"github.com/Gaurav-Gosain/mosaic/internal/shell"
	"github.com/Gaurav-Gosain/mosaic/internal/theme"
)

// GetCanvas composites every tiled window into a canvas of layers.
func (m *Compositor) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas()

	layersPtr := pool.GetLayerSlice()
	layers := (*layersPtr)[:0]
	defer pool.PutLayerSlice(layersPtr)

	focused := m.FocusedWindow()
	groupRect, hasGroup := m.FocusedGroupRect()
	z := 0
	for tile := range m.Layout.Mapped() {
		w, ok := tile.Element.(*shell.Window)
		if !ok {
			continue
		}

		geo, ok := m.Layout.ElementGeometry(w)
		if !ok {
			continue
		}
		if w.IsFullscreen() {
			geo = tile.Output.Geometry()
		}
		if geo.Size.W < 2 || geo.Size.H < 2 {
			continue
		}

		grouped := hasGroup && groupRect.ContainsRect(geo)
		layers = append(layers, m.renderWindow(w, geo, w == focused, grouped).
			X(geo.Loc.X).Y(geo.Loc.Y).Z(z).ID(w.ID()))
		z++
	}

	canvas.AddLayers(layers...)
	return canvas
}

// renderWindow draws one window box at its tiled geometry.
func (m *Compositor) renderWindow(w *shell.Window, geo geom.Rect, focused, grouped bool) *lipgloss.Layer {
	box := theme.WindowStyle(focused, w.IsFullscreen(), grouped).
		Width(geo.Size.W - 2).
		Height(geo.Size.H - 2)

	title := ""
	if m.Config.Demo.ShowTitles {
		sb := pool.GetStringBuilder()
		defer pool.PutStringBuilder(sb)
		titleColor := theme.TitleUnfocused()
		if focused {
			titleColor = theme.TitleFocused()
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(titleColor).Render(w.Title))
		if w.IsFullscreen() {
			sb.WriteString(" [fullscreen]")
		}
		title = sb.String()
	}

	return lipgloss.NewLayer(box.Render(title))
}

// statusBar renders the bottom hint row.
func (m *Compositor) statusBar() string {
	left := lipgloss.NewStyle().
		Foreground(theme.StatusBarAccent()).
		Background(theme.StatusBarBg()).
		Render(" n:new x:close arrows:focus g:group o:orient f:full q:quit ")

	right := lipgloss.NewStyle().
		Foreground(theme.StatusBarFg()).
		Background(theme.StatusBarBg()).
		Render(fmt.Sprintf(" %s ", m.status))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Width(gap).
		Render("")

	return left + filler + right
}

// View renders the tiled windows plus the status bar.
func (m *Compositor) View() tea.View {
	var view tea.View

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.GetCanvas().Render(),
		m.statusBar(),
	)
	view.SetContent(lipgloss.Sprint(content))
	view.AltScreen = true

	return view
}
