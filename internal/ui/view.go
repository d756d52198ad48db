package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/atomicstack/paneldeck/internal/flow"
	"github.com/atomicstack/paneldeck/internal/format/table"
	"github.com/atomicstack/paneldeck/internal/layout"
	"github.com/atomicstack/paneldeck/internal/theme"
	"github.com/atomicstack/paneldeck/internal/window"
	"github.com/charmbracelet/x/ansi"
)

const (
	inspectorWidth    = 36
	inspectorMinTotal = 80
	// panels below this opacity are not drawn at all
	minVisibleAlpha = 0.02
	resetStyle      = "\x1b[0m"
)

// View implements tea.Model.
func (m *Model) View() string {
	cw, ch := m.canvasDims()
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader())

	canvas := m.renderCanvas(cw, ch)
	if m.mode == ModePicker {
		m.overlayPicker(canvas, cw, ch)
	}
	if iw := m.inspectorCols(); iw > 0 {
		side := m.inspectorLines(iw, ch)
		for i := range canvas {
			canvas[i] += styles.Inspector.Render(side[i])
		}
	}
	lines = append(lines, canvas...)
	lines = append(lines, m.footerLines()...)
	return strings.Join(lines, "\n")
}

func (m *Model) inspectorCols() int {
	if !m.inspector || m.width < inspectorMinTotal {
		return 0
	}
	return inspectorWidth
}

// canvasDims is the area panels are laid out in: the screen minus header,
// footer and the inspector column.
func (m *Model) canvasDims() (int, int) {
	w := m.width - m.inspectorCols()
	h := m.height - 1 - len(m.footerLines())
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (m *Model) canvasSize() layout.Size {
	w, h := m.canvasDims()
	return layout.Size{W: float64(w), H: float64(h)}
}

func (m *Model) renderHeader() string {
	if m.manager == nil {
		return styles.Header.Render(ansi.Truncate("paneldeck · no deck", m.width, "…"))
	}
	opts := m.manager.Options()
	parts := []string{"paneldeck", string(opts.Flow)}
	if m.manager.Container().Strategy().AllowWrap() {
		parts = append(parts, "wrap")
	}
	current := "none"
	if cur := m.manager.CurrentWindow(); cur != nil {
		current = cur.Name()
	}
	parts = append(parts, "current: "+current, fmt.Sprintf("active: %d", m.manager.ActiveCount()))
	if !m.manager.Animated() {
		parts = append(parts, "instant")
	}
	return styles.Header.Render(ansi.Truncate(strings.Join(parts, " · "), m.width, "…"))
}

func (m *Model) footerLines() []string {
	status := ""
	switch {
	case m.errMsg != "":
		status = styles.Error.Render(ansi.Truncate(m.errMsg, m.width, "…"))
	case m.currentInfo() != "":
		status = styles.Info.Render(ansi.Truncate(m.infoMsg, m.width, "…"))
	case m.backendLastErr != "":
		status = styles.Error.Render(ansi.Truncate(m.backendLastErr, m.width, "…"))
	}
	m.help.Width = m.width
	var helpView string
	if m.mode == ModePicker {
		helpView = m.help.View(m.pickerKeys)
	} else {
		helpView = m.help.View(m.keys)
	}
	lines := []string{status}
	return append(lines, strings.Split(helpView, "\n")...)
}

// renderCanvas draws every visible panel centred on its transform. The
// current window is drawn last so it stays on top.
func (m *Model) renderCanvas(width, height int) []string {
	canvas := make([]string, height)
	for i := range canvas {
		canvas[i] = strings.Repeat(" ", width)
	}
	if m.manager == nil {
		return canvas
	}
	current := m.manager.CurrentWindow()
	windows := m.manager.Windows()
	ordered := make([]*window.Window, 0, len(windows))
	for _, w := range windows {
		if w != current {
			ordered = append(ordered, w)
		}
	}
	if current != nil {
		ordered = append(ordered, current)
	}
	for _, w := range ordered {
		st := w.Snapshot()
		if st.Surface.Alpha < minVisibleAlpha {
			continue
		}
		box := renderPanel(st, w == current)
		bw := ansi.StringWidth(box[0])
		cx := float64(width)/2 + st.Transform.Position.X
		cy := float64(height)/2 + st.Transform.Position.Y
		x0 := int(math.Round(cx - float64(bw)/2))
		y0 := int(math.Round(cy - float64(len(box))/2))
		for i, line := range box {
			y := y0 + i
			if y < 0 || y >= height {
				continue
			}
			canvas[y] = overlay(canvas[y], line, x0, width)
		}
	}
	return canvas
}

// renderPanel renders a window as a bordered box sized by its scaled
// transform. Alpha fades the colours towards the backdrop.
func renderPanel(st window.State, focused bool) []string {
	size := st.Transform.Size.Scaled(st.Transform.Scale)
	pw := int(math.Round(size.W))
	ph := int(math.Round(size.H))
	if pw < 4 {
		pw = 4
	}
	if ph < 3 {
		ph = 3
	}
	iw, ih := pw-2, ph-2

	content := make([]string, 0, ih)
	content = append(content, styles.PanelTitle.Render(ansi.Truncate(st.Title, iw, "…")))
	for _, line := range st.Body {
		if len(content) >= ih {
			break
		}
		content = append(content, ansi.Truncate(line, iw, "…"))
	}
	if len(content) > ih {
		content = content[:ih]
	}

	border := theme.Fade(st.Surface.Alpha * 0.6)
	if focused {
		border = theme.FadeAccent(st.Surface.Alpha)
	}
	style := styles.Panel.
		Width(iw).
		Height(ih).
		MaxHeight(ph).
		BorderForeground(border).
		Foreground(theme.Fade(st.Surface.Alpha))
	return strings.Split(style.Render(strings.Join(content, "\n")), "\n")
}

// overlay writes top over base starting at column x, clipping both ends to
// width cells.
func overlay(base, top string, x, width int) string {
	tw := ansi.StringWidth(top)
	if x >= width || x+tw <= 0 {
		return base
	}
	if x < 0 {
		top = ansi.Cut(top, -x, tw)
		tw += x
		x = 0
	}
	if x+tw > width {
		top = ansi.Truncate(top, width-x, "")
		tw = width - x
	}
	left := ansi.Truncate(base, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	if strings.Contains(left, "\x1b") {
		left += resetStyle
	}
	right := ansi.Cut(base, x+tw, width)
	return left + top + right
}

func (m *Model) overlayPicker(canvas []string, width, height int) {
	if m.picker == nil {
		return
	}
	lines := []string{styles.PickerTitle.Render("Open window"), m.input.View()}
	start := m.picker.ViewportOffset
	end := start + maxPickerRows
	if end > len(m.picker.Items) {
		end = len(m.picker.Items)
	}
	if len(m.picker.Items) == 0 {
		lines = append(lines, styles.Disabled.Render(fmt.Sprintf("no matches for %q", m.picker.Filter)))
	}
	for i := start; i < end; i++ {
		item := m.picker.Items[i]
		text := item.ID
		if item.Label != "" && item.Label != item.ID {
			text += "  " + item.Label
		}
		if i == m.picker.Cursor {
			lines = append(lines, styles.PickerFocus.Render("› "+text))
		} else {
			lines = append(lines, styles.PickerItem.Render("  "+text))
		}
	}
	bw := width / 2
	if bw < 24 {
		bw = width
	}
	box := strings.Split(styles.Panel.Width(bw-2).Render(strings.Join(table.Fit(lines, bw-2), "\n")), "\n")
	x0 := (width - ansi.StringWidth(box[0])) / 2
	y0 := (height - len(box)) / 2
	for i, line := range box {
		if y := y0 + i; y >= 0 && y < height {
			canvas[y] = overlay(canvas[y], line, x0, width)
		}
	}
}

// inspectorLines lists every window's phase and transform, followed by the
// policy state, padded to height rows of width cells.
func (m *Model) inspectorLines(width, height int) []string {
	out := make([]string, 0, height)
	if m.manager != nil {
		rows := [][]string{{"window", "phase", "alpha", "x", "y"}}
		current := m.manager.CurrentWindow()
		for _, w := range m.manager.Windows() {
			st := w.Snapshot()
			name := st.Name
			if w == current {
				name = "*" + name
			}
			rows = append(rows, []string{
				name,
				st.Phase.String(),
				fmt.Sprintf("%.2f", st.Surface.Alpha),
				fmt.Sprintf("%.1f", st.Transform.Position.X),
				fmt.Sprintf("%.1f", st.Transform.Position.Y),
			})
		}
		aligns := []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight, table.AlignRight}
		out = append(out, table.Format(rows, aligns)...)
		out = append(out, "")
		strategy := m.manager.Container().Strategy()
		out = append(out, fmt.Sprintf("flow %s, wrap %t", strategy.Kind(), strategy.AllowWrap()))
		if stack, ok := strategy.(*flow.Stack); ok {
			names := make([]string, 0)
			for _, w := range stack.History() {
				names = append(names, w.Name())
			}
			if len(names) == 0 {
				out = append(out, "history empty")
			} else {
				out = append(out, "history "+strings.Join(names, " › "))
			}
		}
		if m.manager.Busy() {
			out = append(out, "transition in flight")
		}
	}
	out = table.Fit(out, width-1)
	for len(out) < height {
		out = append(out, "")
	}
	out = out[:height]
	for i, line := range out {
		if pad := width - 1 - ansi.StringWidth(line); pad > 0 {
			out[i] = line + strings.Repeat(" ", pad)
		}
	}
	return out
}
