// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ik5/wavedit/editor"
	"github.com/ik5/wavedit/waveform"
)

// Theme defines the colors of the terminal waveform.
type Theme struct {
	Primary   lipgloss.Color
	Selection lipgloss.Color
	Playhead  lipgloss.Color
	Dim       lipgloss.Color
}

var DefaultTheme = Theme{
	Primary:   lipgloss.Color("#00e5ff"),
	Selection: lipgloss.Color("#264f78"),
	Playhead:  lipgloss.Color("#ff5f87"),
	Dim:       lipgloss.Color("#6e7681"),
}

// termSurface is a waveform.Surface made of terminal cells.
type termSurface struct {
	width, height int
	cells         [][]bool
}

var _ waveform.Surface = (*termSurface)(nil)

func newTermSurface(width, height int) *termSurface {
	s := &termSurface{width: max(width, 1), height: max(height, 1)}
	s.cells = make([][]bool, s.height)
	for y := range s.cells {
		s.cells[y] = make([]bool, s.width)
	}

	return s
}

func (s *termSurface) Size() (int, int) { return s.width, s.height }

func (s *termSurface) Clear() {
	for _, row := range s.cells {
		clear(row)
	}
}

// DrawSegments fills every cell a segment touches; a segment always
// covers at least one cell.
func (s *termSurface) DrawSegments(segs []waveform.Segment) {
	for _, seg := range segs {
		if seg.X < 0 || seg.X >= s.width {
			continue
		}

		top := int(math.Floor(min(seg.Y1, seg.Y2)))
		bottom := max(int(math.Ceil(max(seg.Y1, seg.Y2)))-1, top)
		top = min(max(top, 0), s.height-1)
		bottom = min(max(bottom, 0), s.height-1)

		for y := top; y <= bottom; y++ {
			s.cells[y][seg.X] = true
		}
	}
}

// Lines returns the plain cells, one string per row.
func (s *termSurface) Lines() []string {
	lines := make([]string, s.height)
	for y, row := range s.cells {
		var b strings.Builder
		for _, on := range row {
			if on {
				b.WriteRune('█')
			} else {
				b.WriteRune(' ')
			}
		}
		lines[y] = b.String()
	}

	return lines
}

// Render styles the cells with the selection and playhead of f and puts
// them in a titled box.
func (s *termSurface) Render(t Theme, title string, f editor.Frame) string {
	wave := lipgloss.NewStyle().Foreground(t.Primary)
	selected := wave.Background(t.Selection)
	playhead := lipgloss.NewStyle().Foreground(t.Playhead)

	head := -1
	if f.Loaded {
		head = min(int(f.Playhead), s.width-1)
	}

	rows := make([]string, s.height)
	for y, row := range s.cells {
		var b strings.Builder
		for x, on := range row {
			inSel := f.SelVisible && float64(x) >= math.Floor(f.SelLeft) && float64(x) < math.Ceil(f.SelRight)

			switch {
			case x == head && !on:
				b.WriteString(playhead.Render("│"))
			case on && inSel:
				b.WriteString(selected.Render("█"))
			case on:
				b.WriteString(wave.Render("█"))
			case inSel:
				b.WriteString(selected.Render(" "))
			default:
				b.WriteRune(' ')
			}
		}
		rows[y] = b.String()
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Render(title)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Render(strings.Join(rows, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, box, statusLine(t, f))
}

func statusLine(t Theme, f editor.Frame) string {
	dim := lipgloss.NewStyle().Foreground(t.Dim)

	parts := []string{
		f.TimeText + " / " + f.DurationText,
		"sel " + f.SelStartText + " - " + f.SelEndText + " (" + f.SelLengthText + ")",
		"zoom " + strconv.FormatFloat(f.Zoom, 'g', 4, 64) + "x",
		f.State.String(),
	}
	if f.Loop {
		parts = append(parts, "loop")
	}

	return dim.Render(strings.Join(parts, "  "))
}
