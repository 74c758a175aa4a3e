package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/npratt/hush/internal/anim"
	"github.com/npratt/hush/internal/meditation"
)

const (
	// Rows above and below the circle on the meditation screen.
	headerRows    = 4 // padding, prompt, status, blank
	footerRows    = 4 // blank, progress, blank, help
	minCanvasRows = 5

	completeText    = "Yay! You did it! 🎉"
	instructionText = "Touch and hold the circle to begin"
	smiley          = "☺"
	diskCell        = "█"
)

// circle places the disk on screen. Terminal cells are about twice as tall
// as they are wide, so a radius of r rows spans 2r columns.
type circle struct {
	cx, cy int
	radius float64 // rows, at scale 1
}

func (c circle) contains(x, y int, scale float64) bool {
	dx := float64(x-c.cx) / 2
	dy := float64(y - c.cy)
	r := c.radius*scale + 0.5
	return dx*dx+dy*dy <= r*r
}

func progressWidth(width int) int {
	return max(10, min(60, width-10))
}

func (m model) canvasRows() int {
	return max(minCanvasRows, m.height-headerRows-footerRows)
}

// meditationCircle sizes the disk so that it still fits at its completion
// scale.
func (m model) meditationCircle() circle {
	rows := m.canvasRows()
	r := float64(rows-1) / 2 / meditation.CompleteScale
	if maxR := float64(m.width) / 4 / meditation.CompleteScale; r > maxR {
		r = maxR
	}
	r = math.Max(1, r)
	return circle{cx: m.width / 2, cy: headerRows + rows/2, radius: r}
}

// hitCircle reports whether the cell at x, y is on the circle as drawn.
func (m model) hitCircle(x, y int) bool {
	return m.meditationCircle().contains(x, y, m.engine.Value(anim.ParamScale))
}

// View implements tea.Model.
func (m model) View() string {
	if m.screen == screenMeditation {
		return m.viewMeditation()
	}
	return m.viewHome()
}

func (m model) center(s string) string {
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
}

func (m model) viewHome() string {
	rows := max(minCanvasRows, m.height-10)
	r := math.Min(float64(rows-1), float64(m.width)/4)
	hue := m.engine.Value(anim.ParamHue)
	glow := m.engine.Value(anim.ParamGlow)
	color := fadeHex(hueHex(hue), glow)

	lines := []string{
		"",
		m.center(styles.Title.Render("hush")),
		"",
	}
	lines = append(lines, renderDisk(m.width, rows, circle{cx: m.width / 2, cy: rows - 1, radius: r}, 1, color, "")...)
	lines = append(lines, "", m.center(styles.Button.Render("Begin")))
	if m.errText != "" {
		lines = append(lines, m.center(styles.Error.Render(m.errText)))
	}
	lines = append(lines, m.center(m.help.View(m.keys.forScreen(m.screen))))
	return strings.Join(lines, "\n")
}

func (m model) viewMeditation() string {
	s := m.session
	complete := s.state == meditation.StateComplete

	text := s.prompt.Text
	if complete {
		text = completeText
	}
	opacity := m.engine.Value(anim.ParamTextOpacity)
	prompt := styles.Prompt.Foreground(lipgloss.Color(fadeHex(s.prompt.Color, opacity))).Render(text)

	var status string
	switch s.state {
	case meditation.StateIdle:
		status = styles.Instruction.Render(instructionText)
	case meditation.StateActive:
		status = m.spinner.View() + styles.Timer.Render(fmt.Sprintf(" %d seconds", s.elapsed))
	}

	lines := []string{"", m.center(prompt), m.center(status), ""}

	c := m.meditationCircle()
	c.cy -= headerRows
	label := ""
	if complete {
		label = smiley
	}
	color := hueHex(m.engine.Value(anim.ParamHue))
	lines = append(lines, renderDisk(m.width, m.canvasRows(), c, m.engine.Value(anim.ParamScale), color, label)...)

	bar := ""
	if s.state != meditation.StateIdle {
		bar = m.progress.ViewAs(s.progress)
	}
	lines = append(lines, "", m.center(bar), "")

	if m.errText != "" {
		lines = append(lines, m.center(styles.Error.Render(m.errText)))
	}
	lines = append(lines, m.center(m.help.View(m.keys.forScreen(m.screen))))
	return strings.Join(lines, "\n")
}

// renderDisk draws rows lines of width cells with a filled disk centred on
// c, whose cy is relative to the first line. label is drawn in the middle of
// the centre row when it fits.
func renderDisk(width, rows int, c circle, scale float64, color, label string) []string {
	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	labelStyle := styles.Smiley.Background(lipgloss.Color(color))
	r := c.radius * scale

	out := make([]string, rows)
	for row := 0; row < rows; row++ {
		dy := float64(row - c.cy)
		if math.Abs(dy) > r {
			continue
		}
		half := int(math.Round(2 * math.Sqrt(r*r-dy*dy)))
		left := max(0, c.cx-half)
		right := min(width-1, c.cx+half)
		if right < left {
			continue
		}
		n := right - left + 1

		var b strings.Builder
		b.WriteString(strings.Repeat(" ", left))
		lw := lipgloss.Width(label)
		if row == c.cy && label != "" && n > lw+2 {
			pre := (n - lw) / 2
			b.WriteString(fill.Render(strings.Repeat(diskCell, pre)))
			b.WriteString(labelStyle.Render(label))
			b.WriteString(fill.Render(strings.Repeat(diskCell, n-pre-lw)))
		} else {
			b.WriteString(fill.Render(strings.Repeat(diskCell, n)))
		}
		out[row] = b.String()
	}
	return out
}
