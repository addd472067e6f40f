// Package tui is the interactive R0 scrubber: arrow keys step through the
// swept R0 values and the epidemic curves redraw in place.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mohar-s/episweep/internal/metrics"
	"github.com/mohar-s/episweep/internal/sweep"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	blue   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

type Model struct {
	ds     sweep.Dataset
	r0s    []float64
	idx    int
	width  int
	height int
}

// NewScrubber builds the scrubber over a finished dataset. The initially
// selected series is the maximum R0, chosen by index so float rounding in
// the generated R0 list cannot miss it.
func NewScrubber(ds sweep.Dataset) Model {
	r0s := ds.R0Values()
	idx := 0
	for i, v := range r0s {
		if v > r0s[idx] {
			idx = i
		}
	}
	return Model{ds: ds, r0s: r0s, idx: idx, width: 100, height: 30}
}

// Selected returns the currently selected R0 value.
func (m Model) Selected() float64 {
	if len(m.r0s) == 0 {
		return 0
	}
	return m.r0s[m.idx]
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "escape":
			return m, tea.Quit
		case "left", "h":
			if m.idx > 0 {
				m.idx--
			}
		case "right", "l":
			if m.idx < len(m.r0s)-1 {
				m.idx++
			}
		case "home", "g":
			m.idx = 0
		case "end", "G":
			m.idx = len(m.r0s) - 1
		}
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.r0s) == 0 {
		return dim.Render("empty dataset")
	}

	series := m.ds.Series(m.Selected())
	sum := metrics.Summarize(series)

	s := make([]float64, len(series))
	i := make([]float64, len(series))
	r := make([]float64, len(series))
	for k, smp := range series {
		s[k] = smp.S
		i[k] = smp.I
		r[k] = smp.R
	}

	plotWidth := m.width - 14
	if plotWidth < 30 {
		plotWidth = 30
	}
	plotHeight := m.height - 10
	if plotHeight < 8 {
		plotHeight = 8
	}
	if plotHeight > 18 {
		plotHeight = 18
	}

	graph := asciigraph.PlotMany(
		[][]float64{s, i, r},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red, asciigraph.Green),
		asciigraph.Caption(fmt.Sprintf("day 0..%.0f", series[len(series)-1].T)),
	)

	var sb strings.Builder
	sb.WriteString(cyan.Render("episweep") + dim.Render("  ←/→ scrub R0  g/G ends  q quit") + "\n\n")
	sb.WriteString(m.slider() + "\n\n")
	sb.WriteString(graph + "\n\n")
	sb.WriteString(fmt.Sprintf("%s  %s  %s\n",
		blue.Render("S susceptible"), red.Render("I infected"), green.Render("R recovered")))
	sb.WriteString(fmt.Sprintf("peak I %s on day %s    attack rate %s\n",
		yellow.Render(fmt.Sprintf("%.0f", sum.PeakI)),
		white.Render(fmt.Sprintf("%.0f", sum.PeakDay)),
		yellow.Render(fmt.Sprintf("%.1f%%", sum.AttackRate*100))))
	return sb.String()
}

// slider renders the R0 track with the selected value marked.
func (m Model) slider() string {
	track := make([]rune, len(m.r0s))
	for k := range track {
		track[k] = '─'
	}
	track[m.idx] = '●'

	lo := m.r0s[0]
	hi := m.r0s[len(m.r0s)-1]
	return fmt.Sprintf("%s %s %s   R0 = %s",
		dim.Render(fmt.Sprintf("%.1f", lo)),
		cyan.Render(string(track)),
		dim.Render(fmt.Sprintf("%.1f", hi)),
		white.Render(fmt.Sprintf("%.2f", m.Selected())))
}

// Run blocks until the user quits.
func Run(ds sweep.Dataset) error {
	p := tea.NewProgram(NewScrubber(ds), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
