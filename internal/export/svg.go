package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mohar-s/episweep/internal/sweep"
)

var svgColors = map[string]string{
	"S": "#4a9eff",
	"I": "#ff5c5c",
	"R": "#58d68d",
}

// WriteSVG renders the S, I and R curves of one R0 series as polylines.
// The vertical scale runs from zero to the population so charts for
// different R0 values are directly comparable.
func WriteSVG(w io.Writer, series sweep.Dataset, width, height int) error {
	if len(series) < 2 {
		return fmt.Errorf("export: series too short to plot (%d samples)", len(series))
	}

	pop := series[0].S + series[0].I + series[0].R
	tMin := series[0].T
	tMax := series[len(series)-1].T
	span := tMax - tMin
	if span == 0 || pop == 0 {
		return fmt.Errorf("export: degenerate series")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<text x="10" y="20" fill="#cccccc" font-family="monospace" font-size="13">SIR epidemic, R0=%.2f</text>
`, width, height, width, height, series[0].R0))

	value := func(s sweep.Sample, name string) float64 {
		switch name {
		case "S":
			return s.S
		case "I":
			return s.I
		default:
			return s.R
		}
	}

	for _, name := range []string{"S", "I", "R"} {
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="`, svgColors[name]))
		for i, s := range series {
			x := (s.T - tMin) / span * float64(width)
			y := float64(height) - value(s, name)/pop*float64(height)
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
