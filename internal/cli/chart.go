package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

const barWidth = 40

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")).Italic(true)
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A3A"))
	nameStyle  = lipgloss.NewStyle().Width(9)
)

func sentimentStyle(s textanalysis.Sentiment) lipgloss.Style {
	switch s {
	case textanalysis.SentimentPositive:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true)
	case textanalysis.SentimentNegative:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true)
	default:
		return lipgloss.NewStyle().Bold(true)
	}
}

// renderBars draws one horizontal bar per emotion in declared order, scaled
// to width cells on the same 0..1 axis as the PNG chart.
func renderBars(d textanalysis.EmotionDistribution, width int) string {
	var b strings.Builder
	for _, s := range d.Ordered() {
		v := s.Score
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		filled := int(v*float64(width) + 0.5)

		c := textanalysis.EmotionColors[s.Emotion]
		bar := lipgloss.NewStyle().
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))).
			Render(strings.Repeat("█", filled))

		fmt.Fprintf(&b, "%s %s%s %.3f\n",
			nameStyle.Render(string(s.Emotion)),
			bar,
			trackStyle.Render(strings.Repeat("░", width-filled)),
			s.Score)
	}
	return b.String()
}
