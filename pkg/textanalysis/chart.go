package textanalysis

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	ChartWidth       = 640
	ChartHeight      = 360
	ChartContentType = "image/png"

	chartTitle  = "Emotion intensity"
	marginLeft  = 48
	marginRight = 24
	marginTop   = 36
	marginBot   = 40
)

// ChartArtifact is a rendered emotion chart.
type ChartArtifact struct {
	// Key identifies the distribution the chart was drawn from. Equal
	// distributions share a key.
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Data        []byte `json:"-"`
}

var (
	chartBackground = color.RGBA{0xff, 0xff, 0xff, 0xff}
	chartAxis       = color.RGBA{0x33, 0x33, 0x33, 0xff}
	chartGrid       = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	chartText       = color.RGBA{0x22, 0x22, 0x22, 0xff}

	// EmotionColors is shared with the terminal renderer.
	EmotionColors = map[Emotion]color.RGBA{
		EmotionHappy:    {0xf2, 0xc1, 0x2e, 0xff},
		EmotionSad:      {0x3b, 0x6e, 0xc4, 0xff},
		EmotionAngry:    {0xd6, 0x3a, 0x2f, 0xff},
		EmotionFear:     {0x7b, 0x4f, 0xa8, 0xff},
		EmotionSurprise: {0x2e, 0xa8, 0x6b, 0xff},
		EmotionNeutral:  {0x8c, 0x8c, 0x8c, 0xff},
	}
)

// DistributionKey is the hex SHA-256 of the distribution's canonical
// encoding: declared order, six decimal places.
func DistributionKey(d EmotionDistribution) string {
	parts := make([]string, 0, len(AllEmotions))
	for _, s := range d.Ordered() {
		parts = append(parts, fmt.Sprintf("%s=%.6f", s.Emotion, clampUnit(s.Score)))
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, ";")))
	return hex.EncodeToString(sum[:])
}

// PlotEmotions draws one bar per category, in declared order, on a fixed
// 0..1 axis. An all-zero distribution yields a chart with empty bars.
func PlotEmotions(d EmotionDistribution) (*ChartArtifact, error) {
	img := image.NewRGBA(image.Rect(0, 0, ChartWidth, ChartHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(chartBackground), image.Point{}, draw.Src)

	plot := image.Rect(marginLeft, marginTop, ChartWidth-marginRight, ChartHeight-marginBot)

	drawText(img, chartTitle, (ChartWidth-textWidth(chartTitle))/2, marginTop-14, chartText)

	for i := 0; i <= 4; i++ {
		v := float64(i) / 4
		y := plot.Max.Y - int(v*float64(plot.Dy()))
		fill(img, image.Rect(plot.Min.X, y, plot.Max.X, y+1), chartGrid)
		lbl := fmt.Sprintf("%.2f", v)
		drawText(img, lbl, plot.Min.X-6-textWidth(lbl), y+4, chartText)
	}

	slot := plot.Dx() / len(AllEmotions)
	barWidth := slot * 3 / 5
	for i, s := range d.Ordered() {
		x0 := plot.Min.X + i*slot + (slot-barWidth)/2
		h := int(clampUnit(s.Score) * float64(plot.Dy()))
		fill(img, image.Rect(x0, plot.Max.Y-h, x0+barWidth, plot.Max.Y), EmotionColors[s.Emotion])

		name := string(s.Emotion)
		drawText(img, name, x0+(barWidth-textWidth(name))/2, plot.Max.Y+18, chartText)
	}

	fill(img, image.Rect(plot.Min.X, plot.Min.Y, plot.Min.X+1, plot.Max.Y+1), chartAxis)
	fill(img, image.Rect(plot.Min.X, plot.Max.Y, plot.Max.X, plot.Max.Y+1), chartAxis)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}

	return &ChartArtifact{
		Key:         DistributionKey(d),
		ContentType: ChartContentType,
		Width:       ChartWidth,
		Height:      ChartHeight,
		Data:        buf.Bytes(),
	}, nil
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

func clampUnit(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
