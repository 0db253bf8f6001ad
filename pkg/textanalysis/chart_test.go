package textanalysis

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlotEmotions(t *testing.T) {
	d := NewEmotionDistribution()
	d[EmotionHappy] = 1

	chart, err := PlotEmotions(d)
	require.NoError(t, err)
	assert.Equal(t, ChartContentType, chart.ContentType)
	assert.Equal(t, ChartWidth, chart.Width)
	assert.Equal(t, ChartHeight, chart.Height)
	assert.Len(t, chart.Key, 64)

	img, err := png.Decode(bytes.NewReader(chart.Data))
	require.NoError(t, err)
	assert.Equal(t, ChartWidth, img.Bounds().Dx())
	assert.Equal(t, ChartHeight, img.Bounds().Dy())

	// Middle of the full-height happy bar.
	assert.Equal(t, color.RGBAModel.Convert(EmotionColors[EmotionHappy]), color.RGBAModel.Convert(img.At(95, 200)))
	// Same spot in the empty sad slot is background.
	assert.Equal(t, color.RGBAModel.Convert(chartBackground), color.RGBAModel.Convert(img.At(95+94, 200)))
}

func TestPlotEmotionsAllZero(t *testing.T) {
	chart, err := PlotEmotions(NewEmotionDistribution())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(chart.Data))
	require.NoError(t, err)
	assert.Equal(t, color.RGBAModel.Convert(chartBackground), color.RGBAModel.Convert(img.At(95, 200)))
}

func TestPlotEmotionsDeterministic(t *testing.T) {
	d := EmotionDistribution{EmotionSad: 0.5, EmotionFear: 0.25}
	a, err := PlotEmotions(d)
	require.NoError(t, err)
	b, err := PlotEmotions(EmotionDistribution{EmotionFear: 0.25, EmotionSad: 0.5})
	require.NoError(t, err)

	assert.Equal(t, a.Key, b.Key)
	assert.True(t, bytes.Equal(a.Data, b.Data))

	c, err := PlotEmotions(EmotionDistribution{EmotionSad: 0.5})
	require.NoError(t, err)
	assert.NotEqual(t, a.Key, c.Key)
}

func TestDistributionKeyIgnoresMissingCategories(t *testing.T) {
	assert.Equal(t, DistributionKey(NewEmotionDistribution()), DistributionKey(EmotionDistribution{}))
}
