package textanalysis

import "fmt"

// Emotion is one category of the fixed emotion enumeration.
type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionSad      Emotion = "sad"
	EmotionAngry    Emotion = "angry"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
	EmotionNeutral  Emotion = "neutral"
)

// AllEmotions lists every category in declared order. Charts, vectors and
// serialized output always follow this order.
var AllEmotions = []Emotion{
	EmotionHappy,
	EmotionSad,
	EmotionAngry,
	EmotionFear,
	EmotionSurprise,
	EmotionNeutral,
}

// IsValid reports whether e belongs to the enumeration.
func (e Emotion) IsValid() bool {
	for _, known := range AllEmotions {
		if e == known {
			return true
		}
	}
	return false
}

// ParseEmotion converts a category name into an Emotion.
func ParseEmotion(s string) (Emotion, error) {
	e := Emotion(s)
	if !e.IsValid() {
		return "", fmt.Errorf("unknown emotion category %q", s)
	}
	return e, nil
}

// EmotionScore pairs a category with its intensity.
type EmotionScore struct {
	Emotion Emotion `json:"emotion"`
	Score   float64 `json:"score"`
}

// EmotionDistribution maps every category to a non-negative intensity.
// Scores are hits divided by token count, so each lies in [0, 1] and the
// profile does not necessarily sum to 1.
type EmotionDistribution map[Emotion]float64

// NewEmotionDistribution returns a distribution with every category at zero.
func NewEmotionDistribution() EmotionDistribution {
	d := make(EmotionDistribution, len(AllEmotions))
	for _, e := range AllEmotions {
		d[e] = 0
	}
	return d
}

// Ordered returns the scores in declared category order. Missing or negative
// entries read as zero.
func (d EmotionDistribution) Ordered() []EmotionScore {
	out := make([]EmotionScore, 0, len(AllEmotions))
	for _, e := range AllEmotions {
		out = append(out, EmotionScore{Emotion: e, Score: d.Score(e)})
	}
	return out
}

// Score returns the intensity for e, clamped to zero.
func (d EmotionDistribution) Score(e Emotion) float64 {
	v := d[e]
	if v < 0 {
		return 0
	}
	return v
}

// Dominant returns the highest scoring category. Ties go to the category
// declared first; an all-zero profile is neutral.
func (d EmotionDistribution) Dominant() Emotion {
	best := EmotionNeutral
	bestScore := 0.0
	for _, e := range AllEmotions {
		if s := d.Score(e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best
}

// IsZero reports whether no category scored.
func (d EmotionDistribution) IsZero() bool {
	for _, e := range AllEmotions {
		if d.Score(e) > 0 {
			return false
		}
	}
	return true
}

// AnalyzeEmotions scores tokens against the emotion lexicons. A token counts
// once for every category whose lexicon matches it. Each score is that
// category's hits divided by len(tokens).
func (a *Analyzer) AnalyzeEmotions(tokens []string) EmotionDistribution {
	dist := NewEmotionDistribution()
	if len(tokens) == 0 {
		return dist
	}

	hits := make(map[Emotion]int, len(AllEmotions))
	for _, tok := range tokens {
		for _, e := range AllEmotions {
			if a.emotions[e].matchWord(tok) {
				hits[e]++
			}
		}
	}

	n := float64(len(tokens))
	for e, h := range hits {
		dist[e] = float64(h) / n
	}
	return dist
}
