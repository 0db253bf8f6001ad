package textanalysis

import (
	"fmt"
	"unicode"
)

// Analyzer runs the pipeline against one compiled lexicon.
type Analyzer struct {
	stopWords map[string]struct{}
	emotions  map[Emotion]termSet
	positive  termSet
	negative  termSet
}

// NewAnalyzer compiles lex. A nil lexicon selects DefaultLexicon.
func NewAnalyzer(lex *Lexicon) (*Analyzer, error) {
	if lex == nil {
		lex = DefaultLexicon()
	}
	if err := lex.Validate(); err != nil {
		return nil, fmt.Errorf("invalid lexicon: %w", err)
	}

	a := &Analyzer{
		stopWords: make(map[string]struct{}, len(lex.StopWords)),
		emotions:  make(map[Emotion]termSet, len(AllEmotions)),
		positive:  compileTerms(lex.Sentiment.Positive),
		negative:  compileTerms(lex.Sentiment.Negative),
	}
	for _, w := range lex.StopWords {
		a.stopWords[Normalize(w)] = struct{}{}
	}
	for _, e := range AllEmotions {
		a.emotions[e] = compileTerms(lex.Emotions[e])
	}
	return a, nil
}

// TokenizeAndFilter splits normalized text into words, dropping stop-words
// and tokens without a letter or digit. Surviving tokens keep their order.
func (a *Analyzer) TokenizeAndFilter(normalized string) []string {
	tokens := []string{}
	for _, w := range words(normalized) {
		if _, stop := a.stopWords[w]; stop {
			continue
		}
		if !hasWordRune(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// IsStopWord reports whether w is in the compiled stop-word set.
func (a *Analyzer) IsStopWord(w string) bool {
	_, ok := a.stopWords[w]
	return ok
}

func hasWordRune(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Result is everything the pipeline derives from one utterance.
type Result struct {
	Utterance  string              `json:"utterance"`
	Normalized string              `json:"normalized"`
	Tokens     []string            `json:"tokens"`
	Emotions   EmotionDistribution `json:"emotions"`
	Dominant   Emotion             `json:"dominant_emotion"`
	Sentiment  Sentiment           `json:"sentiment"`
	Polarity   SentimentScore      `json:"polarity"`
	Chart      *ChartArtifact      `json:"-"`
}

// Analyze runs every stage on utterance. The only possible error comes from
// PNG encoding of the chart.
func (a *Analyzer) Analyze(utterance string) (*Result, error) {
	normalized := Normalize(utterance)
	tokens := a.TokenizeAndFilter(normalized)
	emotions := a.AnalyzeEmotions(tokens)
	polarity := a.Score(normalized)

	chart, err := PlotEmotions(emotions)
	if err != nil {
		return nil, fmt.Errorf("plot emotions: %w", err)
	}

	return &Result{
		Utterance:  utterance,
		Normalized: normalized,
		Tokens:     tokens,
		Emotions:   emotions,
		Dominant:   emotions.Dominant(),
		Sentiment:  polarity.Label,
		Polarity:   polarity,
		Chart:      chart,
	}, nil
}
