package textanalysis

import (
	"fmt"
	"strings"
)

// Sentiment is the discrete overall tone of an utterance.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// IsValid reports whether s is one of the three labels.
func (s Sentiment) IsValid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// Title returns the display form, e.g. "Positive".
func (s Sentiment) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// ParseSentiment converts a stored label back into a Sentiment.
func ParseSentiment(v string) (Sentiment, error) {
	s := Sentiment(strings.ToLower(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown sentiment %q", v)
	}
	return s, nil
}

// SentimentScore holds the keyword hit counts behind a label.
type SentimentScore struct {
	Positive int       `json:"positive"`
	Negative int       `json:"negative"`
	Label    Sentiment `json:"label"`
}

// Score counts sentiment keywords in normalized text. Phrases are matched
// first, longest wins, and the words they cover are not counted again.
//
// The label is net-count-wins: more positive hits is positive, more negative
// hits is negative, no hits is neutral, and an exact tie between non-zero
// counts is negative.
func (a *Analyzer) Score(normalized string) SentimentScore {
	ws := words(normalized)
	var sc SentimentScore

	for i := 0; i < len(ws); {
		pn := a.positive.matchPhrase(ws, i)
		nn := a.negative.matchPhrase(ws, i)
		if pn > 0 || nn > 0 {
			if nn >= pn {
				sc.Negative++
				i += nn
			} else {
				sc.Positive++
				i += pn
			}
			continue
		}

		if a.positive.matchWord(ws[i]) {
			sc.Positive++
		}
		if a.negative.matchWord(ws[i]) {
			sc.Negative++
		}
		i++
	}

	sc.Label = label(sc.Positive, sc.Negative)
	return sc
}

// ClassifySentiment reduces normalized text to a single label.
func (a *Analyzer) ClassifySentiment(normalized string) Sentiment {
	return a.Score(normalized).Label
}

func label(pos, neg int) Sentiment {
	switch {
	case pos == 0 && neg == 0:
		return SentimentNeutral
	case pos > neg:
		return SentimentPositive
	default:
		return SentimentNegative
	}
}
