package textanalysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLexicon(t *testing.T) {
	lex := DefaultLexicon()
	require.NoError(t, lex.Validate())

	assert.Contains(t, lex.StopWords, "the")
	assert.Contains(t, lex.StopWords, "today")
	for _, e := range AllEmotions {
		assert.NotEmpty(t, lex.Emotions[e], "emotion %s has no entries", e)
	}
	assert.NotEmpty(t, lex.Sentiment.Positive)
	assert.NotEmpty(t, lex.Sentiment.Negative)

	stop := make(map[string]bool, len(lex.StopWords))
	for _, w := range lex.StopWords {
		stop[Normalize(w)] = true
	}
	for e, entries := range lex.Emotions {
		for _, entry := range entries {
			assert.False(t, stop[Normalize(entry)], "emotion %s entry %q is a stop word", e, entry)
		}
	}
}

func TestParseLexicon(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name: "valid",
			data: `
stop_words: [the]
emotions:
  happy: [joy*]
sentiment:
  positive: [good, "not bad"]
  negative: [bad]
`,
		},
		{
			name:    "unknown category",
			data:    "emotions:\n  bored: [meh]\n",
			wantErr: "unknown emotion category",
		},
		{
			name:    "phrase in emotion list",
			data:    "emotions:\n  happy: [\"very happy\"]\n",
			wantErr: "single word",
		},
		{
			name:    "emotion entry is a stop word",
			data:    "stop_words: [down, the]\nemotions:\n  sad: [gloomy, Down]\n",
			wantErr: "is a stop word",
		},
		{
			name: "emotion stem sharing a stop word prefix",
			data: "stop_words: [the]\nemotions:\n  happy: [joy*]\n  fear: [the*]\n",
		},
		{
			name:    "empty entry",
			data:    "stop_words: [\"!!\"]\n",
			wantErr: "empty after normalization",
		},
		{
			name:    "bare stem",
			data:    "sentiment:\n  positive: [\"*\"]\n",
			wantErr: "empty after normalization",
		},
		{
			name:    "stemmed phrase",
			data:    "sentiment:\n  negative: [\"not happ*\"]\n",
			wantErr: "cannot be a stem",
		},
		{
			name:    "both polarities",
			data:    "sentiment:\n  positive: [Fine]\n  negative: [fine]\n",
			wantErr: "both positive and negative",
		},
		{
			name:    "malformed yaml",
			data:    "emotions: [",
			wantErr: "decode lexicon",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex, err := ParseLexicon([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"joy*"}, lex.Emotions[EmotionHappy])
		})
	}
}

func TestLoadLexicon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("emotions:\n  sad: [gloomy]\n"), 0o600))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gloomy"}, lex.Emotions[EmotionSad])

	_, err = LoadLexicon(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestTermSet(t *testing.T) {
	ts := compileTerms([]string{"Good", "happi*", "not good", "not good at all"})

	assert.True(t, ts.matchWord("good"))
	assert.True(t, ts.matchWord("happiness"))
	assert.False(t, ts.matchWord("goodness"))
	assert.False(t, ts.matchWord("unhappiness"))

	ws := []string{"this", "is", "not", "good", "at", "all"}
	assert.Equal(t, 4, ts.matchPhrase(ws, 2))
	assert.Equal(t, 0, ts.matchPhrase(ws, 3))
	assert.Equal(t, 2, ts.matchPhrase([]string{"not", "good"}, 0))
}
