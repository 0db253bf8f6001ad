package textanalysis

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// Lexicon is the configuration data behind the scorers: the stop-word list,
// the trigger words of every emotion category and the sentiment keywords.
type Lexicon struct {
	StopWords []string             `yaml:"stop_words"`
	Emotions  map[Emotion][]string `yaml:"emotions"`
	Sentiment struct {
		Positive []string `yaml:"positive"`
		Negative []string `yaml:"negative"`
	} `yaml:"sentiment"`
}

// DefaultLexicon returns the embedded English lexicon.
func DefaultLexicon() *Lexicon {
	lex, err := ParseLexicon(defaultLexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("textanalysis: embedded lexicon is invalid: %v", err))
	}
	return lex
}

// LoadLexicon reads and validates a lexicon file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	lex, err := ParseLexicon(data)
	if err != nil {
		return nil, fmt.Errorf("lexicon %s: %w", path, err)
	}
	return lex, nil
}

// ParseLexicon decodes YAML lexicon data and validates it.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if err := lex.Validate(); err != nil {
		return nil, err
	}
	return &lex, nil
}

// Validate checks that every category is known, every entry normalizes to
// something non-empty, emotion and stop-word entries are single words, no
// emotion word is also a stop word, and no entry is both positive and
// negative.
func (l *Lexicon) Validate() error {
	stop := make(map[string]bool, len(l.StopWords))
	for _, w := range l.StopWords {
		t, err := parseEntry(w, false)
		if err != nil {
			return fmt.Errorf("stop word: %w", err)
		}
		stop[t.key()] = true
	}
	for e, entries := range l.Emotions {
		if !e.IsValid() {
			return fmt.Errorf("unknown emotion category %q", e)
		}
		for _, entry := range entries {
			t, err := parseEntry(entry, false)
			if err != nil {
				return fmt.Errorf("emotion %s: %w", e, err)
			}
			// stop words are dropped before emotion matching
			if stop[t.key()] {
				return fmt.Errorf("emotion %s: %q is a stop word and can never match", e, entry)
			}
		}
	}

	positive := make(map[string]bool, len(l.Sentiment.Positive))
	for _, entry := range l.Sentiment.Positive {
		t, err := parseEntry(entry, true)
		if err != nil {
			return fmt.Errorf("positive: %w", err)
		}
		positive[t.key()] = true
	}
	for _, entry := range l.Sentiment.Negative {
		t, err := parseEntry(entry, true)
		if err != nil {
			return fmt.Errorf("negative: %w", err)
		}
		if positive[t.key()] {
			return fmt.Errorf("%q is listed as both positive and negative", entry)
		}
	}
	return nil
}

// term is one compiled lexicon entry.
type term struct {
	words []string
	stem  bool
}

func (t term) key() string {
	k := strings.Join(t.words, " ")
	if t.stem {
		k += "*"
	}
	return k
}

func parseEntry(raw string, allowPhrase bool) (term, error) {
	entry := strings.TrimSpace(raw)
	stem := strings.HasSuffix(entry, "*")
	entry = strings.TrimSuffix(entry, "*")

	w := words(Normalize(entry))
	switch {
	case len(w) == 0:
		return term{}, fmt.Errorf("entry %q is empty after normalization", raw)
	case len(w) > 1 && !allowPhrase:
		return term{}, fmt.Errorf("entry %q must be a single word", raw)
	case len(w) > 1 && stem:
		return term{}, fmt.Errorf("phrase %q cannot be a stem", raw)
	}
	return term{words: w, stem: stem}, nil
}

// termSet answers membership queries for one lexicon list.
type termSet struct {
	exact   map[string]struct{}
	stems   []string
	phrases [][]string // longest first
}

func compileTerms(entries []string) termSet {
	ts := termSet{exact: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		t, err := parseEntry(entry, true)
		if err != nil {
			continue
		}
		switch {
		case len(t.words) > 1:
			ts.phrases = append(ts.phrases, t.words)
		case t.stem:
			ts.stems = append(ts.stems, t.words[0])
		default:
			ts.exact[t.words[0]] = struct{}{}
		}
	}
	sort.Strings(ts.stems)
	sort.SliceStable(ts.phrases, func(i, j int) bool {
		return len(ts.phrases[i]) > len(ts.phrases[j])
	})
	return ts
}

func (ts termSet) matchWord(w string) bool {
	if _, ok := ts.exact[w]; ok {
		return true
	}
	for _, s := range ts.stems {
		if strings.HasPrefix(w, s) {
			return true
		}
	}
	return false
}

// matchPhrase returns the length of the longest phrase starting at ws[i], or 0.
func (ts termSet) matchPhrase(ws []string, i int) int {
	for _, p := range ts.phrases {
		if i+len(p) > len(ws) {
			continue
		}
		match := true
		for k, pw := range p {
			if ws[i+k] != pw {
				match = false
				break
			}
		}
		if match {
			return len(p)
		}
	}
	return 0
}
