package textanalysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"punctuation only", "!!! ... ???", ""},
		{"lowercases and strips punctuation", "Hello, World!", "hello world"},
		{"keeps inner apostrophe", "I don't know", "i don't know"},
		{"drops quoting apostrophes", "'quoted' words", "quoted words"},
		{"curly apostrophe becomes straight", "It’s fine", "it's fine"},
		{"collapses whitespace", "  multiple   spaces\t\nhere ", "multiple spaces here"},
		{"keeps digits", "Room 101, floor 3", "room 101 floor 3"},
		{"composes accents", "Café", "café"},
		{"chained apostrophes", "rock'n'roll", "rock'n'roll"},
		{"hyphen splits", "well-known", "well known"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range sampleUtterances {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func FuzzNormalize(f *testing.F) {
	for _, in := range sampleUtterances {
		f.Add(in)
	}
	f.Fuzz(func(t *testing.T, in string) {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", in, once, twice)
		}
	})
}

var sampleUtterances = []string{
	"",
	"I am so happy and excited today",
	"the and is",
	"The food was good but the service was bad.",
	"I'm NOT good... honestly, it's been a terrible week!!",
	"wow   what a surprise",
	"'''",
	"Ça va? Très bien, merci",
	"don't   stop ' believing '",
	"J̌ust a test",
	"😀 emoji 🎉 party",
	"1234 5678",
}
