package voicenote

import "time"

// EmotionScoreResponse is one bar of the emotion chart
type EmotionScoreResponse struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// PolarityResponse reports the keyword counts behind the sentiment
type PolarityResponse struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// ChartResponse describes a rendered chart. Data is base64 PNG and only set
// for stateless analyses.
type ChartResponse struct {
	Key         string `json:"key"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	URL         string `json:"url,omitempty"`
	Data        string `json:"data,omitempty"`
}

// AnalysisResponse is the outcome of a stateless analysis
type AnalysisResponse struct {
	Text            string                 `json:"text"`
	Normalized      string                 `json:"normalized"`
	Tokens          []string               `json:"tokens"`
	Sentiment       string                 `json:"sentiment"`
	SentimentLabel  string                 `json:"sentiment_label"`
	Polarity        PolarityResponse       `json:"polarity"`
	DominantEmotion string                 `json:"dominant_emotion"`
	Emotions        []EmotionScoreResponse `json:"emotions"`
	Chart           *ChartResponse         `json:"chart"`
}

// VoiceNoteResponse is a stored voice note
type VoiceNoteResponse struct {
	ID              string                 `json:"id"`
	Username        string                 `json:"username"`
	Source          string                 `json:"source"`
	Transcript      string                 `json:"transcript"`
	Sentiment       string                 `json:"sentiment"`
	SentimentLabel  string                 `json:"sentiment_label"`
	DominantEmotion string                 `json:"dominant_emotion"`
	Emotions        []EmotionScoreResponse `json:"emotions"`
	ChartURL        string                 `json:"chart_url,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}
