package presenter

import (
	"encoding/base64"

	"github.com/johnquangdev/voicenote/internal/adapter/dto/common"
	vnDTO "github.com/johnquangdev/voicenote/internal/adapter/dto/voicenote"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/usecase/voicenote"
	"github.com/johnquangdev/voicenote/pkg/textanalysis"
)

// ToEmotionScores converts a distribution to chart order
func ToEmotionScores(d textanalysis.EmotionDistribution) []vnDTO.EmotionScoreResponse {
	ordered := d.Ordered()
	out := make([]vnDTO.EmotionScoreResponse, 0, len(ordered))
	for _, s := range ordered {
		out = append(out, vnDTO.EmotionScoreResponse{Emotion: string(s.Emotion), Score: s.Score})
	}
	return out
}

// ToAnalysisResponse converts a pipeline result, embedding the chart as base64
func ToAnalysisResponse(res *textanalysis.Result) *vnDTO.AnalysisResponse {
	if res == nil {
		return nil
	}
	resp := &vnDTO.AnalysisResponse{
		Text:            res.Utterance,
		Normalized:      res.Normalized,
		Tokens:          res.Tokens,
		Sentiment:       string(res.Sentiment),
		SentimentLabel:  res.Sentiment.Title(),
		Polarity:        vnDTO.PolarityResponse{Positive: res.Polarity.Positive, Negative: res.Polarity.Negative},
		DominantEmotion: string(res.Dominant),
		Emotions:        ToEmotionScores(res.Emotions),
	}
	if res.Chart != nil {
		resp.Chart = &vnDTO.ChartResponse{
			Key:         res.Chart.Key,
			ContentType: res.Chart.ContentType,
			Width:       res.Chart.Width,
			Height:      res.Chart.Height,
			Data:        base64.StdEncoding.EncodeToString(res.Chart.Data),
		}
	}
	return resp
}

// ToVoiceNoteResponse converts a stored voice note
func ToVoiceNoteResponse(n *entities.VoiceNote, chartURL string) *vnDTO.VoiceNoteResponse {
	if n == nil {
		return nil
	}
	var emotions []vnDTO.EmotionScoreResponse
	if dist, err := n.Distribution(); err == nil {
		emotions = ToEmotionScores(dist)
	}
	return &vnDTO.VoiceNoteResponse{
		ID:              n.ID.String(),
		Username:        n.Username,
		Source:          string(n.Source),
		Transcript:      n.Transcript,
		Sentiment:       string(n.Sentiment),
		SentimentLabel:  n.Sentiment.Title(),
		DominantEmotion: string(n.Dominant),
		Emotions:        emotions,
		ChartURL:        chartURL,
		CreatedAt:       n.CreatedAt,
	}
}

// ToSubmissionResponse converts a freshly stored submission
func ToSubmissionResponse(s *voicenote.Submission) *vnDTO.VoiceNoteResponse {
	if s == nil {
		return nil
	}
	return ToVoiceNoteResponse(s.Note, s.ChartURL)
}

// ToVoiceNoteList converts a page of voice notes. Chart links point at the
// chart endpoint of each note.
func ToVoiceNoteList(p *voicenote.Page, chartPath func(id string) string) *common.ListResponse {
	items := make([]*vnDTO.VoiceNoteResponse, 0, len(p.Notes))
	for _, n := range p.Notes {
		items = append(items, ToVoiceNoteResponse(n, chartPath(n.ID.String())))
	}
	return &common.ListResponse{
		Data:       items,
		Pagination: common.NewPagination(p.Page, p.PageSize, p.Total),
	}
}
