package handler

import (
	stdErrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/errors"
	vnDTO "github.com/johnquangdev/voicenote/internal/adapter/dto/voicenote"
	"github.com/johnquangdev/voicenote/internal/adapter/presenter"
	"github.com/johnquangdev/voicenote/internal/infrastructure/http/middleware"
	usecaseErrors "github.com/johnquangdev/voicenote/internal/usecase/errors"
	"github.com/johnquangdev/voicenote/internal/usecase/voicenote"
	pkgMiddleware "github.com/johnquangdev/voicenote/pkg/middleware"
)

// VoiceNoteIDKey is the echo context key holding the parsed :id parameter
const VoiceNoteIDKey = "voice_note_id"

// VoiceNote handles voice note HTTP requests
type VoiceNote struct {
	svc           voicenote.Service
	maxAudioBytes int64
	logger        *zap.Logger
}

// NewVoiceNote creates a new voice note handler
func NewVoiceNote(svc voicenote.Service, maxAudioBytes int64, logger *zap.Logger) *VoiceNote {
	return &VoiceNote{svc: svc, maxAudioBytes: maxAudioBytes, logger: logger}
}

// ChartPath is the API route of a voice note's chart
func ChartPath(id string) string {
	return fmt.Sprintf("/v1/voice-notes/%s/chart", id)
}

// SubmitAudio analyzes an uploaded recording
// @Summary      Submit a recording
// @Description  Transcribe a recording, analyze it and append it to the caller's history
// @Tags         Voice notes
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio  formData  file  true  "Recording (wav, mp3, m4a, webm, ogg)"
// @Success      201    {object}  vnDTO.VoiceNoteResponse
// @Failure      413    {object}  map[string]interface{}  "Recording too large"
// @Failure      415    {object}  map[string]interface{}  "Unsupported audio format"
// @Failure      422    {object}  map[string]interface{}  "Recording could not be understood"
// @Failure      503    {object}  map[string]interface{}  "Transcription service unavailable"
// @Router       /voice-notes [post]
func (h *VoiceNote) SubmitAudio(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Missing audio file").WithDetail("field", "audio"))
	}
	if fh.Size > h.maxAudioBytes {
		return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxAudioBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxAudioBytes+1))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	sub, err := h.svc.SubmitAudio(c.Request().Context(), user, voicenote.AudioUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrAudioTooLarge):
			return HandleError(h.logger, c, errors.ErrPayloadTooLarge(h.maxAudioBytes))
		case stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudio):
			return HandleError(h.logger, c, errors.ErrUnsupportedMediaType(fh.Header.Get(echo.HeaderContentType)))
		}
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToSubmissionResponse(sub))
}

// SubmitText analyzes typed text
// @Summary      Submit typed text
// @Description  Analyze typed text and append it to the caller's history
// @Tags         Voice notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      vnDTO.TextRequest  true  "Text"
// @Success      201      {object}  vnDTO.VoiceNoteResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Router       /voice-notes/text [post]
func (h *VoiceNote) SubmitText(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req vnDTO.TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	sub, err := h.svc.SubmitText(c.Request().Context(), user, req.Text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleCreated(h.logger, c, presenter.ToSubmissionResponse(sub))
}

// Analyze runs the pipeline without storing anything
// @Summary      Analyze text
// @Description  Stateless analysis; the chart is returned as base64 PNG
// @Tags         Analysis
// @Accept       json
// @Produce      json
// @Param        request  body      vnDTO.TextRequest  true  "Text"
// @Success      200      {object}  vnDTO.AnalysisResponse
// @Failure      400      {object}  map[string]interface{}  "Validation failed"
// @Router       /analyze [post]
func (h *VoiceNote) Analyze(c echo.Context) error {
	var req vnDTO.TextRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	res, err := h.svc.Analyze(c.Request().Context(), req.Text)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToAnalysisResponse(res))
}

// List returns the caller's history, newest first
// @Summary      List voice notes
// @Tags         Voice notes
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page (default 1)"
// @Param        page_size  query     int  false  "Page size (default 20, max 100)"
// @Success      200        {object}  common.ListResponse
// @Router       /voice-notes [get]
func (h *VoiceNote) List(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	var req vnDTO.ListRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	page, err := h.svc.List(c.Request().Context(), userID, req.Page, req.PageSize)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToVoiceNoteList(page, ChartPath))
}

// Get returns one voice note
// @Summary      Get a voice note
// @Tags         Voice notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Voice note ID (UUID)"
// @Success      200  {object}  vnDTO.VoiceNoteResponse
// @Failure      404  {object}  map[string]interface{}  "Voice note not found"
// @Router       /voice-notes/{id} [get]
func (h *VoiceNote) Get(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	noteID, _ := pkgMiddleware.UUIDFromContext(c, VoiceNoteIDKey)

	note, err := h.svc.Get(c.Request().Context(), userID, noteID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToVoiceNoteResponse(note, ChartPath(note.ID.String())))
}

// Chart renders the emotion chart of a voice note
// @Summary      Voice note chart
// @Tags         Voice notes
// @Produce      png
// @Security     BearerAuth
// @Param        id   path  string  true  "Voice note ID (UUID)"
// @Success      200  {file}  binary
// @Failure      404  {object}  map[string]interface{}  "Voice note not found"
// @Router       /voice-notes/{id}/chart [get]
func (h *VoiceNote) Chart(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}
	noteID, _ := pkgMiddleware.UUIDFromContext(c, VoiceNoteIDKey)

	chart, err := h.svc.Chart(c.Request().Context(), userID, noteID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	c.Response().Header().Set("ETag", `"`+chart.Key+`"`)
	return c.Blob(http.StatusOK, chart.ContentType, chart.Data)
}

// Media streams a stored recording or chart
// @Summary      Stored media
// @Description  Serves objects when no external object store is configured
// @Tags         Voice notes
// @Security     BearerAuth
// @Param        key  path  string  true  "Object key"
// @Success      200  {file}  binary
// @Failure      404  {object}  map[string]interface{}  "Object not found"
// @Router       /media/{key} [get]
func (h *VoiceNote) Media(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrUnauthenticated())
	}

	obj, err := h.svc.Object(c.Request().Context(), user, c.Param("*"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.Blob(http.StatusOK, obj.ContentType, obj.Data)
}
