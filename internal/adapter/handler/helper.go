package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voicenote/errors"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/infrastructure/storage"
	usecaseErrors "github.com/johnquangdev/voicenote/internal/usecase/errors"
	"github.com/johnquangdev/voicenote/pkg/validator"
)

// Response shapes
type success struct {
	Code    interface{} `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errs struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// getRequestID tries to read X-Request-ID from the request
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusOK, data)
}

// HandleCreated writes a standardized 201 response
func HandleCreated(logger *zap.Logger, c echo.Context, data interface{}) error {
	return respond(logger, c, http.StatusCreated, data)
}

func respond(logger *zap.Logger, c echo.Context, status int, data interface{}) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Int("status", status),
		)
	}
	return c.JSON(status, success{
		Code:    status,
		Message: "success",
		Data:    data,
	})
}

// HandleError centralizes error handling and logging using provided logger.
// Domain errors are translated to AppErrors first.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)
	appErr := MapError(err)

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		}
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("http.response.error", fields...)
		} else {
			logger.Warn("http.response.error", fields...)
		}
	}

	body := errs{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
	// internal causes stay in the logs
	if appErr.Raw != nil && appErr.HTTPCode < http.StatusInternalServerError {
		body.Info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, body)
}

// ErrorHandler renders errors that escape handlers and middleware (auth
// failures, unknown routes, body limits) in the same shape as HandleError.
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if herr := HandleError(logger, c, err); herr != nil && logger != nil {
			logger.Error("failed to write error response", zap.Error(herr))
		}
	}
}

// MapError translates domain and use case errors into AppErrors
func MapError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	if te, ok := usecaseErrors.AsTranscriptionError(err); ok {
		if te.Status == "unavailable" {
			return errors.ErrTranscriptionUnavailable(te.Reason)
		}
		return errors.ErrTranscriptionNotUnderstood(te.Reason)
	}

	var httpErr *echo.HTTPError
	if stdErrors.As(err, &httpErr) {
		return fromHTTPError(httpErr)
	}

	switch {
	case stdErrors.Is(err, entities.ErrInvalidCredentials):
		return errors.ErrInvalidCredentials()
	case stdErrors.Is(err, entities.ErrUsernameTaken):
		return errors.ErrUserAlreadyExists("")
	case stdErrors.Is(err, entities.ErrEmailTaken):
		return errors.ErrEmailAlreadyExists()
	case stdErrors.Is(err, entities.ErrUserNotFound):
		return errors.ErrUserNotFound()
	case stdErrors.Is(err, entities.ErrUserInactive), stdErrors.Is(err, entities.ErrUnauthorized):
		return errors.ErrUserInactive()
	case stdErrors.Is(err, entities.ErrInvalidUsername), stdErrors.Is(err, entities.ErrInvalidEmail),
		stdErrors.Is(err, entities.ErrInvalidPassword), stdErrors.Is(err, entities.ErrInvalidRequest):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, entities.ErrInvalidToken), stdErrors.Is(err, entities.ErrSessionNotFound):
		return errors.ErrInvalidRefreshToken()
	case stdErrors.Is(err, entities.ErrSessionExpired):
		return errors.ErrTokenExpired()
	case stdErrors.Is(err, entities.ErrResetTokenInvalid):
		return errors.ErrInvalidResetToken()
	case stdErrors.Is(err, entities.ErrResetMismatch):
		return errors.ErrInvalidArgument("Username and email do not match")
	case stdErrors.Is(err, entities.ErrVoiceNoteNotFound):
		return errors.ErrVoiceNoteNotFound("")
	case stdErrors.Is(err, entities.ErrEmptyTranscript):
		return errors.ErrInvalidArgument("Text must not be empty")
	case stdErrors.Is(err, entities.ErrForbidden):
		return errors.ErrPermissionDenied("access this resource")
	case stdErrors.Is(err, usecaseErrors.ErrEmptyAudio):
		return errors.ErrInvalidArgument("Audio recording is empty")
	case stdErrors.Is(err, usecaseErrors.ErrAudioTooLarge):
		return errors.ErrPayloadTooLarge(0)
	case stdErrors.Is(err, usecaseErrors.ErrUnsupportedAudio):
		return errors.ErrUnsupportedMediaType("")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidPage):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, storage.ErrObjectNotFound):
		return errors.ErrNotFound("Object")
	case stdErrors.Is(err, usecaseErrors.ErrStorage):
		return errors.ErrStorageFailed("object storage", err)
	case stdErrors.Is(err, usecaseErrors.ErrCache):
		return errors.ErrCacheFailed("reset token", err)
	case stdErrors.Is(err, usecaseErrors.ErrAnalysis):
		return errors.ErrAnalysisFailed(err)
	}
	return errors.ErrInternal(err)
}

func fromHTTPError(he *echo.HTTPError) errors.AppError {
	msg := http.StatusText(he.Code)
	if s, ok := he.Message.(string); ok && s != "" {
		msg = s
	}
	switch he.Code {
	case http.StatusNotFound:
		return errors.ErrNotFound("Route")
	case http.StatusUnauthorized:
		return errors.ErrUnauthenticated()
	case http.StatusRequestEntityTooLarge:
		return errors.ErrPayloadTooLarge(0)
	case http.StatusUnsupportedMediaType:
		return errors.ErrUnsupportedMediaType("")
	}
	if he.Code >= http.StatusInternalServerError {
		return errors.ErrInternal(he)
	}
	return errors.AppError{
		Raw:      he.Internal,
		HTTPCode: he.Code,
		Code:     errors.ErrorCode_INVALID_ARGUMENT,
		Message:  msg,
	}
}

// bindAndValidate binds the request into req and runs the struct validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload()
	}
	if err := c.Validate(req); err != nil {
		appErr := errors.ErrInvalidArgument("Validation failed")
		for field, rule := range validator.Describe(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return appErr
	}
	return nil
}
