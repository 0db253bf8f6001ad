package errors

// ErrorCode is the machine readable code returned in error responses.
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_INVALID_PAYLOAD
	ErrorCode_NOT_FOUND
	ErrorCode_PERMISSION_DENIED
	ErrorCode_UNAUTHENTICATED
	ErrorCode_PAYLOAD_TOO_LARGE
	ErrorCode_UNSUPPORTED_MEDIA_TYPE

	ErrorCode_AUTH_INVALID_TOKEN
	ErrorCode_AUTH_TOKEN_EXPIRED
	ErrorCode_AUTH_INVALID_CREDENTIALS
	ErrorCode_AUTH_USER_NOT_FOUND
	ErrorCode_AUTH_USER_ALREADY_EXISTS
	ErrorCode_AUTH_EMAIL_ALREADY_EXISTS
	ErrorCode_AUTH_USER_INACTIVE
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN
	ErrorCode_AUTH_INVALID_RESET_TOKEN

	ErrorCode_VOICE_NOTE_NOT_FOUND
	ErrorCode_TRANSCRIPTION_NOT_UNDERSTOOD
	ErrorCode_TRANSCRIPTION_UNAVAILABLE
	ErrorCode_ANALYSIS_FAILED

	ErrorCode_INTEGRATION_STORAGE_FAILED
	ErrorCode_INTEGRATION_CACHE_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:                      "UNKNOWN",
	ErrorCode_INTERNAL:                     "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:             "INVALID_ARGUMENT",
	ErrorCode_INVALID_PAYLOAD:              "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                    "NOT_FOUND",
	ErrorCode_PERMISSION_DENIED:            "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:              "UNAUTHENTICATED",
	ErrorCode_PAYLOAD_TOO_LARGE:            "PAYLOAD_TOO_LARGE",
	ErrorCode_UNSUPPORTED_MEDIA_TYPE:       "UNSUPPORTED_MEDIA_TYPE",
	ErrorCode_AUTH_INVALID_TOKEN:           "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:           "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS:     "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_USER_NOT_FOUND:          "AUTH_USER_NOT_FOUND",
	ErrorCode_AUTH_USER_ALREADY_EXISTS:     "AUTH_USER_ALREADY_EXISTS",
	ErrorCode_AUTH_EMAIL_ALREADY_EXISTS:    "AUTH_EMAIL_ALREADY_EXISTS",
	ErrorCode_AUTH_USER_INACTIVE:           "AUTH_USER_INACTIVE",
	ErrorCode_AUTH_INVALID_REFRESH_TOKEN:   "AUTH_INVALID_REFRESH_TOKEN",
	ErrorCode_AUTH_INVALID_RESET_TOKEN:     "AUTH_INVALID_RESET_TOKEN",
	ErrorCode_VOICE_NOTE_NOT_FOUND:         "VOICE_NOTE_NOT_FOUND",
	ErrorCode_TRANSCRIPTION_NOT_UNDERSTOOD: "TRANSCRIPTION_NOT_UNDERSTOOD",
	ErrorCode_TRANSCRIPTION_UNAVAILABLE:    "TRANSCRIPTION_UNAVAILABLE",
	ErrorCode_ANALYSIS_FAILED:              "ANALYSIS_FAILED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:   "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:     "INTEGRATION_CACHE_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return errorCodeNames[ErrorCode_UNKNOWN]
}

// MarshalText encodes the code by name in JSON responses.
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
