// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analyze": {
            "post": {
                "tags": ["Analysis"],
                "summary": "Analyze text",
                "description": "Stateless analysis; the chart is returned as base64 PNG",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/voicenote.TextRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/voicenote.AnalysisResponse"}}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.UserResponse"}}, "409": {"description": "Username or email already registered"}}
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.AuthResponse"}}, "401": {"description": "Invalid username or password"}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Refresh tokens",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.AuthResponse"}}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Logout",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.RefreshTokenRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.UserResponse"}}}
            }
        },
        "/auth/password/forgot": {
            "post": {
                "tags": ["Auth"],
                "summary": "Request password reset",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.ForgotPasswordRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.ResetTokenResponse"}}}
            }
        },
        "/auth/password/reset": {
            "post": {
                "tags": ["Auth"],
                "summary": "Reset password",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/auth.ResetPasswordRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid or expired token"}}
            }
        },
        "/voice-notes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Voice notes"],
                "summary": "List voice notes",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "page"},
                    {"type": "integer", "in": "query", "name": "page_size"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Voice notes"],
                "summary": "Submit a recording",
                "consumes": ["multipart/form-data"],
                "parameters": [{"type": "file", "in": "formData", "name": "audio", "required": true}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/voicenote.VoiceNoteResponse"}},
                    "413": {"description": "Recording too large"},
                    "415": {"description": "Unsupported audio format"},
                    "422": {"description": "Recording could not be understood"},
                    "503": {"description": "Transcription service unavailable"}
                }
            }
        },
        "/voice-notes/text": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Voice notes"],
                "summary": "Submit typed text",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/voicenote.TextRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/voicenote.VoiceNoteResponse"}}}
            }
        },
        "/voice-notes/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Voice notes"],
                "summary": "Get a voice note",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/voicenote.VoiceNoteResponse"}}, "404": {"description": "Voice note not found"}}
            }
        },
        "/voice-notes/{id}/chart": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Voice notes"],
                "summary": "Voice note chart",
                "produces": ["image/png"],
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/media/{key}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Serves objects when no external object store is configured",
                "tags": ["Voice notes"],
                "summary": "Stored media",
                "parameters": [{"type": "string", "in": "path", "name": "key", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}, "404": {"description": "Object not found"}}
            }
        }
    },
    "definitions": {
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "username"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "email": {"type": "string"}}
        },
        "auth.LoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "auth.RefreshTokenRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "auth.ForgotPasswordRequest": {
            "type": "object",
            "required": ["email", "username"],
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}}
        },
        "auth.ResetPasswordRequest": {
            "type": "object",
            "required": ["new_password", "token"],
            "properties": {"token": {"type": "string"}, "new_password": {"type": "string"}}
        },
        "auth.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "username": {"type": "string"}, "email": {"type": "string"},
                "is_active": {"type": "boolean"}, "last_login_at": {"type": "string"}, "created_at": {"type": "string"}
            }
        },
        "auth.AuthResponse": {
            "type": "object",
            "properties": {
                "access_token": {"type": "string"}, "refresh_token": {"type": "string"},
                "expires_in": {"type": "integer"}, "token_type": {"type": "string"},
                "user": {"$ref": "#/definitions/auth.UserResponse"}
            }
        },
        "auth.ResetTokenResponse": {
            "type": "object",
            "properties": {"reset_token": {"type": "string"}, "expires_at": {"type": "string"}}
        },
        "voicenote.TextRequest": {
            "type": "object",
            "required": ["text"],
            "properties": {"text": {"type": "string", "maxLength": 10000}}
        },
        "voicenote.EmotionScoreResponse": {
            "type": "object",
            "properties": {"emotion": {"type": "string"}, "score": {"type": "number"}}
        },
        "voicenote.ChartResponse": {
            "type": "object",
            "properties": {
                "key": {"type": "string"}, "content_type": {"type": "string"},
                "width": {"type": "integer"}, "height": {"type": "integer"},
                "url": {"type": "string"}, "data": {"type": "string"}
            }
        },
        "voicenote.AnalysisResponse": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}, "normalized": {"type": "string"},
                "tokens": {"type": "array", "items": {"type": "string"}},
                "sentiment": {"type": "string"}, "sentiment_label": {"type": "string"},
                "dominant_emotion": {"type": "string"},
                "emotions": {"type": "array", "items": {"$ref": "#/definitions/voicenote.EmotionScoreResponse"}},
                "chart": {"$ref": "#/definitions/voicenote.ChartResponse"}
            }
        },
        "voicenote.VoiceNoteResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"}, "username": {"type": "string"}, "source": {"type": "string"},
                "transcript": {"type": "string"}, "sentiment": {"type": "string"}, "sentiment_label": {"type": "string"},
                "dominant_emotion": {"type": "string"},
                "emotions": {"type": "array", "items": {"$ref": "#/definitions/voicenote.EmotionScoreResponse"}},
                "chart_url": {"type": "string"}, "created_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Voicenote API",
	Description:      "Voice note transcription with sentiment and emotion analysis",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
