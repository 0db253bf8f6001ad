package presenter

import (
	authDTO "github.com/johnquangdev/voicenote/internal/adapter/dto/auth"
	"github.com/johnquangdev/voicenote/internal/domain/entities"
	"github.com/johnquangdev/voicenote/internal/usecase/auth"
)

// ToUserResponse converts a User entity to UserResponse DTO
func ToUserResponse(u *entities.User) *authDTO.UserResponse {
	if u == nil {
		return nil
	}
	return &authDTO.UserResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// ToAuthResponse converts usecase AuthResponse to DTO AuthResponse
func ToAuthResponse(usecaseResp *auth.AuthResponse) *authDTO.AuthResponse {
	if usecaseResp == nil {
		return nil
	}

	return &authDTO.AuthResponse{
		AccessToken:  usecaseResp.AccessToken,
		RefreshToken: usecaseResp.RefreshToken,
		ExpiresIn:    int(usecaseResp.ExpiresIn),
		TokenType:    "Bearer",
		User:         ToUserResponse(usecaseResp.User),
	}
}

// ToResetTokenResponse converts an issued reset grant
func ToResetTokenResponse(grant *auth.ResetGrant) *authDTO.ResetTokenResponse {
	if grant == nil {
		return nil
	}
	return &authDTO.ResetTokenResponse{
		ResetToken: grant.Token,
		ExpiresAt:  grant.ExpiresAt,
	}
}
