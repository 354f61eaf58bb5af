// Package dto contains Data Transfer Objects for API request and response structures
package dto

// CaptchaChallengeResponse carries a freshly generated rotate-captcha challenge
type CaptchaChallengeResponse struct {
	ChallengeID       string `json:"challenge_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	MasterImageBase64 string `json:"master_image_base64" example:"data:image/png;base64,iVBORw0KGgo..."`
	ThumbImageBase64  string `json:"thumb_image_base64" example:"data:image/png;base64,iVBORw0KGgo..."`
}

// LoginRequest represents the request payload for operator login
type LoginRequest struct {
	Password    string  `json:"password" validate:"required,min=1,max=100" example:"SecurePass123!"`
	ChallengeID string  `json:"challenge_id" validate:"required,max=100" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserAngle   float64 `json:"rotate_angle" validate:"gte=0,lte=360" example:"137"`
}

// RefreshTokenRequest represents the request payload for refreshing tokens
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// OperatorSessionDTO holds the token pair issued after a successful login
type OperatorSessionDTO struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in" example:"3600"`
}

// LoginResponse represents a successful login or token refresh
type LoginResponse struct {
	Message string             `json:"message" example:"Login successful"`
	Session OperatorSessionDTO `json:"session"`
}
