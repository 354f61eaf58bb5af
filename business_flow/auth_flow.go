// Package businessflow contains the core business logic and use cases for authentication workflows
package businessflow

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/brandscope-io/brandscope/app/dto"
	"github.com/brandscope-io/brandscope/app/services"
	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/utils"
	"golang.org/x/crypto/bcrypt"
)

// OperatorID identifies the single operator principal issued in JWT claims.
const OperatorID uint = 1

// AuthFlow represents the operator authentication flow used by handlers
type AuthFlow interface {
	InitCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.LoginResponse, error)
}

// AuthFlowImpl provides captcha-init and operator credential verification
type AuthFlowImpl struct {
	operatorConfig *config.OperatorConfig
	tokenService   services.TokenService
	captchaSvc     services.CaptchaService
}

func NewAuthFlow(operatorConfig *config.OperatorConfig, tokenService services.TokenService, captchaSvc services.CaptchaService) AuthFlow {
	return &AuthFlowImpl{
		operatorConfig: operatorConfig,
		tokenService:   tokenService,
		captchaSvc:     captchaSvc,
	}
}

func (af *AuthFlowImpl) InitCaptcha(ctx context.Context) (*dto.CaptchaChallengeResponse, error) {
	if af.captchaSvc == nil {
		return nil, NewBusinessError("CAPTCHA_NOT_AVAILABLE", "Captcha service not available", ErrCacheNotAvailable)
	}
	ch, err := af.captchaSvc.GenerateRotate(ctx)
	if err != nil {
		return nil, NewBusinessError("CAPTCHA_INIT_FAILED", "Failed to initialize captcha", err)
	}
	return &dto.CaptchaChallengeResponse{
		ChallengeID:       ch.ID,
		MasterImageBase64: ch.MasterImageBase64,
		ThumbImageBase64:  ch.ThumbImageBase64,
	}, nil
}

func (af *AuthFlowImpl) Login(ctx context.Context, req *dto.LoginRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	// Validate request
	if req == nil || len(req.Password) == 0 {
		return nil, NewBusinessError("LOGIN_VALIDATION_FAILED", "Login validation failed", ErrIncorrectPassword)
	}
	if len(req.ChallengeID) == 0 {
		return nil, NewBusinessError("CAPTCHA_INVALID", "Captcha challenge missing", ErrInvalidCaptcha)
	}

	// Verify captcha first
	if af.captchaSvc == nil || !af.captchaSvc.VerifyRotate(ctx, req.ChallengeID, req.UserAngle) {
		return nil, NewBusinessError("CAPTCHA_INVALID", "Captcha validation failed", ErrInvalidCaptcha)
	}

	// Verify password
	if !af.verifyPassword(req.Password) {
		return nil, NewBusinessError("INCORRECT_PASSWORD", "Incorrect password", ErrIncorrectPassword)
	}

	// Generate operator tokens
	accessToken, refreshToken, err := af.tokenService.GenerateOperatorTokens(OperatorID)
	if err != nil {
		return nil, NewBusinessError("TOKEN_GENERATION_FAILED", "Failed to generate tokens", err)
	}

	return &dto.LoginResponse{
		Message: "Login successful",
		Session: ToOperatorSessionDTO(accessToken, refreshToken),
	}, nil
}

func (af *AuthFlowImpl) Refresh(ctx context.Context, req *dto.RefreshTokenRequest, metadata *ClientMetadata) (*dto.LoginResponse, error) {
	if req == nil || len(req.RefreshToken) == 0 {
		return nil, NewBusinessError("REFRESH_VALIDATION_FAILED", "Refresh token is required", services.ErrTokenInvalid)
	}

	accessToken, refreshToken, err := af.tokenService.RefreshOperatorTokens(req.RefreshToken)
	if err != nil {
		return nil, NewBusinessError("TOKEN_REFRESH_FAILED", "Failed to refresh tokens", err)
	}

	return &dto.LoginResponse{
		Message: "Tokens refreshed",
		Session: ToOperatorSessionDTO(accessToken, refreshToken),
	}, nil
}

// verifyPassword compares against the configured bcrypt hash. A non-bcrypt
// value is treated as a plaintext development password.
func (af *AuthFlowImpl) verifyPassword(password string) bool {
	configured := af.operatorConfig.PasswordHash
	if configured == "" {
		return false
	}
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") || strings.HasPrefix(configured, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(configured), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(password)) == 1
}

// ToOperatorSessionDTO builds the session payload returned after login
func ToOperatorSessionDTO(accessToken, refreshToken string) dto.OperatorSessionDTO {
	return dto.OperatorSessionDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    utils.AccessTokenTTLSeconds,
		TokenType:    "Bearer",
	}
}
