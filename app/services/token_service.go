// Package services provides external service integrations and technical concerns like completions and tokens
package services

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandscope-io/brandscope/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Token service error constants
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// TokenService handles JWT token generation and validation for the operator
// session. The product has a single operator principal, so claims carry an
// operator id rather than a user table reference.
type TokenService interface {
	GenerateOperatorTokens(operatorID uint) (accessToken, refreshToken string, err error)
	ValidateOperatorToken(token string) (*OperatorTokenClaims, error)
	RefreshOperatorTokens(refreshToken string) (newAccessToken, newRefreshToken string, err error)
}

// OperatorTokenClaims represents the claims in an operator JWT
type OperatorTokenClaims struct {
	OperatorID uint      `json:"operator_id"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	TokenType  string    `json:"token_type"` // "access" or "refresh"
	TokenID    string    `json:"jti"`
}

// TokenServiceImpl implements TokenService
type TokenServiceImpl struct {
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	signingMethod   jwt.SigningMethod
	privateKey      *rsa.PrivateKey
	publicKey       *rsa.PublicKey
	secretKey       []byte
	useRSAKeys      bool
	issuer          string
	audience        string
}

// NewTokenService creates a new token service
func NewTokenService(accessTokenTTL, refreshTokenTTL time.Duration, issuer, audience string, useRSAKeys bool, privateKeyPEM, publicKeyPEM, secretKey string) (TokenService, error) {
	var privateKey *rsa.PrivateKey
	var publicKey *rsa.PublicKey
	var secretKeyBytes []byte
	var signingMethod jwt.SigningMethod

	if useRSAKeys {
		var err error
		privateKey, publicKey, err = parseRSAKeys(privateKeyPEM, publicKeyPEM)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA keys: %w", err)
		}
		signingMethod = jwt.SigningMethodRS256
	} else {
		if secretKey == "" {
			return nil, fmt.Errorf("secret key is required when not using RSA keys")
		}
		secretKeyBytes = []byte(secretKey)
		signingMethod = jwt.SigningMethodHS256
	}

	return &TokenServiceImpl{
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		signingMethod:   signingMethod,
		privateKey:      privateKey,
		publicKey:       publicKey,
		secretKey:       secretKeyBytes,
		useRSAKeys:      useRSAKeys,
		issuer:          issuer,
		audience:        audience,
	}, nil
}

// parseRSAKeys parses RSA private and public keys from PEM format
func parseRSAKeys(privateKeyPEM, publicKeyPEM string) (*rsa.PrivateKey, *rsa.PublicKey, error) {
	if privateKeyPEM == "" || publicKeyPEM == "" {
		return nil, nil, fmt.Errorf("both private and public keys are required")
	}

	privateKeyBlock, _ := pem.Decode([]byte(privateKeyPEM))
	if privateKeyBlock == nil {
		return nil, nil, fmt.Errorf("failed to decode private key")
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(privateKeyBlock.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	publicKeyBlock, _ := pem.Decode([]byte(publicKeyPEM))
	if publicKeyBlock == nil {
		return nil, nil, fmt.Errorf("failed to decode public key")
	}

	publicKey, err := x509.ParsePKIXPublicKey(publicKeyBlock.Bytes)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	rsaPublicKey, ok := publicKey.(*rsa.PublicKey)
	if !ok {
		return nil, nil, fmt.Errorf("public key is not RSA")
	}

	return privateKey, rsaPublicKey, nil
}

// GenerateOperatorTokens generates access and refresh tokens for the operator
func (s *TokenServiceImpl) GenerateOperatorTokens(operatorID uint) (accessToken, refreshToken string, err error) {
	now := utils.UTCNow()

	accessTokenID, err := generateTokenID()
	if err != nil {
		return "", "", err
	}

	refreshTokenID, err := generateTokenID()
	if err != nil {
		return "", "", err
	}

	accessClaims := jwt.MapClaims{
		"operator_id": operatorID,
		"token_type":  "access",
		"jti":         accessTokenID,
		"iat":         now.Unix(),
		"exp":         now.Add(s.accessTokenTTL).Unix(),
		"iss":         s.issuer,
		"aud":         s.audience,
	}

	accessToken, err = s.generateToken(accessClaims)
	if err != nil {
		return "", "", err
	}

	refreshClaims := jwt.MapClaims{
		"operator_id": operatorID,
		"token_type":  "refresh",
		"jti":         refreshTokenID,
		"iat":         now.Unix(),
		"exp":         now.Add(s.refreshTokenTTL).Unix(),
		"iss":         s.issuer,
		"aud":         s.audience,
	}

	refreshToken, err = s.generateToken(refreshClaims)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// ValidateOperatorToken validates an operator JWT and returns its claims
func (s *TokenServiceImpl) ValidateOperatorToken(token string) (*OperatorTokenClaims, error) {
	var err error
	var parsedToken *jwt.Token

	if s.useRSAKeys {
		parsedToken, err = jwt.Parse(token, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.publicKey, nil
		})
	} else {
		parsedToken, err = jwt.Parse(token, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		})
	}

	if err != nil {
		if strings.Contains(err.Error(), "expired") || strings.Contains(err.Error(), "exp") {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !parsedToken.Valid {
		return nil, ErrTokenInvalid
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	operatorID, ok := claims["operator_id"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	tokenType, ok := claims["token_type"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	tokenID, ok := claims["jti"].(string)
	if !ok {
		return nil, ErrTokenInvalid
	}

	issuedAt, ok := claims["iat"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	expiresAt, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenInvalid
	}

	if utils.UTCNow().After(time.Unix(int64(expiresAt), 0)) {
		return nil, ErrTokenExpired
	}

	return &OperatorTokenClaims{
		OperatorID: uint(operatorID),
		TokenType:  tokenType,
		TokenID:    tokenID,
		IssuedAt:   time.Unix(int64(issuedAt), 0),
		ExpiresAt:  time.Unix(int64(expiresAt), 0),
	}, nil
}

// RefreshOperatorTokens generates new tokens using a refresh token
func (s *TokenServiceImpl) RefreshOperatorTokens(refreshToken string) (newAccessToken, newRefreshToken string, err error) {
	claims, err := s.ValidateOperatorToken(refreshToken)
	if err != nil {
		return "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	if claims.TokenType != "refresh" {
		return "", "", fmt.Errorf("token is not a refresh token")
	}

	if utils.UTCNow().After(claims.ExpiresAt) {
		return "", "", fmt.Errorf("refresh token has expired")
	}

	return s.GenerateOperatorTokens(claims.OperatorID)
}

// generateToken creates a signed JWT token
func (s *TokenServiceImpl) generateToken(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(s.signingMethod, claims)

	var signedString string
	var err error

	if s.useRSAKeys {
		signedString, err = token.SignedString(s.privateKey)
	} else {
		signedString, err = token.SignedString(s.secretKey)
	}

	if err != nil {
		return "", err
	}

	return signedString, nil
}

// generateTokenID generates a unique token ID
func generateTokenID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", bytes), nil
}
