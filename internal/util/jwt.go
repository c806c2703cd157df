package util

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdian3456/chatmoderation/internal/constant"
	"github.com/ferdian3456/chatmoderation/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	BearerPrefix            = "Bearer "
	TokenIssuer             = "github.com/ferdian3456/chatmoderation"
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
)

// GenerateServiceToken signs a token for a trusted caller such as the bot frontend.
func GenerateServiceToken(service string, jwtSecretKey string, ttl time.Duration) (string, error) {
	if jwtSecretKey == "" {
		return "", errors.New("jwt secret key is not configured")
	}

	now := time.Now().UTC()
	claims := &model.ServiceClaims{
		Service: service,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   fmt.Sprintf("service:%s", service),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecretKey))
	if err != nil {
		return "", err
	}

	return signedToken, nil
}

// ValidateServiceToken validates the Authorization header value and returns the calling service.
func ValidateServiceToken(authHeader string, log *zap.Logger, jwtSecretKey string) (string, error) {
	if jwtSecretKey == "" {
		return "", errors.New("jwt secret key is not configured")
	}

	tokenString, err := extractBearerToken(authHeader)
	if err != nil {
		return "", err
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.ServiceClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(jwtSecretKey), nil
	}, jwt.WithIssuer(TokenIssuer))

	if err != nil {
		log.Debug("service token rejected", zap.Error(err))
		return "", handleParseError(err)
	}

	claims, ok := token.Claims.(*model.ServiceClaims)
	if !ok || !token.Valid || claims.Service == "" {
		return "", unauthorized("Authentication token is invalid")
	}

	return claims.Service, nil
}

func unauthorized(message string) *model.ValidationError {
	return &model.ValidationError{
		Code:    constant.ERR_UNAUTHORIZED_ERROR,
		Message: message,
		Param:   "Authorization",
	}
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", unauthorized("No authentication token is provided")
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", unauthorized("Authentication token format is not match")
	}

	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return "", unauthorized("Authentication token is empty")
	}

	return token, nil
}

// handleParseError converts JWT parsing errors to ValidationError
func handleParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return unauthorized("Authentication token is malformed")
	case errors.Is(err, jwt.ErrTokenExpired):
		return unauthorized("Authentication token is expired")
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return unauthorized("Authentication token is not valid yet")
	case errors.Is(err, ErrInvalidSigningMethod):
		return unauthorized("Authentication token has invalid signing method")
	default:
		return unauthorized("Authentication token is invalid")
	}
}
