package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DiagnosticsSubject is the subject carried by every diagnostics token.
const DiagnosticsSubject = "diagnostics"

var ErrInvalidDiagnosticsToken = errors.New("invalid diagnostics token")

// GenerateDiagnosticsToken creates a signed HMAC-SHA256 JWT that lets its
// bearer receive verbose error details from the sync server.
//
// The token carries the issuer, the DiagnosticsSubject, the issue time and
// an expiry of now plus tokenDuration. All parameters are required.
//
// Example usage:
//
//	token, err := utils.GenerateDiagnosticsToken("sync-server", 15*time.Minute, "secret")
func GenerateDiagnosticsToken(issuer string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return "", errors.New("invalid params for generating diagnostics token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   DiagnosticsSubject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing diagnostics token: %w", err)
	}
	return signed, nil
}

// ValidateDiagnosticsToken checks the signature, issuer, expiry and subject
// of tokenString. Any failure is reported as ErrInvalidDiagnosticsToken.
func ValidateDiagnosticsToken(tokenString, signKey, issuer string) error {
	if signKey == "" {
		return fmt.Errorf("%w: diagnostics are disabled", ErrInvalidDiagnosticsToken)
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDiagnosticsToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDiagnosticsToken, err)
	}
	if subject != DiagnosticsSubject {
		return fmt.Errorf("%w: unexpected subject %q", ErrInvalidDiagnosticsToken, subject)
	}
	return nil
}
