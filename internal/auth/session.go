package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

// Session token errors.
var (
	ErrTokenInvalid = errors.New("session token is invalid")
	ErrTokenExpired = errors.New("session token has expired")
)

// SessionData is the authenticated caller's identity as carried inside the
// signed bearer token. ID and Role are always present; the rest is
// convenience data for clients.
type SessionData struct {
	ID        string      `mapstructure:"sub"`
	Name      string      `mapstructure:"name"`
	Role      models.Role `mapstructure:"role"`
	CreatedAt int64       `mapstructure:"accountCreatedAt"`
}

// IssueToken signs a session bearer token for the given user.
func IssueToken(secret string, maxAge time.Duration, user *models.User) (string, error) {
	if secret == "" {
		return "", errors.New("session secret is required")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":              user.ID,
		"name":             user.Name,
		"role":             string(user.Role),
		"accountCreatedAt": user.CreatedAt.Unix(),
		"iat":              now.Unix(),
		"exp":              now.Add(maxAge).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a bearer token and decodes its session data.
// Expired or tampered tokens are rejected; absence of id or role makes the
// token invalid regardless of signature.
func VerifyToken(secret, tokenString string) (*SessionData, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	session := new(SessionData)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           session,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build claims decoder: %w", err)
	}
	if err := decoder.Decode(map[string]any(claims)); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", ErrTokenInvalid, err)
	}

	if session.ID == "" || session.Role == "" {
		return nil, fmt.Errorf("%w: missing id or role claim", ErrTokenInvalid)
	}
	if !session.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, session.Role)
	}

	return session, nil
}
