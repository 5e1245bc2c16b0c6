package utils

import (
	"SteamProfile/apperrors"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by every API token. Subject holds the user id.
type Claims struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	SessionID string `json:"sessionId"`
	jwt.RegisteredClaims
}

// UserID parses the numeric subject claim
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewUnauthorized("Invalid token subject")
	}
	return uint(id), nil
}

type JWTManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), ttl: ttl, issuer: "steamprofile"}
}

// Issue signs a token for the given user and session
func (m *JWTManager) Issue(userID uint, email, username, sessionID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := Claims{
		Email:     email,
		Username:  username,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternal(err, "could not sign token")
	}
	return token, expiresAt, nil
}

// Parse validates the signature and expiry and returns the claims.
// A "Bearer " prefix is accepted.
func (m *JWTManager) Parse(raw string) (*Claims, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return nil, apperrors.NewUnauthorized("Missing token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(m.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.NewUnauthorized("Token expired")
		}
		return nil, apperrors.Wrap(apperrors.Unauthorized, err, "Invalid token")
	}
	if claims.SessionID == "" {
		return nil, apperrors.NewUnauthorized("Token carries no session")
	}
	return claims, nil
}
