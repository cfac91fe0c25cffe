package auth

import (
	"errors"
	"strings"
	"time"

	dom "github.com/MrTochi/focus-backend/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity facts a session token carries.
type Claims struct {
	UserID int64
	Role   dom.Role
}

// Tokens signs and verifies session tokens (HS256).
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokens returns a token signer/verifier with the given secret and TTL.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a session token for the user, valid for the configured TTL.
func (t *Tokens) Issue(userID int64, role dom.Role) (string, error) {
	if userID == 0 {
		return "", errors.New("missing user id")
	}
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// Verify parses and validates a session token and returns its claims.
func (t *Tokens) Verify(tokenString string) (Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return Claims{}, errors.New("missing token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return Claims{}, errors.New("token parse error")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Claims{}, errors.New("invalid token claims")
	}

	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return Claims{}, errors.New("invalid user_id claim")
	}
	role, _ := claims["role"].(string)
	if role != string(dom.RoleAdmin) && role != string(dom.RoleUser) {
		return Claims{}, errors.New("invalid role claim")
	}
	return Claims{UserID: int64(id), Role: dom.Role(role)}, nil
}
