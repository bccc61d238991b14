package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrRememberToken = errors.New("invalid remember-me token")

// RememberTokens issues and verifies the signed remember-me tokens that
// re-establish a session after the session cookie expires
type RememberTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewRememberTokens creates a token signer. An empty secret disables the
// feature; Issue and Verify then fail cleanly.
func NewRememberTokens(secret string, ttl time.Duration) *RememberTokens {
	return &RememberTokens{secret: []byte(secret), ttl: ttl}
}

// Enabled reports whether a signing secret is configured
func (r *RememberTokens) Enabled() bool {
	return len(r.secret) > 0
}

// Issue signs a token carrying the user ID
func (r *RememberTokens) Issue(userID int64, now time.Time) (string, time.Time, error) {
	if !r.Enabled() {
		return "", time.Time{}, ErrRememberToken
	}
	exp := now.Add(r.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	signed, err := token.SignedString(r.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign remember token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks the signature and expiry and returns the user ID
func (r *RememberTokens) Verify(tokenString string) (int64, error) {
	if !r.Enabled() {
		return 0, ErrRememberToken
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrRememberToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrRememberToken
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return 0, ErrRememberToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrRememberToken
	}
	return userID, nil
}
