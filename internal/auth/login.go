package auth

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for any login failure; the reason is not
// disclosed to the caller.
var ErrBadCredentials = errors.New("invalid email or password")

// Admin authenticates the back-office operator against configured
// credentials and issues expiring tokens. This replaces the old
// client-trusted session flag.
type Admin struct {
	Email        string
	PasswordHash string // bcrypt
	Issuer       string
	SigningKey   string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// Login verifies credentials and issues a token pair.
func (a Admin) Login(email, password string) (TokenPair, error) {
	if a.PasswordHash == "" {
		return TokenPair{}, errors.New("admin login not configured")
	}
	if !strings.EqualFold(strings.TrimSpace(email), a.Email) {
		return TokenPair{}, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return TokenPair{}, ErrBadCredentials
	}
	return Issue(a.Email, "admin", a.Issuer, a.SigningKey, a.AccessTTL, a.RefreshTTL)
}

// Refresh exchanges a valid refresh token for a new pair.
func (a Admin) Refresh(refreshToken string) (TokenPair, error) {
	claims, err := Parse(refreshToken, a.SigningKey, a.Issuer)
	if err != nil {
		return TokenPair{}, err
	}
	if claims.Role != "admin" {
		return TokenPair{}, errors.New("not an admin token")
	}
	return Issue(claims.Subject, "admin", a.Issuer, a.SigningKey, a.AccessTTL, a.RefreshTTL)
}
