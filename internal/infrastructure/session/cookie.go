package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidCookie is returned when a session cookie fails verification
var ErrInvalidCookie = errors.New("session: invalid cookie signature")

// CookieSigner signs session ids so a client cannot pick another user's id
type CookieSigner struct {
	secret []byte
}

// NewCookieSigner creates a signer for secret
func NewCookieSigner(secret string) *CookieSigner {
	return &CookieSigner{secret: []byte(secret)}
}

// Sign returns "<id>.<signature>"
func (c *CookieSigner) Sign(id string) string {
	return id + "." + c.mac(id)
}

// Verify returns the id carried by a signed value
func (c *CookieSigner) Verify(value string) (string, error) {
	id, sig, ok := strings.Cut(value, ".")
	if !ok || id == "" {
		return "", ErrInvalidCookie
	}
	if !hmac.Equal([]byte(sig), []byte(c.mac(id))) {
		return "", ErrInvalidCookie
	}
	return id, nil
}

func (c *CookieSigner) mac(id string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
