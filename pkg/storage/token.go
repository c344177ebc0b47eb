package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DownloadTokens issues and verifies HMAC-signed tokens that grant time
// limited access to one archived document. The token embeds the file name
// and the expiry so the server keeps no state per issued link.
type DownloadTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewDownloadTokens constructs a token signer with the given secret and TTL.
func NewDownloadTokens(secret string, ttl time.Duration) *DownloadTokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DownloadTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the named document.
func (t *DownloadTokens) Issue(name string) (string, time.Time, error) {
	if name == "" {
		return "", time.Time{}, fmt.Errorf("document name required")
	}
	if len(t.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := t.now().Add(t.ttl)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(name))
	payload := encoded + "|" + strconv.FormatInt(expiresAt.Unix(), 10)
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return encoded + "." + strconv.FormatInt(expiresAt.Unix(), 10) + "." + signature, expiresAt, nil
}

// Verify checks the signature and expiry and returns the document name.
func (t *DownloadTokens) Verify(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid token format")
	}
	encoded, rawExpiry, signature := parts[0], parts[1], parts[2]

	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid token expiry")
	}

	payload := encoded + "|" + rawExpiry
	mac := hmac.New(sha256.New, t.secret)
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return "", fmt.Errorf("invalid token signature")
	}
	if t.now().After(time.Unix(expiry, 0)) {
		return "", fmt.Errorf("token expired")
	}

	name, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode document name: %w", err)
	}
	return string(name), nil
}
