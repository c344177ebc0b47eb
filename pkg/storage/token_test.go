package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadTokenRoundTrip(t *testing.T) {
	tokens := NewDownloadTokens("secret", time.Hour)

	token, expiresAt, err := tokens.Issue("grades_cls-001_sbj-001_20260310.csv")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	name, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "grades_cls-001_sbj-001_20260310.csv", name)
}

func TestDownloadTokenExpired(t *testing.T) {
	tokens := NewDownloadTokens("secret", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, _, err := tokens.Issue("statement.pdf")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(token)
	require.Error(t, err)
}

func TestDownloadTokenTampered(t *testing.T) {
	tokens := NewDownloadTokens("secret", time.Hour)

	token, _, err := tokens.Issue("statement.pdf")
	require.NoError(t, err)

	_, err = tokens.Verify(token + "ff")
	require.Error(t, err)

	other := NewDownloadTokens("different", time.Hour)
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestDownloadTokenRejectsEmptyName(t *testing.T) {
	tokens := NewDownloadTokens("secret", time.Hour)
	_, _, err := tokens.Issue("")
	require.Error(t, err)
}
