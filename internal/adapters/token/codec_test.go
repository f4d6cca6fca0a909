package token

import (
	"strings"
	"testing"
	"time"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestCodec(t *testing.T, now *time.Time) *Codec {
	t.Helper()
	c, err := NewCodec(Options{
		Secret: testSecret,
		Issuer: "educonnect",
		TTL:    7 * 24 * time.Hour,
		Now:    func() time.Time { return *now },
	})
	require.NoError(t, err)
	return c
}

func TestCodec_IssueVerify(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newTestCodec(t, &now)

	raw, err := c.Issue("user-1", "ana@x.com", domainauth.RoleStudent)
	require.NoError(t, err)

	got, err := c.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, domainauth.RoleStudent, got.Role)
	assert.Equal(t, now, got.IssuedAt.UTC())
	assert.Equal(t, now.Add(7*24*time.Hour), got.ExpiresAt.UTC())
}

func TestCodec_Expired(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := newTestCodec(t, &now)

	raw, err := c.Issue("user-1", "ana@x.com", domainauth.RoleStudent)
	require.NoError(t, err)

	now = now.Add(7*24*time.Hour + time.Second)
	_, err = c.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestCodec_WrongSecret(t *testing.T) {
	now := time.Now()
	c := newTestCodec(t, &now)
	other, err := NewCodec(Options{Secret: strings.Repeat("z", 32), Issuer: "educonnect", TTL: time.Hour})
	require.NoError(t, err)

	raw, err := other.Issue("user-1", "ana@x.com", domainauth.RoleAdmin)
	require.NoError(t, err)

	_, err = c.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCodec_Malformed(t *testing.T) {
	now := time.Now()
	c := newTestCodec(t, &now)

	for _, raw := range []string{"", "abc", "a.b.c"} {
		_, err := c.Verify(raw)
		require.ErrorIs(t, err, ErrMalformed, raw)
	}
}

func TestNewCodec_RequiresSecretAndTTL(t *testing.T) {
	_, err := NewCodec(Options{TTL: time.Hour})
	require.Error(t, err)
	_, err = NewCodec(Options{Secret: testSecret})
	require.Error(t, err)
}
