package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, accessTTL, refreshTTL time.Duration) *Codec {
	t.Helper()
	codec, err := NewCodec(Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	})
	require.NoError(t, err)
	return codec
}

func TestNewCodecRequiresSecrets(t *testing.T) {
	_, err := NewCodec(Config{AccessSecret: "a"})
	assert.Error(t, err)

	_, err = NewCodec(Config{RefreshSecret: "r"})
	assert.Error(t, err)
}

func TestNewCodecAppliesDefaultTTLs(t *testing.T) {
	codec := newTestCodec(t, 0, 0)
	assert.Equal(t, DefaultAccessTTL, codec.AccessTTL())
	assert.Equal(t, DefaultRefreshTTL, codec.RefreshTTL())
}

func TestAccessRoundtrip(t *testing.T) {
	codec := newTestCodec(t, 0, 0)

	signed, err := codec.SignAccess("user-1", "a@b.co")
	require.NoError(t, err)

	claims, err := codec.VerifyAccess(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
	assert.Equal(t, TypeAccess, claims.TokenType)
}

func TestRefreshCarriesUniqueSessionID(t *testing.T) {
	codec := newTestCodec(t, 0, 0)

	signed1, jti1, err := codec.SignRefresh("user-1", "a@b.co")
	require.NoError(t, err)
	_, jti2, err := codec.SignRefresh("user-1", "a@b.co")
	require.NoError(t, err)
	assert.NotEqual(t, jti1, jti2)

	claims, err := codec.VerifyRefresh(signed1)
	require.NoError(t, err)
	assert.Equal(t, jti1, claims.SessionID())
	assert.Equal(t, TypeRefresh, claims.TokenType)
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	codec := newTestCodec(t, 0, 0)

	access, err := codec.SignAccess("user-1", "a@b.co")
	require.NoError(t, err)
	refresh, _, err := codec.SignRefresh("user-1", "a@b.co")
	require.NoError(t, err)

	// Even with matching secrets the token_type claim must agree.
	_, err = codec.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = codec.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsTampering(t *testing.T) {
	codec := newTestCodec(t, 0, 0)

	signed, err := codec.SignAccess("user-1", "a@b.co")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(signed + "x")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = codec.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	codec := newTestCodec(t, 0, 0)
	other, err := NewCodec(Config{AccessSecret: "other-access", RefreshSecret: "other-refresh"})
	require.NoError(t, err)

	signed, err := other.SignAccess("user-1", "a@b.co")
	require.NoError(t, err)

	_, err = codec.VerifyAccess(signed)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyExpired(t *testing.T) {
	codec := newTestCodec(t, -time.Minute, -time.Minute)

	access, err := codec.SignAccess("user-1", "a@b.co")
	require.NoError(t, err)
	_, err = codec.VerifyAccess(access)
	assert.ErrorIs(t, err, ErrExpired)

	refresh, _, err := codec.SignRefresh("user-1", "a@b.co")
	require.NoError(t, err)
	_, err = codec.VerifyRefresh(refresh)
	assert.ErrorIs(t, err, ErrExpired)
}
