package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevoker struct {
	revoked []string
	err     error
}

func (f *fakeRevoker) RevokeRefreshTokens(_ context.Context, uid string) error {
	if f.err != nil {
		return f.err
	}
	f.revoked = append(f.revoked, uid)
	return nil
}

type fakeDrafts struct{ discarded []string }

func (f *fakeDrafts) Discard(userID string) { f.discarded = append(f.discarded, userID) }

func TestSignOut(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes and discards", func(t *testing.T) {
		rev, drafts := &fakeRevoker{}, &fakeDrafts{}
		require.NoError(t, NewAuthService(rev, drafts).SignOut(ctx, "uid-1"))
		assert.Equal(t, []string{"uid-1"}, rev.revoked)
		assert.Equal(t, []string{"uid-1"}, drafts.discarded)
	})

	t.Run("draft kept when revoke fails", func(t *testing.T) {
		rev, drafts := &fakeRevoker{err: errors.New("firebase unavailable")}, &fakeDrafts{}
		err := NewAuthService(rev, drafts).SignOut(ctx, "uid-1")
		require.Error(t, err)
		assert.ErrorIs(t, err, rev.err)
		assert.Empty(t, drafts.discarded)
	})

	t.Run("nil revoker", func(t *testing.T) {
		drafts := &fakeDrafts{}
		require.NoError(t, NewAuthService(nil, drafts).SignOut(ctx, "uid-1"))
		assert.Equal(t, []string{"uid-1"}, drafts.discarded)
	})

	t.Run("blank uid", func(t *testing.T) {
		assert.Error(t, NewAuthService(nil, nil).SignOut(ctx, " "))
	})
}
