package auth

import (
	"context"
	"testing"

	"github.com/lingrid/core/internal/models"
	"github.com/lingrid/core/internal/modules/auth/authority"
	usermod "github.com/lingrid/core/internal/modules/user"
	"github.com/lingrid/core/internal/pkg/token"
	"github.com/lingrid/core/internal/sessionstore"
	"github.com/lingrid/core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory storage.UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*models.UserModel
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.UserModel)}
}

func (f *fakeUserStore) ByEmail(_ context.Context, email string) (*models.UserModel, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) ByID(_ context.Context, id string) (*models.UserModel, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) Search(context.Context, string, int, int) ([]models.UserModel, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *models.UserModel) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return storage.ErrDuplicateEmail
	}
	if u.ID == "" {
		u.ID = "id-" + u.Email
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) DeleteByEmail(_ context.Context, email string) (*models.UserModel, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	delete(f.byEmail, email)
	return u, nil
}

func newTestService(t *testing.T) (*Service, *authority.Authority) {
	t.Helper()
	codec, err := token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	require.NoError(t, err)
	authz := authority.New(codec, sessionstore.NewMemoryStore())
	users := usermod.NewService(newFakeUserStore())
	return NewService(users, authz), authz
}

func strptr(s string) *string { return &s }

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc, authz := newTestService(t)

	id, pair, err := svc.Register(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", id.Email)
	assert.NotEmpty(t, pair.AccessToken)

	got, err := authz.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	id2, pair2, err := svc.Login(ctx, "a@b.co", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, id, id2)
	assert.NotEqual(t, pair.SessionID, pair2.SessionID)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, _, err := svc.Register(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "a@b.co", strptr("hunter22"), nil)
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestLoginErrorsAreDistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, _, err := svc.Register(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "missing@b.co", "hunter22")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, _, err = svc.Login(ctx, "a@b.co", "wrong")
	assert.ErrorIs(t, err, usermod.ErrWrongPassword)
}

func TestRefreshRotates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, pair, err := svc.Register(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	id, pair2, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", id.Email)
	assert.NotEqual(t, pair.SessionID, pair2.SessionID)

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, authority.CauseSessionNotFound, authority.CauseOf(err))
}

func TestLogoutKillsRefreshSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	_, pair, err := svc.Register(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	svc.Logout(ctx, pair.RefreshToken)

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, authority.CauseSessionNotFound, authority.CauseOf(err))

	// Logout is idempotent and tolerates garbage.
	svc.Logout(ctx, pair.RefreshToken)
	svc.Logout(ctx, "garbage")
	svc.Logout(ctx, "")
}
