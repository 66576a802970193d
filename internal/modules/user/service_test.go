package user

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/lingrid/core/internal/models"
	"github.com/lingrid/core/internal/pkg/pagination"
	"github.com/lingrid/core/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserStore is an in-memory storage.UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*models.UserModel
	nextID  int
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

func (f *fakeUserStore) Search(_ context.Context, email string, offset, limit int) ([]models.UserModel, int64, error) {
	matched := make([]models.UserModel, 0)
	for _, u := range f.byEmail {
		if strings.Contains(u.Email, email) {
			matched = append(matched, *u)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Email < matched[j].Email })

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *models.UserModel) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return storage.ErrDuplicateEmail
	}
	f.nextID++
	if u.ID == "" {
		u.ID = fmt.Sprintf("id-%d", f.nextID)
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

func strptr(s string) *string { return &s }

func TestCreateAccountWithPassword(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	u, err := svc.CreateAccount(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", u.Email)
	require.NotNil(t, u.PasswordHash)
	assert.NotEqual(t, "hunter22", *u.PasswordHash)
	assert.Nil(t, u.OAuthProvider)
}

func TestCreateAccountOAuthOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	u, err := svc.CreateAccount(ctx, "a@b.co", nil, strptr("github"))
	require.NoError(t, err)
	assert.Nil(t, u.PasswordHash)
	require.NotNil(t, u.OAuthProvider)
	assert.Equal(t, "github", *u.OAuthProvider)
}

func TestCreateAccountRequiresCredential(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	_, err := svc.CreateAccount(ctx, "a@b.co", nil, nil)
	assert.ErrorIs(t, err, ErrMissingCredential)

	empty := ""
	_, err = svc.CreateAccount(ctx, "a@b.co", &empty, &empty)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	_, err := svc.CreateAccount(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	_, err = svc.CreateAccount(ctx, "a@b.co", strptr("other-pass"), nil)
	assert.ErrorIs(t, err, storage.ErrDuplicateEmail)
}

func TestVerifyCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	created, err := svc.CreateAccount(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	u, err := svc.VerifyCredentials(ctx, "a@b.co", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	_, err = svc.VerifyCredentials(ctx, "a@b.co", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.VerifyCredentials(ctx, "missing@b.co", "hunter22")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestVerifyCredentialsOAuthOnlyAccount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	_, err := svc.CreateAccount(ctx, "a@b.co", nil, strptr("github"))
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "a@b.co", "anything")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestCheckPass(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	_, err := svc.CreateAccount(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	ok, err := svc.CheckPass(ctx, "a@b.co", "hunter22")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckPass(ctx, "a@b.co", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	// A missing account is false, not an error.
	ok, err = svc.CheckPass(ctx, "missing@b.co", "hunter22")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSearchPagination(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := NewService(store)

	for i := 0; i < 15; i++ {
		_, err := svc.CreateAccount(ctx, fmt.Sprintf("user%02d@b.co", i), strptr("hunter22"), nil)
		require.NoError(t, err)
	}

	users, meta, err := svc.Search(ctx, "user", pagination.Normalize(1, 10))
	require.NoError(t, err)
	assert.Len(t, users, 10)
	assert.Equal(t, int64(15), meta.Total)
	assert.Equal(t, 2, meta.TotalPage)
	assert.True(t, meta.HasNextPage)

	users, meta, err = svc.Search(ctx, "user", pagination.Normalize(2, 10))
	require.NoError(t, err)
	assert.Len(t, users, 5)
	assert.False(t, meta.HasNextPage)

	users, meta, err = svc.Search(ctx, "nobody", pagination.Normalize(1, 10))
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Equal(t, int64(0), meta.Total)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserStore())

	_, err := svc.CreateAccount(ctx, "a@b.co", strptr("hunter22"), nil)
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", deleted.Email)

	_, err = svc.Delete(ctx, "a@b.co")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
