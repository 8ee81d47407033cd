package repository

import (
	"context"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
)

func seedUser(t *testing.T, repo UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "John",
		Email:        email,
		PasswordHash: "$2a$08$hash",
		Address:      "A",
		PhoneNumber:  "555",
		Age:          25,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestMemoryUserRepository_CreateAndGet(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := seedUser(t, repo, "john@x.com")
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@x.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "john@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_UniqueEmail(t *testing.T) {
	repo := NewMemoryUserRepository()
	seedUser(t, repo, "john@x.com")

	err := repo.Create(context.Background(), &domain.User{Email: "john@x.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestMemoryUserRepository_Update(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	john := seedUser(t, repo, "john@x.com")
	seedUser(t, repo, "jane@x.com")

	updated, err := repo.UpdateByID(ctx, john.ID, domain.UserPatch{})
	require.NoError(t, err)
	assert.False(t, updated, "empty patch")

	name := "Johnny"
	updated, err = repo.UpdateByID(ctx, "missing", domain.UserPatch{Name: &name})
	require.NoError(t, err)
	assert.False(t, updated)

	taken := "jane@x.com"
	_, err = repo.UpdateByID(ctx, john.ID, domain.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	email := "johnny@x.com"
	updated, err = repo.UpdateByID(ctx, john.ID, domain.UserPatch{Name: &name, Email: &email})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.GetByEmail(ctx, "johnny@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Johnny", got.Name)
	_, err = repo.GetByEmail(ctx, "john@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUserRepository_Delete(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	john := seedUser(t, repo, "john@x.com")
	seedUser(t, repo, "jane@x.com")
	seedUser(t, repo, "jim@x.com")

	deleted, err := repo.DeleteByID(ctx, john.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteByID(ctx, john.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestMemoryUserRepository_UpdateDoesNotRetainCallerKey(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()
	john := seedUser(t, repo, "john@x.com")

	// id backed by a buffer the caller reuses afterwards, as fiber does with route params
	buf := []byte(john.ID)
	id := unsafe.String(&buf[0], len(buf))
	age := 41
	updated, err := repo.UpdateByID(ctx, id, domain.UserPatch{Age: &age})
	require.NoError(t, err)
	require.True(t, updated)
	for i := range buf {
		buf[i] = 'x'
	}

	got, err := repo.GetByEmail(ctx, "john@x.com")
	require.NoError(t, err)
	assert.Equal(t, john.ID, got.ID)
	assert.Equal(t, john.PasswordHash, got.PasswordHash)
	assert.Equal(t, 41, got.Age)

	got, err = repo.GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, 41, got.Age)
}
