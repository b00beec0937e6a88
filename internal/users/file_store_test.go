package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(email string) User {
	hash, _ := HashPassword("s3cret")
	return User{ID: uuid.NewString(), Email: email, Name: "Test", Role: RoleUser, PasswordHash: hash}
}

func TestFileStore_CreateAndLookup(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	u := newUser("Alice@Example.com")
	require.NoError(t, store.Create(ctx, u))

	got, err := store.ByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, CheckPassword("s3cret", got.PasswordHash))
	assert.False(t, CheckPassword("wrong", got.PasswordHash))
}

func TestFileStore_DuplicateEmail(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, newUser("alice@example.com")))
	err := store.Create(ctx, newUser("ALICE@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestFileStore_UnknownEmail(t *testing.T) {
	store := NewFileStore(t.TempDir())

	_, err := store.ByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
