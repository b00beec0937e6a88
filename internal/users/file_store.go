package users

import (
	"context"

	"github.com/malafaareh/storefront/internal/jsonstore"
)

type FileStore struct {
	col *jsonstore.Collection[User]
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{col: jsonstore.NewCollection[User](dir, "users")}
}

func (s *FileStore) ByEmail(_ context.Context, email string) (*User, error) {
	all, err := s.col.All()
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	for _, u := range all {
		if normalizeEmail(u.Email) == email {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *FileStore) Create(_ context.Context, u User) error {
	return s.col.Update(func(all []User) ([]User, error) {
		for _, existing := range all {
			if normalizeEmail(existing.Email) == normalizeEmail(u.Email) {
				return nil, ErrEmailTaken
			}
		}
		return append(all, u), nil
	})
}
