package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/minbar-press/minbar/internal/domain"
)

// UserRepo implements UserRepository using BadgerDB
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new BadgerDB-based user repository
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

func userIDKey(id string) []byte {
	return []byte(fmt.Sprintf("user:id:%s", id))
}

func userUsernameKey(username string) []byte {
	return []byte(fmt.Sprintf("user:username:%s", strings.ToLower(username)))
}

func userEmailKey(email string) []byte {
	return []byte(fmt.Sprintf("user:email:%s", strings.ToLower(email)))
}

// Create creates a new user
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userUsernameKey(user.Username)); err == nil {
			return domain.ErrUserAlreadyExists
		}
		if _, err := txn.Get(userEmailKey(user.Email)); err == nil {
			return domain.ErrUserAlreadyExists
		}

		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := txn.Set(userIDKey(user.ID), data); err != nil {
			return err
		}
		if err := txn.Set(userUsernameKey(user.Username), []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(userEmailKey(user.Email), []byte(user.ID))
	})
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userIDKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var id string
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userUsernameKey(username))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// ExistsByUsername checks if a username is taken
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(userUsernameKey(username))
}

// ExistsByEmail checks if an email is registered
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(userEmailKey(email))
}

func (r *UserRepo) exists(key []byte) (bool, error) {
	var found bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Update updates an existing user
func (r *UserRepo) Update(ctx context.Context, user *domain.User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userIDKey(user.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		data, err := json.Marshal(user)
		if err != nil {
			return err
		}
		return txn.Set(userIDKey(user.ID), data)
	})
}
