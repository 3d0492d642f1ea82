package database

import (
	"fmt"
	"time"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

type UserRepo struct {
	store *store
}

func NewUserRepo(store *store) *UserRepo {
	return &UserRepo{store}
}

// FindByID returns the user with the given id.
func (r *UserRepo) FindByID(id int) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.doc.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %d: %w", id, errs.ErrNotFound)
}

// FindByUsername returns the user with the given username.
func (r *UserRepo) FindByUsername(username string) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.doc.Users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, errs.ErrNotFound)
}

// Add inserts a new user with an assigned id and timestamps. Usernames
// are unique; inserting a duplicate is rejected. Only the boot-time
// admin seed calls this.
func (r *UserRepo) Add(user models.User) (models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	maxID := 0
	for _, u := range r.store.doc.Users {
		if u.Username == user.Username {
			return models.User{}, fmt.Errorf("user %q: %w", user.Username, errs.ErrAlreadyExists)
		}
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	now := time.Now().UTC()
	user.ID = maxID + 1
	user.CreatedAt = now
	user.UpdatedAt = now

	r.store.doc.Users = append(r.store.doc.Users, user)
	if err := r.store.flush(); err != nil {
		r.store.doc.Users = r.store.doc.Users[:len(r.store.doc.Users)-1]
		return models.User{}, err
	}
	return user, nil
}
