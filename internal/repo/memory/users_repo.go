package memory

import (
	"context"
	"sync"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/google/uuid"
)

// UsersRepo keeps user documents in process memory. Iteration order of
// FindAll follows map order and is not stable.
type UsersRepo struct {
	mu    sync.RWMutex
	items map[string]user.User // {"id": document}
}

func NewUsersRepo() *UsersRepo {
	return &UsersRepo{
		items: make(map[string]user.User),
	}
}

func (r *UsersRepo) Insert(_ context.Context, doc user.Document) (user.User, error) {
	u := user.User{
		ID:       uuid.NewString(),
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
	}

	r.mu.Lock()
	r.items[u.ID] = u
	r.mu.Unlock()

	return u, nil
}

func (r *UsersRepo) FindByID(_ context.Context, id string) (user.User, error) {
	key, err := parseID(id)
	if err != nil {
		return user.User{}, err
	}

	r.mu.RLock()
	u, ok := r.items[key]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrNotFound
	}

	return u, nil
}

func (r *UsersRepo) FindAll(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}

	return out, nil
}

func (r *UsersRepo) FindAndUpdate(_ context.Context, id string, fields map[string]string) (user.User, error) {
	key, err := parseID(id)
	if err != nil {
		return user.User{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prior, ok := r.items[key]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	r.items[key] = prior.Merge(fields)

	return prior, nil
}

func (r *UsersRepo) DeleteByID(_ context.Context, id string) (int64, error) {
	key, err := parseID(id)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[key]; !ok {
		return 0, nil
	}
	delete(r.items, key)

	return 1, nil
}

func (r *UsersRepo) Ping(context.Context) error {
	return nil
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", user.ErrInvalidID
	}

	return parsed.String(), nil
}
