package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/userhub/internal/domain/user"
	"github.com/geocoder89/userhub/internal/security"
)

var ErrHashing = errors.New("could not hash password")

const createdMessage = "User created successfully"

// Store is the document collection behind the service. Implementations
// return user.ErrInvalidID for ids they cannot parse and user.ErrNotFound
// when FindByID or FindAndUpdate match nothing.
type Store interface {
	Insert(ctx context.Context, doc user.Document) (user.User, error)
	FindByID(ctx context.Context, id string) (user.User, error)
	FindAll(ctx context.Context) ([]user.User, error)
	// FindAndUpdate applies a set-merge of fields and returns the document
	// as it was before the update.
	FindAndUpdate(ctx context.Context, id string, fields map[string]string) (user.User, error)
	// DeleteByID returns how many documents were removed.
	DeleteByID(ctx context.Context, id string) (int64, error)
	Ping(ctx context.Context) error
}

// Observer records the latency and outcome of a logical store operation.
type Observer interface {
	ObserveDB(op string, fn func() error) error
}

type noopObserver struct{}

func (noopObserver) ObserveDB(_ string, fn func() error) error { return fn() }

type CreateResult struct {
	Message string        `json:"message"`
	User    user.Document `json:"user"`
}

type Service struct {
	store  Store
	hasher security.Hasher
	obs    Observer
}

func NewService(store Store, hasher security.Hasher, obs Observer) *Service {
	if obs == nil {
		obs = noopObserver{}
	}

	return &Service{store: store, hasher: hasher, obs: obs}
}

func (s *Service) CreateUser(ctx context.Context, req user.CreateUserRequest) (CreateResult, error) {
	if err := user.Validate(req); err != nil {
		return CreateResult{}, err
	}

	digest, err := s.hashPassword(req.Password)
	if err != nil {
		return CreateResult{}, err
	}

	doc := user.Document{
		Name:     req.Name,
		Email:    req.Email,
		Password: digest,
	}

	err = s.obs.ObserveDB("users.insert", func() error {
		_, err := s.store.Insert(ctx, doc)
		return err
	})
	if err != nil {
		return CreateResult{}, fmt.Errorf("insert user: %w", err)
	}

	return CreateResult{Message: createdMessage, User: doc}, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := s.obs.ObserveDB("users.find_one", func() error {
		var err error
		u, err = s.store.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return user.User{}, fmt.Errorf("get user %q: %w", id, err)
	}

	return u, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]user.User, error) {
	var out []user.User

	err := s.obs.ObserveDB("users.find_all", func() error {
		var err error
		out, err = s.store.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	if out == nil {
		out = []user.User{}
	}

	return out, nil
}

// UpdateUser merges the supplied fields into the stored document. The
// create schema is not re-applied here; a supplied password is still hashed.
func (s *Service) UpdateUser(ctx context.Context, id string, req user.UpdateUserRequest) error {
	if req.IsEmpty() {
		// nothing to $set, only existence decides the outcome
		_, err := s.GetUser(ctx, id)
		return err
	}

	if req.Password != nil {
		digest, err := s.hashPassword(*req.Password)
		if err != nil {
			return err
		}
		req.Password = &digest
	}

	err := s.obs.ObserveDB("users.find_one_and_update", func() error {
		_, err := s.store.FindAndUpdate(ctx, id, req.Fields())
		return err
	})
	if err != nil {
		return fmt.Errorf("update user %q: %w", id, err)
	}

	return nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	var deleted int64

	err := s.obs.ObserveDB("users.delete_one", func() error {
		var err error
		deleted, err = s.store.DeleteByID(ctx, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("delete user %q: %w", id, err)
	}

	if deleted == 0 {
		return fmt.Errorf("delete user %q: %w", id, user.ErrNotFound)
	}

	return nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) hashPassword(plain string) (string, error) {
	digest, err := s.hasher.Hash(plain)
	if err == nil {
		return digest, nil
	}

	if errors.Is(err, security.ErrPasswordTooLong) {
		return "", user.PasswordTooLong()
	}

	return "", fmt.Errorf("%w: %v", ErrHashing, err)
}
