package app

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"triply/internal/domain"
)

type RegisterForm struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type AccountService struct {
	mu    sync.Mutex
	store domain.Store
	cost  int
}

// NewAccountService hashes passwords at cost; 0 means bcrypt.DefaultCost.
func NewAccountService(st domain.Store, cost int) *AccountService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AccountService{store: st, cost: cost}
}

func (s *AccountService) Register(ctx context.Context, f RegisterForm) (domain.User, error) {
	u := domain.User{
		FullName: strings.TrimSpace(f.FullName),
		Username: strings.TrimSpace(f.Username),
		Email:    strings.TrimSpace(f.Email),
	}
	if u.FullName == "" || u.Username == "" || u.Email == "" || f.Password == "" {
		return domain.User{}, fmt.Errorf("%w: fullName, username, password and email are required", domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	u.Password = string(hash)

	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := loadList[domain.User](ctx, s.store, domain.KeyUsers)
	if err != nil {
		return domain.User{}, err
	}
	if _, ok := findUser(users, u.Username); ok {
		return domain.User{}, fmt.Errorf("%w: username %s is taken", domain.ErrConflict, u.Username)
	}
	if err := s.store.Set(ctx, domain.KeyUsers, append(users, u)); err != nil {
		return domain.User{}, fmt.Errorf("save users: %w", err)
	}
	return public(u), nil
}

// Login checks the credentials. Unknown user and wrong password are the same
// error.
func (s *AccountService) Login(ctx context.Context, username, password string) (domain.User, error) {
	users, err := loadList[domain.User](ctx, s.store, domain.KeyUsers)
	if err != nil {
		return domain.User{}, err
	}
	u, ok := findUser(users, strings.TrimSpace(username))
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return public(u), nil
}

// Get returns the user without the password hash.
func (s *AccountService) Get(ctx context.Context, username string) (domain.User, error) {
	users, err := loadList[domain.User](ctx, s.store, domain.KeyUsers)
	if err != nil {
		return domain.User{}, err
	}
	u, ok := findUser(users, username)
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
	}
	return public(u), nil
}

func (s *AccountService) List(ctx context.Context) ([]domain.User, error) {
	users, err := loadList[domain.User](ctx, s.store, domain.KeyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = public(users[i])
	}
	return users, nil
}

func (s *AccountService) Delete(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := loadList[domain.User](ctx, s.store, domain.KeyUsers)
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.Username == username {
			next := append(users[:i:i], users[i+1:]...)
			if err := s.store.Set(ctx, domain.KeyUsers, next); err != nil {
				return fmt.Errorf("save users: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: user %s", domain.ErrNotFound, username)
}

func findUser(users []domain.User, username string) (domain.User, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

func public(u domain.User) domain.User {
	u.Password = ""
	return u
}
