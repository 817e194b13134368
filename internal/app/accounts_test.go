package app_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"triply/internal/app"
	"triply/internal/domain"
)

func TestRegisterAndLogin(t *testing.T) {
	st := &memStore{}
	svc := app.NewAccountService(st, bcrypt.MinCost)
	ctx := context.Background()

	u, err := svc.Register(ctx, app.RegisterForm{FullName: "Rina Putri", Username: "rina", Password: "s3cret", Email: "rina@example.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Password != "" {
		t.Fatalf("hash must not be returned")
	}

	var stored []domain.User
	_, _ = st.Get(ctx, domain.KeyUsers, &stored)
	if len(stored) != 1 || stored[0].Password == "s3cret" || stored[0].Password == "" {
		t.Fatalf("password must be stored hashed: %+v", stored)
	}

	got, err := svc.Login(ctx, "rina", "s3cret")
	if err != nil || got.FullName != "Rina Putri" {
		t.Fatalf("Login: %+v %v", got, err)
	}
	if _, err := svc.Login(ctx, "rina", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("bad password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "ghost", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: want ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_Errors(t *testing.T) {
	svc := app.NewAccountService(&memStore{}, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.Register(ctx, app.RegisterForm{Username: "x", Password: "p", Email: "e"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("missing name: want ErrValidation, got %v", err)
	}
	f := app.RegisterForm{FullName: "A", Username: "a", Password: "p", Email: "a@x"}
	if _, err := svc.Register(ctx, f); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, f); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate: want ErrConflict, got %v", err)
	}
}

func TestListAndDeleteUsers(t *testing.T) {
	svc := app.NewAccountService(&memStore{}, bcrypt.MinCost)
	ctx := context.Background()
	for _, n := range []string{"a", "b"} {
		if _, err := svc.Register(ctx, app.RegisterForm{FullName: n, Username: n, Password: "p", Email: n + "@x"}); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}
	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	users, err := svc.List(ctx)
	if err != nil || len(users) != 1 || users[0].Username != "b" || users[0].Password != "" {
		t.Fatalf("List: %+v %v", users, err)
	}
	if _, err := svc.Get(ctx, "a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get deleted: want ErrNotFound, got %v", err)
	}
}

func TestLanguagePreference(t *testing.T) {
	svc := app.NewPrefsService(&memStore{})
	ctx := context.Background()

	if l, _ := svc.Language(ctx); l != "en" {
		t.Fatalf("default: want en, got %s", l)
	}
	if _, err := svc.SetLanguage(ctx, "fr"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if l, err := svc.SetLanguage(ctx, " ID "); err != nil || l != "id" {
		t.Fatalf("SetLanguage: %s %v", l, err)
	}
	if l, _ := svc.Language(ctx); l != "id" {
		t.Fatalf("want id, got %s", l)
	}
}
