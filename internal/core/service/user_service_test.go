package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendhub/vending-machine/internal/core/domain"
	"github.com/vendhub/vending-machine/internal/core/ports"
)

func newUserService() (*UserService, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewUserService(repo, zerolog.Nop()), repo
}

func TestUserService_Create(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Username: "alice",
		Password: "pass123",
		Role:     domain.RoleBuyer,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Deposit != 0 {
		t.Fatalf("expected initial deposit 0, got %d", user.Deposit)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateUserInput{Password: "pass", Role: domain.RoleBuyer}); !errors.Is(err, domain.ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Role: domain.RoleBuyer}); !errors.Is(err, domain.ErrPasswordRequired) {
		t.Fatalf("expected ErrPasswordRequired, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Password: "pass"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for absent role, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Password: "pass", Role: "root"}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole for unknown role, got %v", err)
	}
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Password: "pass1234", Role: domain.RoleSeller}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateUserInput{Username: "bob", Password: "other456", Role: domain.RoleBuyer}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Deposit_AllowedCoins(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	buyer := registerUser(t, repo, "buyer", "pass123", domain.RoleBuyer)

	want := 0
	for _, coin := range []int{5, 10, 20, 50, 100} {
		user, err := svc.Deposit(ctx, buyer.ID, coin)
		if err != nil {
			t.Fatalf("Deposit(%d) returned error: %v", coin, err)
		}
		want += coin
		if user.Deposit != want {
			t.Fatalf("after depositing %d, balance = %d, want %d", coin, user.Deposit, want)
		}
	}
}

func TestUserService_Deposit_RejectedAmounts(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	buyer := registerUser(t, repo, "buyer", "pass123", domain.RoleBuyer)

	for _, amount := range []int{-5, 0, 1, 3, 7, 15, 25, 99, 101} {
		if _, err := svc.Deposit(ctx, buyer.ID, amount); !errors.Is(err, domain.ErrInvalidCoin) {
			t.Fatalf("Deposit(%d): expected ErrInvalidCoin, got %v", amount, err)
		}
	}

	user, err := repo.FindByID(ctx, buyer.ID)
	if err != nil {
		t.Fatalf("find buyer: %v", err)
	}
	if user.Deposit != 0 {
		t.Fatalf("rejected deposits must not change the balance, got %d", user.Deposit)
	}
}

func TestUserService_ResetDeposit_Idempotent(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	buyer := registerUser(t, repo, "buyer", "pass123", domain.RoleBuyer)

	if _, err := svc.Deposit(ctx, buyer.ID, 100); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		user, err := svc.ResetDeposit(ctx, buyer.ID)
		if err != nil {
			t.Fatalf("reset %d failed: %v", i+1, err)
		}
		if user.Deposit != 0 {
			t.Fatalf("reset %d: balance = %d, want 0", i+1, user.Deposit)
		}
	}
}

func TestUserService_Update_PartialPatch(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	user := registerUser(t, repo, "frank", "oldpass1", domain.RoleBuyer)

	// Empty patch changes nothing.
	updated, err := svc.Update(ctx, user.ID, ports.UpdateUserInput{})
	if err != nil {
		t.Fatalf("empty patch failed: %v", err)
	}
	if updated.Username != "frank" || updated.Role != domain.RoleBuyer {
		t.Fatalf("empty patch mutated the user: %+v", updated)
	}

	// Username change is applied.
	name := "franklin"
	updated, err = svc.Update(ctx, user.ID, ports.UpdateUserInput{Username: &name})
	if err != nil {
		t.Fatalf("username patch failed: %v", err)
	}
	if updated.Username != "franklin" {
		t.Fatalf("username = %q, want franklin", updated.Username)
	}

	// Blank username is rejected, not treated as "clear".
	blank := ""
	if _, err := svc.Update(ctx, user.ID, ports.UpdateUserInput{Username: &blank}); !errors.Is(err, domain.ErrUsernameRequired) {
		t.Fatalf("expected ErrUsernameRequired, got %v", err)
	}

	// An explicit deposit of 0 clears the balance.
	if _, err := svc.Deposit(ctx, user.ID, 50); err != nil {
		t.Fatalf("deposit failed: %v", err)
	}
	zero := 0
	updated, err = svc.Update(ctx, user.ID, ports.UpdateUserInput{Deposit: &zero})
	if err != nil {
		t.Fatalf("deposit patch failed: %v", err)
	}
	if updated.Deposit != 0 {
		t.Fatalf("explicit zero deposit not applied, balance = %d", updated.Deposit)
	}

	// Negative deposit is rejected.
	negative := -10
	if _, err := svc.Update(ctx, user.ID, ports.UpdateUserInput{Deposit: &negative}); !errors.Is(err, domain.ErrNegativeDeposit) {
		t.Fatalf("expected ErrNegativeDeposit, got %v", err)
	}
}

func TestUserService_Update_UsernameConflict(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	registerUser(t, repo, "grace", "pass1234", domain.RoleSeller)
	other := registerUser(t, repo, "heidi", "pass1234", domain.RoleSeller)

	taken := "grace"
	if _, err := svc.Update(ctx, other.ID, ports.UpdateUserInput{Username: &taken}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestUserService_Update_RoleChange(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	user := registerUser(t, repo, "ivan", "pass1234", domain.RoleBuyer)

	role := domain.RoleSeller
	updated, err := svc.Update(ctx, user.ID, ports.UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("role patch failed: %v", err)
	}
	if updated.Role != domain.RoleSeller {
		t.Fatalf("role = %q, want seller", updated.Role)
	}

	bad := domain.Role("root")
	if _, err := svc.Update(ctx, user.ID, ports.UpdateUserInput{Role: &bad}); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	user := registerUser(t, repo, "judy", "pass1234", domain.RoleBuyer)

	if err := svc.Delete(ctx, user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(ctx, user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_Pagination(t *testing.T) {
	svc, repo := newUserService()
	ctx := context.Background()
	registerUser(t, repo, "u1", "pass1234", domain.RoleBuyer)
	registerUser(t, repo, "u2", "pass1234", domain.RoleBuyer)
	registerUser(t, repo, "u3", "pass1234", domain.RoleBuyer)

	page, err := svc.List(ctx, ports.PageFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("total = %d, want 3", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(page.Items))
	}
	if page.TotalPages != 2 {
		t.Fatalf("total pages = %d, want 2", page.TotalPages)
	}
}
