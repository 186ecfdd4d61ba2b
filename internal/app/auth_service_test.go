package app

import (
	"context"
	"testing"
	"time"

	"veridia/internal/common"
	"veridia/internal/domain/user"
	"veridia/internal/notify"
	"veridia/internal/observability"
	"veridia/internal/security"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeDispatcher) {
	users := newFakeUserRepo()
	dispatcher := &fakeDispatcher{}
	service := NewAuthService(users, &fakeActivityRepo{}, security.NewJWTProvider("secret"), dispatcher, observability.NewLogger(), time.Minute, time.Hour)
	return service, users, dispatcher
}

func TestRegister_CreatesApplicantAndSendsVerification(t *testing.T) {
	service, users, dispatcher := newAuthFixture()

	created, err := service.Register(context.Background(), RegisterInput{
		Email:     "  Jane@Example.com ",
		Password:  "correct-horse",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Role != user.RoleApplicant {
		t.Fatalf("expected applicant role, got %q", created.Role)
	}
	if created.PasswordHash == "correct-horse" {
		t.Fatal("expected password to be hashed")
	}
	if _, err := users.GetByEmail(context.Background(), "jane@example.com"); err != nil {
		t.Fatalf("expected user to be stored, got %v", err)
	}
	kinds := dispatcher.sent()
	if len(kinds) != 1 || kinds[0] != notify.KindVerification {
		t.Fatalf("expected verification email, got %v", kinds)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	service, _, _ := newAuthFixture()

	_, err := service.Register(context.Background(), RegisterInput{
		Email:    "jane@example.com",
		Password: "short",
	})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	service, _, _ := newAuthFixture()

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "jane@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	_, _, err := service.Login(context.Background(), "jane@example.com", "wrong-horse")
	if !common.Is(err, common.CodeInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLogin_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	service, _, _ := newAuthFixture()

	_, _, err := service.Login(context.Background(), "nobody@example.com", "whatever-pass")
	if !common.Is(err, common.CodeInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLogin_IssuesUsableTokenPair(t *testing.T) {
	service, _, _ := newAuthFixture()

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "jane@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	pair, account, err := service.Login(context.Background(), "jane@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if account.Email != "jane@example.com" {
		t.Fatalf("expected account in login response, got %+v", account)
	}

	refreshed, err := service.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("expected refresh to succeed, got %v", err)
	}
	if refreshed.AccessToken == "" {
		t.Fatal("expected a fresh access token")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	service, _, _ := newAuthFixture()

	if _, err := service.Register(context.Background(), RegisterInput{
		Email:    "jane@example.com",
		Password: "correct-horse",
	}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	pair, _, err := service.Login(context.Background(), "jane@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if _, err := service.Refresh(context.Background(), pair.AccessToken); !common.Is(err, common.CodeInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}
