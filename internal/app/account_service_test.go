package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
	"github.com/Ngapa/banyu-job-vacation/internal/security"
)

func newAccountServiceForTest() (*AccountService, *fakeUserRepository, *fakeRefreshTokenRepository) {
	users := newFakeUserRepository()
	tokens := newFakeRefreshTokenRepository()
	svc := NewAccountService(
		users,
		tokens,
		security.NewJWTProvider("test-secret"),
		security.NewPasswordHasher(4),
		fakeLogger{},
		15*time.Minute,
		24*time.Hour,
	)
	return svc, users, tokens
}

func employeeInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ayu",
		LastName:  "Lestari",
		Gender:    "female",
		Email:     "ayu@example.com",
		Password:  "correct horse",
	}
}

func TestRegisterEmployee(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	account, err := svc.RegisterEmployee(context.Background(), employeeInput())
	if err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}
	if account.Role != user.RoleEmployee {
		t.Fatalf("expected employee role, got %q", account.Role)
	}
	if !account.IsActive {
		t.Fatal("new account must be active")
	}
	if account.PasswordHash == "correct horse" {
		t.Fatal("password must not be stored in plain text")
	}
}

func TestRegisterEmployeeValidation(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	input := RegisterInput{Email: "not-an-email", Password: "short"}
	_, err := svc.RegisterEmployee(context.Background(), input)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *common.Error, got %T", err)
	}
	for _, field := range []string{"first_name", "last_name", "email", "password", "gender"} {
		if _, ok := appErr.Fields[field]; !ok {
			t.Errorf("expected %s field error, got %v", field, appErr.Fields)
		}
	}
}

func TestRegisterEmployerSkipsGender(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	input := employeeInput()
	input.Gender = ""
	input.Email = "hr@banyu.example"
	account, err := svc.RegisterEmployer(context.Background(), input)
	if err != nil {
		t.Fatalf("RegisterEmployer: %v", err)
	}
	if account.Role != user.RoleEmployer {
		t.Fatalf("expected employer role, got %q", account.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()

	if _, err := svc.RegisterEmployee(context.Background(), employeeInput()); err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}
	if _, err := svc.RegisterEmployee(context.Background(), employeeInput()); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict for a duplicate email, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	if _, err := svc.RegisterEmployee(context.Background(), employeeInput()); err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}

	result, err := svc.Login(context.Background(), "ayu@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("login must issue both tokens")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	if _, err := svc.RegisterEmployee(context.Background(), employeeInput()); err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}

	if _, err := svc.Login(context.Background(), "ayu@example.com", "wrong"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for a wrong password, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "correct horse"); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for an unknown email, got %v", err)
	}
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, users, _ := newAccountServiceForTest()
	account, err := svc.RegisterEmployee(context.Background(), employeeInput())
	if err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}
	users.setActive(account.ID, false)

	if _, err := svc.Login(context.Background(), "ayu@example.com", "correct horse"); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for an inactive account, got %v", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	if _, err := svc.RegisterEmployee(context.Background(), employeeInput()); err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}
	result, err := svc.Login(context.Background(), "ayu@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	rotated, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.RefreshToken == result.Tokens.RefreshToken {
		t.Fatal("refresh must rotate the refresh token")
	}

	// The burned token must not work a second time.
	if _, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for a reused refresh token, got %v", err)
	}
	if _, err := svc.Refresh(context.Background(), rotated.RefreshToken); err != nil {
		t.Fatalf("the rotated token must still work: %v", err)
	}
}

func TestLogoutRevokes(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	if _, err := svc.RegisterEmployee(context.Background(), employeeInput()); err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}
	result, err := svc.Login(context.Background(), "ayu@example.com", "correct horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), result.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), result.Tokens.RefreshToken); !common.Is(err, common.CodeUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newAccountServiceForTest()
	account, err := svc.RegisterEmployee(context.Background(), employeeInput())
	if err != nil {
		t.Fatalf("RegisterEmployee: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), account.ID, UpdateProfileInput{
		FirstName: "Dewi",
		LastName:  "Lestari",
		Gender:    "female",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Dewi" {
		t.Fatalf("expected first name update, got %q", updated.FirstName)
	}
	if updated.Role != user.RoleEmployee {
		t.Fatal("profile update must not change the role")
	}

	if _, err := svc.UpdateProfile(context.Background(), account.ID, UpdateProfileInput{}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for empty names, got %v", err)
	}
}
