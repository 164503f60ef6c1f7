package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/minbar-press/minbar/internal/domain"
)

func TestUserAuthFlow(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()

	// 1. Register
	token, err := env.UserService.Register(ctx, &domain.UserRegisterRequest{
		Username: "amira",
		Email:    "amira@example.com",
		FullName: "Amira Haddad",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Failed to register user: %v", err)
	}
	if token.AccessToken == "" {
		t.Error("Expected an access token on registration")
	}
	if token.TokenType != "bearer" {
		t.Errorf("Expected token type bearer, got %s", token.TokenType)
	}
	if token.User == nil || token.User.Username != "amira" {
		t.Fatalf("Expected user in token response, got %+v", token.User)
	}

	// 2. The token validates and carries the user identity
	claims, err := env.JWTManager.Validate(token.AccessToken)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.UserID != token.User.ID {
		t.Errorf("Token user ID mismatch: %s vs %s", claims.UserID, token.User.ID)
	}

	// 3. Duplicate username is rejected
	_, err = env.UserService.Register(ctx, &domain.UserRegisterRequest{
		Username: "amira",
		Email:    "other@example.com",
		FullName: "Someone Else",
		Password: "password456",
	})
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("Expected ErrUserAlreadyExists, got %v", err)
	}

	// 4. Login with correct credentials
	loginToken, err := env.UserService.Login(ctx, &domain.UserLoginRequest{
		Username: "amira",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Failed to login: %v", err)
	}
	if loginToken.User.ID != token.User.ID {
		t.Error("Login returned a different user")
	}

	// 5. Wrong password is rejected without leaking which part failed
	_, err = env.UserService.Login(ctx, &domain.UserLoginRequest{
		Username: "amira",
		Password: "wrong-password",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
	_, err = env.UserService.Login(ctx, &domain.UserLoginRequest{
		Username: "nobody",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", err)
	}

	// 6. Profile update
	profile, err := env.UserService.UpdateProfile(ctx, token.User.ID, &domain.ProfileUpdateRequest{
		FullName: "Amira H.",
	})
	if err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}
	if profile.FullName != "Amira H." {
		t.Errorf("Expected updated full name, got %s", profile.FullName)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := SetupTestEnv(t)
	defer env.Cleanup()

	ctx := context.Background()

	cases := []struct {
		name string
		req  *domain.UserRegisterRequest
	}{
		{"short username", &domain.UserRegisterRequest{
			Username: "ab", Email: "a@example.com", FullName: "A", Password: "password123",
		}},
		{"bad email", &domain.UserRegisterRequest{
			Username: "valid", Email: "not-an-email", FullName: "A", Password: "password123",
		}},
		{"short password", &domain.UserRegisterRequest{
			Username: "valid", Email: "a@example.com", FullName: "A", Password: "short",
		}},
	}

	for _, tc := range cases {
		_, err := env.UserService.Register(ctx, tc.req)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}
