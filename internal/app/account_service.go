package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/auth"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
	"github.com/Ngapa/banyu-job-vacation/internal/security"
)

type Logger interface {
	Info(msg string)
	Error(msg string)
}

const (
	passwordMinLength = 8
	refreshTokenBytes = 32
	genderMale        = "male"
	genderFemale      = "female"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AccountService struct {
	users         user.Repository
	refreshTokens auth.RefreshTokenRepository
	jwtProvider   *security.JWTProvider
	hasher        *security.PasswordHasher
	logger        Logger
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAccountService(users user.Repository, refreshTokens auth.RefreshTokenRepository, jwtProvider *security.JWTProvider, hasher *security.PasswordHasher, logger Logger, accessTTL, refreshTTL time.Duration) *AccountService {
	return &AccountService{
		users:         users,
		refreshTokens: refreshTokens,
		jwtProvider:   jwtProvider,
		hasher:        hasher,
		logger:        logger,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Gender    string
	Email     string
	Password  string
}

func (s *AccountService) RegisterEmployee(ctx context.Context, input RegisterInput) (*user.User, error) {
	fields := validateRegisterInput(input)
	if strings.TrimSpace(input.Gender) == "" {
		fields["gender"] = "gender is required"
	} else if g := strings.ToLower(strings.TrimSpace(input.Gender)); g != genderMale && g != genderFemale {
		fields["gender"] = "gender must be male or female"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	return s.register(ctx, input, user.RoleEmployee)
}

func (s *AccountService) RegisterEmployer(ctx context.Context, input RegisterInput) (*user.User, error) {
	fields := validateRegisterInput(input)
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid registration", fields)
	}
	return s.register(ctx, input, user.RoleEmployer)
}

func (s *AccountService) register(ctx context.Context, input RegisterInput, role user.Role) (*user.User, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         role,
		Gender:       strings.ToLower(strings.TrimSpace(input.Gender)),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("registered " + string(role) + " " + created.ID.String())
	return created, nil
}

func validateRegisterInput(input RegisterInput) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(input.FirstName) == "" {
		fields["first_name"] = "first name is required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields["last_name"] = "last name is required"
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "email is invalid"
	}
	if len(input.Password) < passwordMinLength {
		fields["password"] = "password must be at least 8 characters"
	}
	return fields
}

type LoginResult struct {
	User   *user.User
	Tokens auth.TokenPair
}

func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
		}
		return nil, err
	}
	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, common.NewError(common.CodeUnauthorized, "invalid email or password", nil)
	}
	if !account.IsActive {
		return nil, common.NewError(common.CodeForbidden, "user is not active", nil)
	}
	tokens, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: account, Tokens: *tokens}, nil
}

func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, strings.TrimSpace(refreshToken))
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, err
	}
	now := time.Now().UTC()
	if stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return nil, common.NewError(common.CodeUnauthorized, "refresh token expired", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, common.NewError(common.CodeForbidden, "user is not active", nil)
	}
	// Rotation: the presented token is burned before a new pair is issued.
	if err := s.refreshTokens.Revoke(ctx, stored.Token, now); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, account)
}

func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.refreshTokens.Revoke(ctx, strings.TrimSpace(refreshToken), time.Now().UTC())
}

func (s *AccountService) Profile(ctx context.Context, userID common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Gender    string
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID common.UUID, input UpdateProfileInput) (*user.User, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.FirstName) == "" {
		fields["first_name"] = "first name is required"
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields["last_name"] = "last name is required"
	}
	if g := strings.ToLower(strings.TrimSpace(input.Gender)); g != "" && g != genderMale && g != genderFemale {
		fields["gender"] = "gender must be male or female"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid profile", fields)
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account.FirstName = strings.TrimSpace(input.FirstName)
	account.LastName = strings.TrimSpace(input.LastName)
	account.Gender = strings.ToLower(strings.TrimSpace(input.Gender))
	return s.users.Update(ctx, *account)
}

func (s *AccountService) issueTokens(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	accessToken, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate access token", err)
	}
	refreshValue, err := generateRefreshToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate refresh token", err)
	}
	now := time.Now().UTC()
	if err := s.refreshTokens.Store(ctx, auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     refreshValue,
		Role:      string(account.Role),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshValue, ExpiresAt: expiresAt}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
