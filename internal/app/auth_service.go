package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"veridia/internal/common"
	"veridia/internal/domain/activity"
	"veridia/internal/domain/user"
	"veridia/internal/notify"
	"veridia/internal/observability"
	"veridia/internal/security"
)

// AuthService is the identity boundary. The core trusts the actor it
// produces; everything here is standard registration and token plumbing.
type AuthService struct {
	users      user.Repository
	activities activity.Repository
	jwt        *security.JWTProvider
	notifier   notify.Dispatcher
	logger     *observability.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users user.Repository, activities activity.Repository, jwt *security.JWTProvider, notifier notify.Dispatcher, logger *observability.Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		activities: activities,
		jwt:        jwt,
		notifier:   notifier,
		logger:     logger,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

const minPasswordLength = 8

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	fields := map[string]string{}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields["email"] = "a valid email is required"
	}
	if len(input.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid input data", fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}

	created, err := s.users.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		Role:         user.RoleApplicant,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	_ = s.activities.Create(ctx, activity.Activity{
		Action:      activity.ActionUserRegistered,
		Description: fmt.Sprintf("%s registered", created.FullName()),
		ApplicantID: &created.ID,
	})
	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, notify.KindVerification, notify.Payload{
			ApplicantName:  created.FullName(),
			ApplicantEmail: created.Email,
		}); err != nil {
			s.logger.Warn("verification email failed", err)
		}
	}
	return created, nil
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, *user.User, error) {
	account, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeInvalidCredentials, "invalid email or password", nil)
		}
		return nil, nil, err
	}
	if !account.IsActive {
		return nil, nil, common.NewError(common.CodeInvalidCredentials, "invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, nil, common.NewError(common.CodeInvalidCredentials, "invalid email or password", nil)
	}
	pair, err := s.issuePair(account)
	if err != nil {
		return nil, nil, err
	}
	return pair, account, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.Parse(refreshToken)
	if err != nil || claims.TokenType != security.TokenTypeRefresh {
		return nil, common.NewError(common.CodeInvalidToken, "invalid or expired refresh token", err)
	}
	userID, err := common.ParseUUID(claims.UserID)
	if err != nil {
		return nil, common.NewError(common.CodeInvalidToken, "invalid or expired refresh token", err)
	}
	account, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, common.NewError(common.CodeInvalidToken, "invalid or expired refresh token", err)
	}
	if !account.IsActive {
		return nil, common.NewError(common.CodeInvalidToken, "invalid or expired refresh token", nil)
	}
	return s.issuePair(account)
}

func (s *AuthService) issuePair(account *user.User) (*TokenPair, error) {
	access, expiresAt, err := s.jwt.Generate(account.ID, string(account.Role), security.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue access token", err)
	}
	refresh, _, err := s.jwt.Generate(account.ID, string(account.Role), security.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to issue refresh token", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: expiresAt}, nil
}
