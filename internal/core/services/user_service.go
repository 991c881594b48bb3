package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/apperrors"
	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker_app/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker_app/internal/dto"
	"github.com/SscSPs/budget_tracker_app/internal/utils"
	"github.com/shopspring/decimal"
)

// UserService registers and authenticates users.
type UserService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	userRepo     portsrepo.UserRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	accountRepo  portsrepo.AccountWriter
	auth         portssvc.AuthSvc
	google       portssvc.GoogleOAuthSvcFacade
}

// UserServiceOption configures optional collaborators of UserService.
type UserServiceOption func(*UserService)

// WithGoogleOAuth enables Google sign-in through svc.
func WithGoogleOAuth(svc portssvc.GoogleOAuthSvcFacade) UserServiceOption {
	return func(s *UserService) {
		s.google = svc
	}
}

// NewUserService creates a new UserService.
func NewUserService(
	txManager portsrepo.TransactionManager,
	userRepo portsrepo.UserRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	accountRepo portsrepo.AccountWriter,
	auth portssvc.AuthSvc,
	opts ...UserServiceOption,
) *UserService {
	s := &UserService{
		txManager:    txManager,
		userRepo:     userRepo,
		currencyRepo: currencyRepo,
		accountRepo:  accountRepo,
		auth:         auth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.Int64("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// RegisterUser creates the user and its default "Main Account" in UAH.
// Either both rows exist afterwards or neither does.
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email must not be empty", apperrors.ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password must not be empty", apperrors.ErrValidation)
	}

	_, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	digest, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.createUserWithDefaultAccount(ctx, req.Email, digest)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User registered", slog.Int64("user_id", user.UserID))
	return user, nil
}

func (s *UserService) createUserWithDefaultAccount(ctx context.Context, email, digest string) (*domain.User, error) {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txManager.Rollback(ctx, tx)

	user, err := s.userRepo.InsertUserInTx(ctx, tx, domain.User{Email: email, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to insert user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	currency, err := s.currencyRepo.FindCurrencyByCodeInTx(ctx, tx, domain.DefaultAccountCurrency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Default currency missing from catalog", slog.String("code", string(domain.DefaultAccountCurrency)))
			return nil, fmt.Errorf("%w: currency %s is not seeded", apperrors.ErrInternalInconsistency, domain.DefaultAccountCurrency)
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if _, err := s.accountRepo.InsertAccountInTx(ctx, tx, domain.Account{
		UserID:     user.UserID,
		CurrencyID: currency.CurrencyID,
		Name:       domain.DefaultAccountName,
		Balance:    decimal.Zero,
	}); err != nil {
		s.LogError(ctx, err, "Failed to create default account", slog.Int64("user_id", user.UserID))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	if err := s.txManager.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateUser checks an email/password pair and issues a bearer token.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", time.Time{}, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return "", time.Time{}, fmt.Errorf("failed to authenticate: %w", err)
	}
	if !s.auth.VerifyPassword(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	return s.issue(ctx, user)
}

// ResolveCurrentUser maps a bearer token to the user named by its subject.
func (s *UserService) ResolveCurrentUser(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.auth.VerifyToken(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: token subject no longer exists", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to resolve token subject")
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	return user, nil
}

// AuthenticateWithGoogle validates a Google ID token and signs the user in, registering
// the email on first sign-in with an unusable random password.
func (s *UserService) AuthenticateWithGoogle(ctx context.Context, idToken string) (string, time.Time, error) {
	if s.google == nil || !s.google.IsEnabled() {
		return "", time.Time{}, fmt.Errorf("%w: google sign-in is disabled", apperrors.ErrUnauthorized)
	}
	info, err := s.google.ValidateGoogleIDToken(ctx, idToken)
	if err != nil {
		s.LogWarn(ctx, "Rejected Google ID token", slog.String("error", err.Error()))
		return "", time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if info.Email == "" || !info.EmailVerified {
		return "", time.Time{}, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.findOrRegisterGoogleUser(ctx, info.Email)
	if err != nil {
		return "", time.Time{}, err
	}
	return s.issue(ctx, user)
}

// AuthenticateWithGoogleCode completes the OAuth code flow and signs the user in.
func (s *UserService) AuthenticateWithGoogleCode(ctx context.Context, code string) (string, time.Time, error) {
	if s.google == nil || !s.google.IsEnabled() {
		return "", time.Time{}, fmt.Errorf("%w: google sign-in is disabled", apperrors.ErrUnauthorized)
	}
	idToken, err := s.google.ExchangeCodeForIDToken(ctx, code)
	if err != nil {
		s.LogWarn(ctx, "Google code exchange failed", slog.String("error", err.Error()))
		return "", time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	return s.AuthenticateWithGoogle(ctx, idToken)
}

func (s *UserService) findOrRegisterGoogleUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	randomPassword, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password for google user: %w", err)
	}
	digest, err := s.auth.HashPassword(randomPassword)
	if err != nil {
		return nil, err
	}

	user, err = s.createUserWithDefaultAccount(ctx, email, digest)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost a race with a concurrent first sign-in.
		return s.userRepo.FindUserByEmail(ctx, email)
	}
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "User registered via Google", slog.Int64("user_id", user.UserID))
	return user, nil
}

func (s *UserService) issue(ctx context.Context, user *domain.User) (string, time.Time, error) {
	token, expiresAt, err := s.auth.IssueToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue token", slog.Int64("user_id", user.UserID))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
