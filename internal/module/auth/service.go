package auth

import (
	"context"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/jwt"

	"github.com/staffdesk/staffdesk/internal/domain"
	"github.com/staffdesk/staffdesk/internal/sequence"
)

// staffNumberPrefix is carried by every allocated staff number.
const staffNumberPrefix = "EMP-"

const registerAttempts = 3

// Service defines the authentication operations.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
}

// authService implements Service.
type authService struct {
	jwtSvc      jwt.Service
	userRepo    domain.UserRepository
	alloc       *sequence.Allocator
	tokenExpiry time.Duration
}

// NewService creates an auth Service. The allocator mints staff numbers
// from the "staff" namespace on registration.
func NewService(jwtSvc jwt.Service, userRepo domain.UserRepository, alloc *sequence.Allocator, tokenExpiry time.Duration) Service {
	return &authService{
		jwtSvc:      jwtSvc,
		userRepo:    userRepo,
		alloc:       alloc,
		tokenExpiry: tokenExpiry,
	}
}

// Login authenticates a user by email and password and returns a JWT
// carrying the user's role claim.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// Don't reveal whether the user exists.
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.jwtSvc.GenerateToken(
		strconv.FormatUint(uint64(user.ID), 10),
		[]string{user.Role},
		s.tokenExpiry,
	)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to generate token", err)
	}

	parsedToken, parseErr := s.jwtSvc.ParseToken(token)
	if parseErr != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to parse generated token", parseErr)
	}

	return &TokenResponse{
		Token:     token,
		ExpiresAt: parsedToken.ExpiresAt.Unix(),
		User:      user,
	}, nil
}

// Register creates a new consultant account with a freshly allocated staff
// number. A number collision from a concurrent registration triggers a
// bounded retry; a duplicate email surfaces as a Conflict.
func (s *authService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if err := validateRegisterInput(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := domain.User{
		Name:         name,
		Email:        email,
		Role:         domain.RoleConsultant,
		PasswordHash: string(hash),
	}

	var lastErr error
	for attempt := 0; attempt < registerAttempts; attempt++ {
		num, err := s.alloc.Next(ctx, s.userRepo.StaffNumbers())
		if err != nil {
			return nil, err
		}
		user.StaffNumber = staffNumberPrefix + num

		err = s.userRepo.Create(ctx, &user)
		if err == nil {
			return &user, nil
		}
		if !domain.IsConflict(err) {
			return nil, err
		}
		// A duplicate email is not retryable; only a claimed staff
		// number is.
		if existing, lookupErr := s.userRepo.GetByEmail(ctx, email); lookupErr == nil && existing != nil {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// validateRegisterInput checks name length, email syntax, and password bounds.
func validateRegisterInput(name, email, password string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if nameLen > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must not exceed 100 characters", nil)
	}
	if email == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" || addr.Address != email {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	if len(password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(password) > 72 {
		return domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}
	return nil
}
