package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/tc2000/fantasy/authenticator"
	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/repositories"
	"github.com/tc2000/fantasy/stream"
	"github.com/tc2000/fantasy/userctx"
)

// Authentication business errors
var (
	ErrUsernameTaken      = errors.New("username exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService interface defines account registration and login logic
type AuthService interface {
	Register(ctx context.Context, form *models.RegisterForm) (*models.User, error)
	Login(ctx context.Context, form *models.LoginForm) (string, *models.User, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo repositories.UserRepository
	tokens   *authenticator.TokenManager
	notifier *stream.Notifier
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, tokens *authenticator.TokenManager, notifier *stream.Notifier) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		notifier: notifier,
	}
}

// Register creates a new account with a one-way salted password hash
func (s *authService) Register(ctx context.Context, form *models.RegisterForm) (*models.User, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", strings.Join(errs, ", "))
	}

	if _, err := s.userRepo.GetByUsername(ctx, form.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(form.Username),
		Email:        strings.TrimSpace(form.Email),
		PasswordHash: string(hash),
		Role:         form.Role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.notifier.Emit(ctx, "USER_REGISTER", fmt.Sprintf("User %s registered", user.Username),
		"users", strconv.Itoa(user.ID), nil, models.AuditSuccess)

	return user, nil
}

// Login exchanges credentials for a signed bearer token. Failed attempts are
// audited without an actor identity; lookup misses and password mismatches
// are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, form *models.LoginForm) (string, *models.User, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, form.Username)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			log.WithError(err).Error("identity lookup failed")
		}
		s.emitLoginFail(ctx, form.Username)
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		s.emitLoginFail(ctx, form.Username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(strconv.Itoa(user.ID), user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.WithError(err).Warn("failed to record last login")
	}
	user.LastLogin = &now

	// Attribute the success audit to the freshly authenticated identity
	ctx = userctx.SetUser(ctx, strconv.Itoa(user.ID), user.Role)
	s.notifier.Emit(ctx, "LOGIN_SUCCESS", fmt.Sprintf("User %s logged in", user.Username),
		"users", strconv.Itoa(user.ID), nil, models.AuditSuccess)

	return token, user, nil
}

func (s *authService) emitLoginFail(ctx context.Context, username string) {
	s.notifier.Emit(ctx, "LOGIN_FAIL", "Invalid credentials",
		"users", "", map[string]any{"username": username}, models.AuditFail)
}
