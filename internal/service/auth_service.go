package service

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/model"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/util"
	"bible_trivia_backend/pkg/logger"
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	JWT      config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		JWT:      jwtCfg,
	}
}

// Register creates a regular user. Usernames and emails must be unused.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	return s.createUser(ctx, username, email, password, model.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, username, email, password string, role model.UserRole) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" {
		return nil, util.NewValidationError("username", "must not be empty")
	}
	if password == "" {
		return nil, util.NewValidationError("password", "must not be empty")
	}

	taken, err := s.UserRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrUsernameTaken
	}
	taken, err = s.UserRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			// lost a race with a concurrent registration
			return nil, util.ErrUsernameTaken
		}
		return nil, err
	}

	logger.Log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// Login returns a signed token. Unknown users and bad passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.UserRepo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if repository.IsNotFound(err) {
			return "", util.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
}

// CurrentUser resolves the token subject. A token for a deleted user is rejected.
func (s *AuthService) CurrentUser(ctx context.Context, claims *util.Claims) (*model.User, error) {
	if claims == nil {
		return nil, util.ErrInvalidToken
	}
	user, err := s.UserRepo.FindByUsername(ctx, claims.Username())
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// SetRole is the only mutation a user row receives after registration.
func (s *AuthService) SetRole(ctx context.Context, userID uint, role string) (*model.User, error) {
	parsed, ok := model.ParseUserRole(role)
	if !ok {
		return nil, util.NewValidationError("role", "unknown role %q", role)
	}
	if err := s.UserRepo.UpdateRole(ctx, userID, parsed); err != nil {
		if repository.IsNotFound(err) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return s.UserRepo.FindByID(ctx, userID)
}

// EnsureAdmin creates the bootstrap admin. It reports false when the username already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	_, err := s.createUser(ctx, username, email, password, model.RoleAdmin)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, util.ErrUsernameTaken):
		return false, nil
	default:
		return false, err
	}
}
