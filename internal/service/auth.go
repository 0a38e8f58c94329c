package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
	"unimitr-backend/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

type authService struct {
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, tm security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		tokenManager: tm,
	}
}

func identity(u *domain.User) security.Identity {
	return security.Identity{UserID: u.ID, Email: u.Email, Username: u.Username, IsStaff: u.IsStaff}
}

func (s *authService) issue(ctx context.Context, u *domain.User) (*Session, error) {
	access, err := s.tokenManager.GenerateAccessToken(identity(u))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(identity(u))
	if err != nil {
		return nil, err
	}
	if u.Profile == nil {
		p, err := s.profileRepo.GetOrCreate(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		u.Profile = p
	}
	return &Session{Access: access, Refresh: refresh, User: u}, nil
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	logger.EnterMethod("authService.Signup", "username", req.Username)
	if err := domain.Validate(req); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ExitMethodWithError("authService.Signup", err, "username", req.Username)
		return nil, err
	}
	profile, err := s.profileRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile

	logger.ExitMethod("authService.Signup", "userID", user.ID)
	return user, nil
}

// Login accepts an email or a username. An account without a usable
// password adopts the first password it is given.
func (s *authService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	logger.EnterMethod("authService.Login", "identifier", identifier)
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domain.NewValidationError("password", "username/email and password are required")
	}

	user, err := s.userRepo.FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasUsablePassword() {
		hash, err := security.HashPassword(password)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.SetPassword(ctx, user.ID, hash); err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
		logger.Info("Password set on first login", "userID", user.ID)
	} else if err := security.CheckPassword(*user.PasswordHash, password); err != nil {
		logger.ExitMethodWithError("authService.Login", ErrInvalidCredentials, "userID", user.ID)
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.ExitMethod("authService.Login", "userID", user.ID)
	return session, nil
}

// CompatLogin signs in by email alone. The email doubles as the username,
// so repeated calls resolve to the same account.
func (s *authService) CompatLogin(ctx context.Context, req CompatLoginRequest) (*Session, error) {
	logger.EnterMethod("authService.CompatLogin", "email", req.Email, "role", req.Role)
	email := strings.TrimSpace(req.Email)
	if email == "" || (req.Role != "student" && req.Role != "admin") {
		return nil, domain.NewValidationError("", "email and role are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, email)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		user = &domain.User{Username: email, Email: email}
		user.SetName(req.Name)
		user.IsStaff = req.Role == "admin"
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		user.SetName(req.Name)
		if user.Email == "" {
			user.Email = email
		}
		if req.Role == "admin" {
			user.IsStaff = true
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	logger.ExitMethod("authService.CompatLogin", "userID", user.ID)
	return session, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil || claims.Type != security.TokenTypeRefresh {
		return "", ErrInvalidToken
	}
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	return s.tokenManager.GenerateAccessToken(identity(user))
}

func (s *authService) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Profile = profile
	return user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

// EnsureAdmin creates the bootstrap staff account if it does not exist yet.
func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.userRepo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}
	admin := &domain.User{Username: username, Email: email, PasswordHash: &hash, IsStaff: true}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin %q: %w", username, err)
	}
	logger.Info("Admin account created", "username", username, "userID", admin.ID)
	return nil
}
