package service

import (
	"context"
	"strings"
	"time"

	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/repository"
)

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	statsRepo   repository.StatsRepository
}

func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, statsRepo repository.StatsRepository) ProfileService {
	return &profileService{userRepo: userRepo, profileRepo: profileRepo, statsRepo: statsRepo}
}

func requireEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", domain.NewValidationError("email", "email parameter is required")
	}
	return email, nil
}

// GetProfile resolves the user by email, then username, and attaches the
// profile row, creating an empty one when missing.
func (s *profileService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByEmailOrUsername(ctx, email)
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

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// UpdateProfile applies only the fields present in upd. A present empty
// string clears the stored value.
func (s *profileService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	logger.EnterMethod("profileService.UpdateProfile", "email", upd.Email)
	user, err := s.GetProfile(ctx, upd.Email)
	if err != nil {
		logger.ExitMethodWithError("profileService.UpdateProfile", err, "email", upd.Email)
		return nil, err
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		user.SetName(*upd.Name)
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	p := user.Profile
	assign(&p.Phone, upd.Phone)
	assign(&p.CollegeName, upd.CollegeName)
	assign(&p.Branch, upd.Branch)
	assign(&p.RollNumber, upd.RollNumber)
	assign(&p.Semester, upd.Semester)
	assign(&p.Gender, upd.Gender)
	assign(&p.ProfileImage, upd.ProfileImage)
	if upd.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *upd.DateOfBirth); err == nil {
			dob := *upd.DateOfBirth
			p.DateOfBirth = &dob
		}
	}

	if err := s.profileRepo.Update(ctx, p); err != nil {
		logger.ExitMethodWithError("profileService.UpdateProfile", err, "userID", user.ID)
		return nil, err
	}
	logger.ExitMethod("profileService.UpdateProfile", "userID", user.ID)
	return user, nil
}

func (s *profileService) ActivityStats(ctx context.Context, email string) (*domain.ActivityStats, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}
	return s.statsRepo.ActivityStats(ctx, email)
}
