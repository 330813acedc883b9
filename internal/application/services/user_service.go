package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/schoolday/core/internal/domain/entities"
	"github.com/schoolday/core/internal/infrastructure/logger"
	"github.com/schoolday/core/internal/ports"
)

// UserService handles user profile operations
type UserService struct {
	userRepo ports.UserRepository
	clock    ports.Clock
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, clock ports.Clock, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		clock:    clock,
		logger:   logger,
	}
}

// GetProfile retrieves a user's profile by ID
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	user.PasswordHash = ""

	return user, nil
}

// UpdateProfile applies the non-nil fields of the request to the stored
// profile. The updated profile must still satisfy the schema, so dropping a
// student's batch is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req ports.UpdateProfileRequest) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if req.Name != nil && *req.Name != user.Name {
		nameUser, err := s.userRepo.GetByName(ctx, *req.Name)
		if err == nil && nameUser != nil && nameUser.ID != id {
			return nil, fmt.Errorf("name %s is already taken", *req.Name)
		}
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.Batch != nil {
		user.Batch = req.Batch
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.EmergencyContact != nil {
		user.EmergencyContact = req.EmergencyContact
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Grade != nil {
		user.Grade = req.Grade
	}
	if req.GuardianName != nil {
		user.GuardianName = req.GuardianName
	}
	if req.BloodGroup != nil {
		user.BloodGroup = req.BloodGroup
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info("Profile updated", "user_id", id)

	user.PasswordHash = ""

	return user, nil
}

// DeleteAccount soft-deletes a user account.
func (s *UserService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.logger.Info("Account deleted", "user_id", id)
	return nil
}
