package services

import (
	"context"
	"time"

	"github.com/opina-app/opina-backend/internal/dto"
	"github.com/opina-app/opina-backend/internal/models"
	"github.com/opina-app/opina-backend/pkg/logger"
)

type userUSStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

type userService struct {
	store userUSStore
}

func NewUserService(store userUSStore) *userService {
	return &userService{store: store}
}

// CreateProfile persists the profile document on first sign-in.
func (s *userService) CreateProfile(ctx context.Context, uid, email string, req dto.CreateUserRequest) error {
	log := logger.FromContext(ctx)

	now := time.Now()
	user := &models.User{
		UID:       uid,
		Name:      req.Name,
		Email:     email,
		Phone:     req.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user profile", "error", err)
		return err
	}

	log.Info("user profile created", "name", req.Name)
	return nil
}

func (s *userService) GetProfile(ctx context.Context, uid string) (*models.User, error) {
	return s.store.GetUser(ctx, uid)
}

func (s *userService) UpdateProfile(ctx context.Context, uid string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.store.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	user.UpdatedAt = time.Now()

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
