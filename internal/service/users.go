package service

import (
	"fmt"

	"authservice/internal/models"
	"authservice/internal/repository"

	"go.uber.org/zap"
)

type UserService interface {
	ListUsers() ([]models.User, error)
	CountUsers() (int, error)
}

type userService struct {
	repo   repository.AuthRepository
	logger *zap.Logger
}

func NewUserService(repo repository.AuthRepository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListUsers() ([]models.User, error) {
	users, err := s.repo.ListUsers()
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *userService) CountUsers() (int, error) {
	count, err := s.repo.CountUsers()
	if err != nil {
		s.logger.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
