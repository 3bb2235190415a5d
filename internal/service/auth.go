package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"authservice/internal/models"
	"authservice/internal/repository"
	"authservice/internal/roles"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var ( // Define custom errors
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token invalid")
)

type AuthService interface {
	Register(username, password, roleName string) (*models.User, error)
	Login(username, password string) (string, time.Time, error) // Returns JWT token, expiration time, and error
	VerifyToken(tokenString string) (*models.Claims, error)
}

type authService struct {
	repo       repository.AuthRepository
	logger     *zap.Logger
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(repo repository.AuthRepository, jwtSecret []byte, tokenTTL time.Duration, bcryptCost int, logger *zap.Logger) AuthService {
	return &authService{
		repo:       repo,
		logger:     logger,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}
}

func (s *authService) Register(username, password, roleName string) (*models.User, error) {
	role, err := roles.Normalize(roleName)
	if err != nil {
		return nil, err
	}

	// An existing user with the same username is a conflict; a missing one is
	// the expected path for new registrations.
	existing, err := s.repo.GetUserByUsername(username)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil && existing.Username == username {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		RoleName:     role,
	}

	err = s.repo.CreateUser(user)
	if err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered successfully.", zap.String("username", user.Username), zap.String("role_name", user.RoleName))

	return user, nil
}

func (s *authService) Login(username, password string) (string, time.Time, error) {
	user, err := s.repo.GetUserByUsername(username)
	if errors.Is(err, repository.ErrUserNotFound) {
		// Same failure as a bad password so usernames can not be enumerated.
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	// The role in the token comes from a fresh lookup, never from the login
	// request body.
	current, err := s.repo.GetUserByID(user.ID)
	if err != nil {
		s.logger.Error("Failed to get user by id", zap.Int64("user_id", user.ID), zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}

	now := time.Now()
	expirationTime := now.Add(s.tokenTTL)
	claims := &models.Claims{
		Username: current.Username,
		RoleName: current.RoleName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(current.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully.", zap.String("username", current.Username))

	return tokenString, expirationTime, nil
}

// VerifyToken checks the signature and expiry of a token and returns its
// decoded claims. Any parse failure, including expiry, maps to
// ErrTokenInvalid; the caller decides how to surface it.
func (s *authService) VerifyToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is what we expect
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
