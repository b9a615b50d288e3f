// Package auth authenticates dashboard operators and issues JWT pairs.
package auth

import (
	"errors"
	"time"

	"apexscore/internal/models"
	"apexscore/internal/repositories"
	"apexscore/internal/utils"
	"apexscore/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid refresh token")
	ErrWeakPassword       = errors.New("password must be at least 8 characters and contain special characters")
)

type Service interface {
	Login(email, password, ip string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	GetTokenVersion(userID uint) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

func (s *service) Login(email, password, ip string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	user.LastLoginAt = time.Now()
	user.LastLoginIP = ip
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", ErrInvalidToken
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", ErrInvalidToken
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

// Logout bumps the token version, invalidating every outstanding token.
func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	if len(newPassword) < 8 || !validation.HasSpecialChar(newPassword) {
		return ErrWeakPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // Invalidate existing tokens
	return s.userRepo.Update(user)
}

func (s *service) GetTokenVersion(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}
