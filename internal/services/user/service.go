// Package user manages dashboard operator accounts.
package user

import (
	"errors"

	"apexscore/internal/models"
	"apexscore/internal/repositories"
	"apexscore/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrWeakPassword  = errors.New("password must be at least 8 characters and contain special characters")
)

type Service interface {
	GetByID(id uint) (*models.User, error)
	Create(input *models.CreateUserInput) (*models.User, error)
	Update(user *models.User) error
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) GetByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *service) Create(input *models.CreateUserInput) (*models.User, error) {
	if input.Email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < 8 || !validation.HasSpecialChar(input.Password) {
		return nil, ErrWeakPassword
	}

	if existing, _ := s.repo.GetByEmail(input.Email); existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	role := input.Role
	if role != "admin" {
		role = "analyst" // operators never self-assign elevated roles
	}

	user := &models.User{
		Name:        input.Name,
		Email:       input.Email,
		Password:    string(hashedPassword),
		Institution: input.Institution,
		Department:  input.Department,
		Position:    input.Position,
		Role:        role,
		Status:      "active",
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Update(user *models.User) error {
	return s.repo.Update(user)
}
