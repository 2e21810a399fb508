package services

import (
	"time"

	"pathxpress/internal/apperrors"
	"pathxpress/internal/models"
	"pathxpress/internal/redis"
	"pathxpress/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(user *models.User, password string) error
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	// Authenticate checks credentials and opens a session, returning
	// the opaque bearer token.
	Authenticate(username, password string) (string, *redis.SessionData, error)
	GetSession(token string) (*redis.SessionData, error)
	Logout(token string) error
}

type userService struct {
	userRepo   repository.UserRepository
	sessions   *redis.Client
	sessionTTL time.Duration
}

func NewUserService(userRepo repository.UserRepository, sessions *redis.Client, sessionTTL time.Duration) UserService {
	return &userService{userRepo: userRepo, sessions: sessions, sessionTTL: sessionTTL}
}

func (s *userService) CreateUser(user *models.User, password string) error {
	if len(password) < 8 {
		return apperrors.Validation("password must be at least 8 characters")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	err = s.userRepo.Create(user)
	if isDuplicateKey(err) {
		return apperrors.Conflict("username or email already in use")
	}
	return err
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) Authenticate(username, password string) (string, *redis.SessionData, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, apperrors.Forbidden("invalid credentials")
	}
	if !user.IsActive {
		return "", nil, apperrors.Forbidden("account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperrors.Forbidden("invalid credentials")
	}

	token := uuid.NewString()
	session := &redis.SessionData{
		UserID:    user.ID,
		Role:      user.Role,
		ClientID:  user.ClientID,
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTTL); err != nil {
		return "", nil, err
	}
	return token, session, nil
}

func (s *userService) GetSession(token string) (*redis.SessionData, error) {
	session, err := s.sessions.GetSession(token)
	if err != nil {
		return nil, apperrors.Forbidden("session expired or not found")
	}
	return session, nil
}

func (s *userService) Logout(token string) error {
	return s.sessions.DeleteSession(token)
}
