package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/surveyscape/backend/internal/config"
	"github.com/surveyscape/backend/internal/dto"
	"github.com/surveyscape/backend/internal/models"
	"github.com/surveyscape/backend/internal/scope"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired = errors.New("email is required")
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("unknown role")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates the user on first sight. Re-registration is not an
// error: clients call this on every social login.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Email == "" {
		return nil, ErrEmailRequired
	}

	var existing models.User
	if err := s.db.Scopes(scope.ByEmail(req.Email)).First(&existing).Error; err == nil {
		return &dto.RegisterResponse{Message: "User already exists"}, nil
	}

	user := models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleUser,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Concurrent registration lost the race on the email index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &dto.RegisterResponse{Message: "User already exists"}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &dto.RegisterResponse{
		Message:    "User registered",
		InsertedID: user.ID.String(),
	}, nil
}

// IssueToken signs a session token for the given email. The role claim is
// read from the users table; unknown callers get guest.
func (s *AuthService) IssueToken(req *dto.TokenRequest) (string, error) {
	if req.Email == "" {
		return "", ErrEmailRequired
	}

	role := models.RoleGuest
	name := req.Name
	var user models.User
	if err := s.db.Scopes(scope.ByEmail(req.Email)).First(&user).Error; err == nil {
		role = user.Role
		if name == "" {
			name = user.Name
		}
	}

	claims := jwt.MapClaims{
		"sub":  req.Email,
		"name": name,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// UserRole returns the public projection of a user looked up by email.
func (s *AuthService) UserRole(email string) (*dto.UserRoleResponse, error) {
	var user models.User
	if err := s.db.Scopes(scope.ByEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &dto.UserRoleResponse{Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

func (s *AuthService) AllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetRole is the admin override; unlike payment promotion it may move a
// user in either direction.
func (s *AuthService) SetRole(userID, role string) error {
	if !models.RoleAtLeast(role, models.RoleGuest) {
		return ErrInvalidRole
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return ErrUserNotFound
	}

	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return fmt.Errorf("failed to update role: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
