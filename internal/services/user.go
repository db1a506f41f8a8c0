package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/adrianlee69dev/advantage-survey/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Create registers a user. Role is fixed at creation; there is no
// role-change operation.
func (s *UserService) Create(email, name string, role models.Role) (*models.User, error) {
	if role != models.RoleAdmin && role != models.RoleAnswerer {
		return nil, invalidf("unknown role: %s", role)
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, conflictf("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{Email: email, Name: name, Role: role}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflictf("email already registered")
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at ASC").Find(&users).Error
	return users, err
}
