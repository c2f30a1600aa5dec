package service

import (
	"errors"

	"dnd-webapp-demo/backend/internal/models"

	"gorm.io/gorm"
)

// UserService resolves Telegram identities to internal user records.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetOrCreateUser looks a user up by Telegram id and creates one on first
// sight. Two concurrent first contacts race on the unique index; the loser
// gets gorm.ErrDuplicatedKey and retries the lookup, so both callers end up
// with the same single row.
func (s *UserService) GetOrCreateUser(tgID int64) (*models.User, error) {
	var user models.User
	err := s.db.Where("tg_id = ?", tgID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{TgID: tgID}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.User
			if err := s.db.Where("tg_id = ?", tgID).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves a user by internal id
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
