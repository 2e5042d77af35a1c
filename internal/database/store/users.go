package store

import (
	"errors"

	"github.com/ksarmiento/blog-backend/internal/database/model"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a queried record does not exist.
var ErrNotFound = errors.New("record not found")

// Users runs user queries against an injected gorm handle.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (s *Users) Create(user *model.User) error {
	return s.db.Create(user).Error
}

func (s *Users) ByEmail(email string) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Users) ByID(id uint) (*model.User, error) {
	var user model.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePassword overwrites the stored hash for the given user.
func (s *Users) UpdatePassword(id uint, hash string) error {
	res := s.db.Model(&model.User{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
