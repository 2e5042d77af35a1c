package store

import (
	"errors"

	"github.com/ksarmiento/blog-backend/internal/database/model"
	"gorm.io/gorm"
)

// Posts runs blog post queries against an injected gorm handle.
type Posts struct {
	db *gorm.DB
}

func NewPosts(db *gorm.DB) *Posts {
	return &Posts{db: db}
}

func (s *Posts) Create(post *model.Post) error {
	return s.db.Create(post).Error
}

// Latest returns up to limit posts, newest first, with the author
// association populated.
func (s *Posts) Latest(limit int) ([]model.Post, error) {
	var posts []model.Post
	err := s.db.Preload("Author").
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Posts) ByID(id uint) (*model.Post, error) {
	var post model.Post
	err := s.db.Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateFields overwrites the given columns on a post and returns the
// updated record.
func (s *Posts) UpdateFields(id uint, fields map[string]any) (*model.Post, error) {
	res := s.db.Model(&model.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.ByID(id)
}

func (s *Posts) Delete(id uint) error {
	res := s.db.Delete(&model.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
