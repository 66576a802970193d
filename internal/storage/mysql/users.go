package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/lingrid/core/internal/models"
	"github.com/lingrid/core/internal/storage"
	"gorm.io/gorm"
)

// Store implements storage.UserStore on top of GORM/MySQL.
type Store struct{ db *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) ByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) ByID(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) Search(ctx context.Context, email string, offset, limit int) ([]models.UserModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.UserModel{})
	if pattern := strings.TrimSpace(email); pattern != "" {
		q = q.Where("email LIKE ?", "%"+pattern+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.UserModel
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (s *Store) Create(ctx context.Context, u *models.UserModel) error {
	err := s.db.WithContext(ctx).Create(u).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return storage.ErrDuplicateEmail
	}
	return err
}

func (s *Store) DeleteByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	u, err := s.ByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}
