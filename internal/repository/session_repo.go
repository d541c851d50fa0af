package repository

import (
	"time"

	"go-cafe-pos/internal/model"

	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	FindByToken(token string) (*model.Session, error)
	DeleteByToken(token string) error
	DeleteExpired() error
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db}
}

func (r *sessionRepo) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepo) FindByToken(token string) (*model.Session, error) {
	var session model.Session
	if err := r.db.Preload("User").Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) DeleteByToken(token string) error {
	return r.db.Unscoped().Delete(&model.Session{}, "token = ?", token).Error
}

// DeleteExpired sweeps stale rows; called opportunistically from the auth flow
func (r *sessionRepo) DeleteExpired() error {
	return r.db.Unscoped().Delete(&model.Session{}, "expires_at < ?", time.Now()).Error
}
