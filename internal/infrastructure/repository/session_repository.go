package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	domainRepo "github.com/sangkips/ledgerbook/internal/domain/repository"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Get(ctx context.Context) (*entity.Session, error) {
	var session entity.Session
	err := r.db.WithContext(ctx).Scopes(SingletonRow(entity.SessionRowID)).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *entity.Session) error {
	session.ID = entity.SessionRowID
	return r.db.WithContext(ctx).Scopes(upsert).Create(session).Error
}

func (r *sessionRepository) Delete(ctx context.Context) error {
	return r.db.WithContext(ctx).Scopes(SingletonRow(entity.SessionRowID)).Delete(&entity.Session{}).Error
}
