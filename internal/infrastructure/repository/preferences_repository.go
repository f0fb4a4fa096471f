package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	domainRepo "github.com/sangkips/ledgerbook/internal/domain/repository"
)

type preferencesRepository struct {
	db *gorm.DB
}

// NewPreferencesRepository creates a new preferences repository
func NewPreferencesRepository(db *gorm.DB) domainRepo.PreferencesRepository {
	return &preferencesRepository{db: db}
}

// Get retrieves the preferences row
func (r *preferencesRepository) Get(ctx context.Context) (*entity.Preferences, error) {
	var prefs entity.Preferences
	err := r.db.WithContext(ctx).Scopes(SingletonRow(entity.PreferencesRowID)).First(&prefs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}

// Save creates or replaces the preferences row
func (r *preferencesRepository) Save(ctx context.Context, prefs *entity.Preferences) error {
	prefs.ID = entity.PreferencesRowID
	return r.db.WithContext(ctx).Scopes(upsert).Create(prefs).Error
}
