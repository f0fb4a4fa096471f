package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sangkips/ledgerbook/internal/domain/entity"
	"github.com/sangkips/ledgerbook/internal/domain/enum"
	"github.com/sangkips/ledgerbook/internal/domain/repository"
	"github.com/sangkips/ledgerbook/pkg/apperror"
)

// PreferencesService handles the standing display and tax settings
type PreferencesService struct {
	prefsRepo    repository.PreferencesRepository
	defaultTheme enum.Theme
	defaultTax   decimal.Decimal
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(prefsRepo repository.PreferencesRepository, defaultTheme enum.Theme, defaultTax decimal.Decimal) *PreferencesService {
	if !defaultTheme.Valid() {
		defaultTheme = enum.ThemeSystem
	}
	return &PreferencesService{
		prefsRepo:    prefsRepo,
		defaultTheme: defaultTheme,
		defaultTax:   defaultTax,
	}
}

// Get retrieves the preferences, creating defaults if none exist
func (s *PreferencesService) Get(ctx context.Context) (*entity.Preferences, error) {
	prefs, err := s.prefsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if prefs == nil {
		prefs = &entity.Preferences{
			Theme:         s.defaultTheme,
			TaxPercentage: s.defaultTax,
		}
		if err := s.prefsRepo.Save(ctx, prefs); err != nil {
			return nil, err
		}
	}

	return prefs, nil
}

// UpdatePreferencesInput represents the input for updating preferences.
// Nil fields are left unchanged.
type UpdatePreferencesInput struct {
	Theme         *enum.Theme
	TaxPercentage *decimal.Decimal
}

// Update changes the given preferences
func (s *PreferencesService) Update(ctx context.Context, input *UpdatePreferencesInput) (*entity.Preferences, error) {
	check := &fieldChecker{}
	if input.Theme != nil && !input.Theme.Valid() {
		check.add("theme", "Theme must be light, dark or system")
	}
	if input.TaxPercentage != nil && input.TaxPercentage.IsNegative() {
		check.add("tax_percentage", "Tax percentage cannot be negative")
	}
	if err := check.err(); err != nil {
		return nil, err
	}

	prefs, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.Theme != nil {
		prefs.Theme = *input.Theme
	}
	if input.TaxPercentage != nil {
		prefs.TaxPercentage = *input.TaxPercentage
	}

	if err := s.prefsRepo.Save(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SetTaxPercentage stores the tax rate new pending transactions start with
func (s *PreferencesService) SetTaxPercentage(ctx context.Context, tax decimal.Decimal) error {
	if tax.IsNegative() {
		return apperror.NewFieldError("tax_percentage", "Tax percentage cannot be negative")
	}
	_, err := s.Update(ctx, &UpdatePreferencesInput{TaxPercentage: &tax})
	return err
}
