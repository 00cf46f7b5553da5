package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sitecms/backend/services/content-service/internal/models"
)

// ErrOverrideNotFound is returned when an element has no stored override.
var ErrOverrideNotFound = errors.New("style override not found")

// StyleRepository stores element overrides.
type StyleRepository struct {
	db *sqlx.DB
}

// NewStyleRepository returns repository.
func NewStyleRepository(db *sqlx.DB) *StyleRepository {
	return &StyleRepository{db: db}
}

const styleColumns = `element_id, background_class, text_color_class, icon_color_token, icon_name, size, shape, updated_by, updated_at`

// List returns every override ordered by element id.
func (r *StyleRepository) List(ctx context.Context) ([]models.StyleOverride, error) {
	var overrides []models.StyleOverride
	query := `SELECT ` + styleColumns + ` FROM style_overrides ORDER BY element_id`
	if err := r.db.SelectContext(ctx, &overrides, query); err != nil {
		return nil, fmt.Errorf("failed to list style overrides: %w", err)
	}
	return overrides, nil
}

// Get returns the override of one element.
func (r *StyleRepository) Get(ctx context.Context, elementID string) (*models.StyleOverride, error) {
	var override models.StyleOverride
	query := `SELECT ` + styleColumns + ` FROM style_overrides WHERE element_id = $1`
	if err := r.db.GetContext(ctx, &override, query, elementID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOverrideNotFound
		}
		return nil, fmt.Errorf("failed to get style override: %w", err)
	}
	return &override, nil
}

// Upsert writes the override of one element; the last writer wins.
func (r *StyleRepository) Upsert(ctx context.Context, override *models.StyleOverride) error {
	query := `
		INSERT INTO style_overrides (
			element_id, background_class, text_color_class, icon_color_token, icon_name, size, shape, updated_by, updated_at
		) VALUES (
			:element_id, :background_class, :text_color_class, :icon_color_token, :icon_name, :size, :shape, :updated_by, NOW()
		)
		ON CONFLICT (element_id) DO UPDATE SET
			background_class = EXCLUDED.background_class,
			text_color_class = EXCLUDED.text_color_class,
			icon_color_token = EXCLUDED.icon_color_token,
			icon_name = EXCLUDED.icon_name,
			size = EXCLUDED.size,
			shape = EXCLUDED.shape,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()`

	if _, err := r.db.NamedExecContext(ctx, query, override); err != nil {
		return fmt.Errorf("failed to upsert style override: %w", err)
	}
	return nil
}

// Delete removes the override of one element.
func (r *StyleRepository) Delete(ctx context.Context, elementID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM style_overrides WHERE element_id = $1`, elementID)
	if err != nil {
		return fmt.Errorf("failed to delete style override: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOverrideNotFound
	}
	return nil
}
