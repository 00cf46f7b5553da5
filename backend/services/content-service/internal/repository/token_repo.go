package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sitecms/backend/services/content-service/internal/models"
)

// ErrTokenNotFound is returned when a colour token does not exist.
var ErrTokenNotFound = errors.New("color token not found")

// TokenRepository reads and corrects design tokens.
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository returns repository.
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// List returns every token ordered by name.
func (r *TokenRepository) List(ctx context.Context) ([]models.ColorToken, error) {
	var tokens []models.ColorToken
	query := `
		SELECT css_variable_name, hsl_value, color_type, optimal_text_color, updated_at
		FROM color_tokens
		ORDER BY css_variable_name`
	if err := r.db.SelectContext(ctx, &tokens, query); err != nil {
		return nil, fmt.Errorf("failed to list color tokens: %w", err)
	}
	return tokens, nil
}

// SetOptimalTextColor stores a corrected text colour for one token.
func (r *TokenRepository) SetOptimalTextColor(ctx context.Context, name string, color models.TextColor) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE color_tokens SET optimal_text_color = $2, updated_at = NOW()
		WHERE css_variable_name = $1`, name, string(color))
	if err != nil {
		return fmt.Errorf("failed to update color token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTokenNotFound
	}
	return nil
}
