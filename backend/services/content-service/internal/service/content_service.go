package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"sitecms/backend/services/content-service/internal/cache"
	"sitecms/backend/services/content-service/internal/contrast"
	"sitecms/backend/services/content-service/internal/models"
	"sitecms/backend/services/content-service/internal/style"
	"sitecms/backend/services/content-service/internal/ws"
)

var (
	// ErrInvalidElement is returned for element ids outside [a-zA-Z0-9._:-]{1,128}.
	ErrInvalidElement = errors.New("invalid element id")
	// ErrUnknownIcon is returned for override icon names missing from the registry.
	ErrUnknownIcon = errors.New("unknown icon name")
	// ErrEmptyOverride is returned when an override sets no field.
	ErrEmptyOverride = errors.New("override sets no style field")
)

var elementIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._:-]{1,128}$`)

// StyleStore persists element overrides.
type StyleStore interface {
	Get(ctx context.Context, elementID string) (*models.StyleOverride, error)
	Upsert(ctx context.Context, override *models.StyleOverride) error
	Delete(ctx context.Context, elementID string) error
}

// TokenStore persists colour tokens.
type TokenStore interface {
	List(ctx context.Context) ([]models.ColorToken, error)
	SetOptimalTextColor(ctx context.Context, name string, color models.TextColor) error
}

// Notifier pushes events to edit-mode clients.
type Notifier interface {
	Broadcast(event ws.Event)
}

// Publisher announces style writes to other instances.
type Publisher interface {
	Publish(ctx context.Context, elementID string) error
}

// ContentService serves style data and applies editor writes.
type ContentService struct {
	styles    StyleStore
	tokens    TokenStore
	cache     *cache.StyleCache
	notifier  Notifier
	publisher Publisher
	logger    *zap.Logger
}

// NewContentService builds service. notifier may be nil.
func NewContentService(styles StyleStore, tokens TokenStore, styleCache *cache.StyleCache, notifier Notifier, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{
		styles:   styles,
		tokens:   tokens,
		cache:    styleCache,
		notifier: notifier,
		logger:   logger,
	}
}

// WithPublisher makes every write announce itself through p.
func (s *ContentService) WithPublisher(p Publisher) *ContentService {
	s.publisher = p
	return s
}

// StylesView is the override table as served to the site.
type StylesView struct {
	State     cache.State            `json:"state"`
	Overrides []models.StyleOverride `json:"overrides"`
}

// Styles lists cached overrides. An empty list is returned while the cache has no snapshot.
func (s *ContentService) Styles() StylesView {
	state, _ := s.cache.State()
	view := StylesView{State: state, Overrides: []models.StyleOverride{}}
	snap := s.cache.Snapshot()
	if snap == nil {
		return view
	}
	for _, o := range snap.Overrides {
		view.Overrides = append(view.Overrides, o)
	}
	sort.Slice(view.Overrides, func(i, j int) bool {
		return view.Overrides[i].ElementID < view.Overrides[j].ElementID
	})
	return view
}

// Resolve returns the style of elementID.
func (s *ContentService) Resolve(elementID string, defaults style.Defaults) style.Resolved {
	return s.cache.Resolve(elementID, defaults)
}

// Override returns the stored override of elementID.
func (s *ContentService) Override(ctx context.Context, elementID string) (*models.StyleOverride, error) {
	if !elementIDPattern.MatchString(elementID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidElement, elementID)
	}
	return s.styles.Get(ctx, elementID)
}

// OverrideInput is an editor write. Empty fields are stored empty and fall back to defaults.
type OverrideInput struct {
	BackgroundClass string `json:"background_class"`
	TextColorClass  string `json:"text_color_class"`
	IconColorToken  string `json:"icon_color_token"`
	IconName        string `json:"icon_name"`
	Size            string `json:"size"`
	Shape           string `json:"shape"`
}

// SaveOverride upserts the override of elementID on behalf of userID (0 when unknown).
func (s *ContentService) SaveOverride(ctx context.Context, elementID string, input OverrideInput, userID int64) (*models.StyleOverride, error) {
	if !elementIDPattern.MatchString(elementID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidElement, elementID)
	}

	override := &models.StyleOverride{
		ElementID:       elementID,
		BackgroundClass: strings.TrimSpace(input.BackgroundClass),
		TextColorClass:  strings.TrimSpace(input.TextColorClass),
		IconColorToken:  strings.TrimSpace(input.IconColorToken),
		IconName:        strings.TrimSpace(input.IconName),
		Size:            strings.TrimSpace(input.Size),
		Shape:           strings.TrimSpace(input.Shape),
		UpdatedBy:       sql.NullInt64{Int64: userID, Valid: userID > 0},
	}
	if override.IsEmpty() {
		return nil, ErrEmptyOverride
	}
	if override.IconName != "" {
		icon, ok := style.ParseIcon(override.IconName)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownIcon, override.IconName)
		}
		override.IconName = icon.String()
	}

	if err := s.styles.Upsert(ctx, override); err != nil {
		return nil, err
	}
	s.logger.Info("style override saved", zap.String("element_id", elementID), zap.Int64("user_id", userID))
	s.afterWrite(ctx, elementID)
	return override, nil
}

// ResetOverride deletes the override of elementID.
func (s *ContentService) ResetOverride(ctx context.Context, elementID string) error {
	if !elementIDPattern.MatchString(elementID) {
		return fmt.Errorf("%w: %q", ErrInvalidElement, elementID)
	}
	if err := s.styles.Delete(ctx, elementID); err != nil {
		return err
	}
	s.logger.Info("style override reset", zap.String("element_id", elementID))
	s.afterWrite(ctx, elementID)
	return nil
}

// afterWrite reloads the cache, tells local editors to refetch and announces the write to other
// instances. The write itself already succeeded, so failures here are only logged.
func (s *ContentService) afterWrite(ctx context.Context, elementID string) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("style cache reload after write failed", zap.Error(err))
	}
	s.notify(elementID)
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, elementID); err != nil {
			s.logger.Warn("style invalidation publish failed", zap.String("element_id", elementID), zap.Error(err))
		}
	}
}

// ApplyInvalidation handles a write announced by another instance.
func (s *ContentService) ApplyInvalidation(ctx context.Context, inv cache.Invalidation) {
	if err := s.cache.Refresh(ctx); err != nil {
		s.logger.Warn("style cache refresh after remote write failed",
			zap.String("origin", inv.Origin),
			zap.Error(err),
		)
	}
	s.notify(inv.ElementID)
}

func (s *ContentService) notify(elementID string) {
	if s.notifier != nil {
		s.notifier.Broadcast(ws.Event{Type: ws.EventStylesInvalidated, ElementID: elementID})
	}
}

// Tokens returns the colour tokens, from the cache when loaded.
func (s *ContentService) Tokens(ctx context.Context) ([]models.ColorToken, error) {
	if snap := s.cache.Snapshot(); snap != nil && len(snap.Tokens) > 0 {
		tokens := make([]models.ColorToken, 0, len(snap.Tokens))
		for _, t := range snap.Tokens {
			tokens = append(tokens, t)
		}
		sort.Slice(tokens, func(i, j int) bool { return tokens[i].CSSVariableName < tokens[j].CSSVariableName })
		return tokens, nil
	}
	return s.tokens.List(ctx)
}

// ContrastReport checks every stored token.
func (s *ContentService) ContrastReport(ctx context.Context) ([]contrast.Report, error) {
	tokens, err := s.tokens.List(ctx)
	if err != nil {
		return nil, err
	}
	return contrast.Check(tokens), nil
}

// FixContrast stores the better text colour for every mismatching token and returns the fixed
// reports.
func (s *ContentService) FixContrast(ctx context.Context) ([]contrast.Report, error) {
	reports, err := s.ContrastReport(ctx)
	if err != nil {
		return nil, err
	}
	fixed := contrast.Mismatches(reports)
	for _, r := range fixed {
		if err := s.tokens.SetOptimalTextColor(ctx, r.Token, r.Best); err != nil {
			return nil, fmt.Errorf("fix %s: %w", r.Token, err)
		}
		s.logger.Info("token text colour corrected",
			zap.String("token", r.Token),
			zap.String("from", string(r.Stored)),
			zap.String("to", string(r.Best)),
		)
	}
	if len(fixed) > 0 {
		s.afterWrite(ctx, "")
	}
	return fixed, nil
}
