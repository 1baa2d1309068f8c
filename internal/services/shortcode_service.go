package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/logging"
	"foodgram/internal/metrics"
	"foodgram/internal/models"
	"foodgram/internal/repositories"

	"github.com/google/uuid"
)

const (
	DefaultShortcodeLength      = 8
	DefaultShortcodeMaxAttempts = 10

	shortcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// ShortcodeGenerator returns a candidate code of the given length.
type ShortcodeGenerator func(length int) (string, error)

// RandomShortcode draws alphanumeric characters from random UUID bytes.
func RandomShortcode(length int) (string, error) {
	var b strings.Builder
	b.Grow(length)
	for b.Len() < length {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		for _, c := range id {
			if b.Len() == length {
				break
			}
			b.WriteByte(shortcodeAlphabet[int(c)%len(shortcodeAlphabet)])
		}
	}
	return b.String(), nil
}

// ShortcodeService assigns and resolves public recipe codes.
type ShortcodeService struct {
	repo        repositories.ShortcodeRepository
	events      EventPublisher
	generate    ShortcodeGenerator
	length      int
	maxAttempts int
}

// ShortcodeOption customises a ShortcodeService.
type ShortcodeOption func(*ShortcodeService)

func WithGenerator(g ShortcodeGenerator) ShortcodeOption {
	return func(s *ShortcodeService) { s.generate = g }
}

func WithCodeLength(n int) ShortcodeOption {
	return func(s *ShortcodeService) { s.length = n }
}

func WithMaxAttempts(n int) ShortcodeOption {
	return func(s *ShortcodeService) { s.maxAttempts = n }
}

// NewShortcodeService creates a new ShortcodeService. events may be nil.
func NewShortcodeService(repo repositories.ShortcodeRepository, events EventPublisher, opts ...ShortcodeOption) *ShortcodeService {
	s := &ShortcodeService{
		repo:        repo,
		events:      events,
		generate:    RandomShortcode,
		length:      DefaultShortcodeLength,
		maxAttempts: DefaultShortcodeMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Assign returns the recipe's code, creating one on first use. A code once
// stored is never replaced. When another writer wins the race for this
// recipe its code is returned instead of an error.
func (s *ShortcodeService) Assign(ctx context.Context, recipeID string) (string, error) {
	current, err := s.repo.GetShortcode(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if current != nil {
		return *current, nil
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		metrics.ShortcodeAttempts.Inc()

		code, err := s.generate(s.length)
		if err != nil {
			return "", fmt.Errorf("failed to generate shortcode: %w", err)
		}

		// Pre-flight probe only; the unique index decides.
		taken, err := s.repo.ShortcodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if taken {
			metrics.ShortcodeCollisions.Inc()
			continue
		}

		stored, err := s.repo.SetShortcode(ctx, recipeID, code)
		if err != nil && !errors.Is(err, domain.ErrConflict) {
			return "", err
		}
		if stored {
			logging.Debug().Str("recipe_id", recipeID).Str("shortcode", code).Int("attempt", attempt).Msg("shortcode assigned")
			return code, nil
		}

		current, err := s.repo.GetShortcode(ctx, recipeID)
		if err != nil {
			return "", err
		}
		if current != nil {
			return *current, nil
		}
		metrics.ShortcodeCollisions.Inc()
	}

	metrics.ShortcodeExhausted.Inc()
	logging.Error().
		Str("recipe_id", recipeID).
		Int("attempts", s.maxAttempts).
		Int("code_length", s.length).
		Msg("shortcode space exhausted")
	publish(s.events, EventShortcodeExhausted, map[string]interface{}{
		"recipe_id":   recipeID,
		"attempts":    s.maxAttempts,
		"code_length": s.length,
	})
	return "", fmt.Errorf("recipe %s after %d attempts: %w", recipeID, s.maxAttempts, domain.ErrCodeGenerationExhausted)
}

// Resolve finds the recipe holding code. Matching is exact.
func (s *ShortcodeService) Resolve(ctx context.Context, code string) (*models.Recipe, error) {
	if code == "" {
		metrics.RecordResolution(false)
		return nil, fmt.Errorf("empty shortcode: %w", domain.ErrNotFound)
	}
	recipe, err := s.repo.GetByShortcode(ctx, code)
	metrics.RecordResolution(err == nil)
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// BuildLink returns baseURL + "/s/" + code, assigning a code if needed.
func (s *ShortcodeService) BuildLink(ctx context.Context, recipeID, baseURL string) (string, error) {
	code, err := s.Assign(ctx, recipeID)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + "/s/" + code, nil
}
