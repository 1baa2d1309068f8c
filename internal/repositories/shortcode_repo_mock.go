package repositories

import (
	"context"
	"fmt"
	"sync"

	"foodgram/internal/domain"
	"foodgram/internal/models"
)

// MockShortcodeRepository is an in-memory implementation of
// ShortcodeRepository that enforces code uniqueness like the real index.
type MockShortcodeRepository struct {
	mu      sync.RWMutex
	byID    map[string]string
	byCode  map[string]string
	recipes map[string]bool

	// BeforeSet runs ahead of every SetShortcode and may mutate the
	// repository to stage a concurrent writer.
	BeforeSet func(recipeID, code string)
}

// NewMockShortcodeRepository creates a new instance of MockShortcodeRepository.
func NewMockShortcodeRepository() *MockShortcodeRepository {
	return &MockShortcodeRepository{
		byID:    make(map[string]string),
		byCode:  make(map[string]string),
		recipes: make(map[string]bool),
	}
}

// AddRecipe registers a recipe without a code.
func (r *MockShortcodeRepository) AddRecipe(recipeID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipeID] = true
}

// Put assigns code to recipeID unconditionally.
func (r *MockShortcodeRepository) Put(recipeID, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[recipeID] = true
	r.byID[recipeID] = code
	r.byCode[code] = recipeID
}

// Codes returns a copy of every assigned code keyed by recipe.
func (r *MockShortcodeRepository) Codes() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.byID))
	for id, code := range r.byID {
		out[id] = code
	}
	return out
}

func (r *MockShortcodeRepository) GetShortcode(_ context.Context, recipeID string) (*string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.recipes[recipeID] {
		return nil, fmt.Errorf("recipe %s: %w", recipeID, domain.ErrNotFound)
	}
	code, ok := r.byID[recipeID]
	if !ok {
		return nil, nil
	}
	return &code, nil
}

func (r *MockShortcodeRepository) ShortcodeExists(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byCode[code]
	return ok, nil
}

func (r *MockShortcodeRepository) SetShortcode(_ context.Context, recipeID, code string) (bool, error) {
	if r.BeforeSet != nil {
		r.BeforeSet(recipeID, code)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recipes[recipeID] {
		return false, nil
	}
	if owner, taken := r.byCode[code]; taken && owner != recipeID {
		return false, fmt.Errorf("shortcode %q: %w", code, domain.ErrConflict)
	}
	if _, assigned := r.byID[recipeID]; assigned {
		return false, nil
	}
	r.byID[recipeID] = code
	r.byCode[code] = recipeID
	return true, nil
}

func (r *MockShortcodeRepository) GetByShortcode(_ context.Context, code string) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipeID, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("shortcode %q: %w", code, domain.ErrNotFound)
	}
	c := code
	return &models.Recipe{ID: recipeID, Shortcode: &c}, nil
}
