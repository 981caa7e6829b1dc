// Package recipe owns the saved recipe collection and keeps it in step with
// the snapshot store.
package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Option configures the repository.
type Option func(*Repository)

// WithClock overrides the creation-time source.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// Repository holds recipes in insertion order and persists the full
// collection after every mutation. Once a mutating call returns nil, the
// in-memory list and the stored snapshot are equal. Safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	store   domain.SnapshotStore
	recipes []domain.Recipe
	ids     *idSource
	now     func() time.Time
	log     *logger.Logger
}

// NewRepository creates an empty repository. Call Initialize to load the
// stored snapshot.
func NewRepository(store domain.SnapshotStore, log *logger.Logger, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		ids:   newIDSource(),
		now:   time.Now,
		log:   log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Initialize replaces the collection with the stored snapshot. A missing or
// malformed snapshot yields an empty collection and no error. A store read
// failure also yields an empty collection; the returned PersistenceError is
// informational.
func (r *Repository) Initialize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recipes = nil

	data, err := r.store.Load(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		r.log.Info("no saved recipes, starting empty")
		return nil
	}
	if err != nil {
		r.log.Error("loading recipes: %v", err)
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return err
		}
		return &domain.PersistenceError{Op: "load", Err: err}
	}

	recipes, err := decodeSnapshot(data)
	if err != nil {
		r.log.Warn("saved recipes are malformed, starting empty: %v", err)
		return nil
	}

	r.recipes = r.sanitize(recipes)
	r.log.Info("loaded %d recipes", len(r.recipes))
	return nil
}

// sanitize drops entries that would break collection invariants.
func (r *Repository) sanitize(in []domain.Recipe) []domain.Recipe {
	seen := make(map[string]bool, len(in))
	out := make([]domain.Recipe, 0, len(in))
	for _, rec := range in {
		if rec.ID == "" || seen[rec.ID] {
			r.log.Warn("dropping saved recipe with missing or duplicate id %q", rec.ID)
			continue
		}
		if strings.TrimSpace(rec.Name) == "" {
			r.log.Warn("dropping saved recipe %s with empty name", rec.ID)
			continue
		}
		seen[rec.ID] = true
		rec.Ingredients = dropBlank(rec.Ingredients)
		rec.CompletedIngredients = dropBlank(rec.CompletedIngredients)
		out = append(out, rec)
	}
	return out
}

func dropBlank(list []domain.Ingredient) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(list))
	for _, ing := range list {
		if strings.TrimSpace(ing.Text) != "" {
			out = append(out, ing)
		}
	}
	return out
}

// Add validates the new recipe, assigns an ID and creation time, appends it
// and saves the collection. If the save fails the recipe is not kept.
func (r *Repository) Add(ctx context.Context, in domain.NewRecipe) (domain.Recipe, error) {
	if err := in.Validate(); err != nil {
		return domain.Recipe{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	id, err := r.freshID(now)
	if err != nil {
		return domain.Recipe{}, fmt.Errorf("recipe: generating id: %w", err)
	}

	rec := domain.Recipe{
		ID:                   id,
		Name:                 strings.TrimSpace(in.Name),
		Ingredients:          cloneIngredients(in.Ingredients),
		CompletedIngredients: cloneIngredients(in.CompletedIngredients),
		CookingTime:          in.CookingTime,
		IsHealthy:            in.IsHealthy,
		Instructions:         in.Instructions,
		CreatedAt:            now,
		IsAIGenerated:        in.IsAIGenerated,
		Tips:                 in.Tips,
		Difficulty:           in.Difficulty,
		Servings:             in.Servings,
	}

	next := append(cloneRecipes(r.recipes), rec)
	if err := r.persist(ctx, next); err != nil {
		return domain.Recipe{}, err
	}
	r.recipes = next

	r.log.Info("added recipe %s (%q)", rec.ID, rec.Name)
	return cloneRecipe(rec), nil
}

// freshID returns an ID not present in the collection. Caller holds mu.
func (r *Repository) freshID(t time.Time) (string, error) {
	for {
		id, err := r.ids.next(t)
		if err != nil {
			return "", err
		}
		if r.indexOf(id) == -1 {
			return id, nil
		}
	}
}

// Delete removes the recipe with the given ID and saves the collection.
// Deleting an unknown ID is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx == -1 {
		r.log.Debug("delete: recipe %s not present", id)
		return nil
	}

	next := make([]domain.Recipe, 0, len(r.recipes)-1)
	next = append(next, r.recipes[:idx]...)
	next = append(next, r.recipes[idx+1:]...)
	if err := r.persist(ctx, next); err != nil {
		return err
	}
	r.recipes = next

	r.log.Info("deleted recipe %s", id)
	return nil
}

// List returns a copy of the collection in insertion order.
func (r *Repository) List() []domain.Recipe {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRecipes(r.recipes)
}

// Get returns the recipe with the given ID.
func (r *Repository) Get(id string) (domain.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx == -1 {
		return domain.Recipe{}, domain.ErrNotFound
	}
	return cloneRecipe(r.recipes[idx]), nil
}

// Len returns the number of recipes.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}

func (r *Repository) indexOf(id string) int {
	for i := range r.recipes {
		if r.recipes[i].ID == id {
			return i
		}
	}
	return -1
}

// persist encodes and saves a full snapshot. Caller holds mu.
func (r *Repository) persist(ctx context.Context, recipes []domain.Recipe) error {
	data, err := encodeSnapshot(recipes)
	if err != nil {
		return &domain.PersistenceError{Op: "encode", Err: err}
	}
	if err := r.store.Save(ctx, data); err != nil {
		r.log.Error("saving recipes: %v", err)
		var perr *domain.PersistenceError
		if errors.As(err, &perr) {
			return err
		}
		return &domain.PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// ── Snapshot codec ───────────────────────────────────────────────

func encodeSnapshot(recipes []domain.Recipe) ([]byte, error) {
	if recipes == nil {
		recipes = []domain.Recipe{}
	}
	return json.Marshal(recipes)
}

func decodeSnapshot(data []byte) ([]domain.Recipe, error) {
	var recipes []domain.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, err
	}
	if recipes == nil {
		// "null" is valid JSON but not an array.
		return nil, fmt.Errorf("snapshot is not an array")
	}
	return recipes, nil
}

// ── Copy helpers ─────────────────────────────────────────────────

func cloneRecipes(in []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(in))
	for i, r := range in {
		out[i] = cloneRecipe(r)
	}
	return out
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.Ingredients = cloneIngredients(r.Ingredients)
	r.CompletedIngredients = cloneIngredients(r.CompletedIngredients)
	return r
}

func cloneIngredients(in []domain.Ingredient) []domain.Ingredient {
	out := make([]domain.Ingredient, len(in))
	copy(out, in)
	return out
}
