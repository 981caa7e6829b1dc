// Package app is the controller the presentation layer talks to. It
// composes the recipe repository and the AI generator and owns the theme.
package app

import (
	"context"
	"errors"
	"sync"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/draft"
	"github.com/hammamikhairi/quickmeals/internal/logger"
	"github.com/hammamikhairi/quickmeals/internal/recipe"
)

var errNoGenerator = errors.New("generator not configured")

// Option configures the App.
type Option func(*App)

// WithGenerator sets the recipe generator. Without one, generation calls
// fail with a GenerationError.
func WithGenerator(g domain.RecipeGenerator) Option {
	return func(a *App) { a.gen = g }
}

// WithTheme sets the initial theme.
func WithTheme(t domain.Theme) Option {
	return func(a *App) { a.theme = t }
}

// App depends only on the repository and the generator interface and is
// fully testable with an in-memory store and a fake generator.
type App struct {
	repo *recipe.Repository
	gen  domain.RecipeGenerator
	log  *logger.Logger

	mu    sync.Mutex
	theme domain.Theme
}

// New creates the controller.
func New(repo *recipe.Repository, log *logger.Logger, opts ...Option) *App {
	a := &App{
		repo:  repo,
		log:   log,
		theme: domain.ThemeLight,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load reads the saved collection. A returned error is informational; the
// app continues with whatever was loaded.
func (a *App) Load(ctx context.Context) error {
	return a.repo.Initialize(ctx)
}

// ListRecipes returns all saved recipes in insertion order.
func (a *App) ListRecipes() []domain.Recipe {
	return a.repo.List()
}

// GetRecipe returns one saved recipe.
func (a *App) GetRecipe(id string) (domain.Recipe, error) {
	return a.repo.Get(id)
}

// AddRecipe submits the draft and saves it. The draft is reset only when
// the recipe was stored; on any error it is left as it was.
func (a *App) AddRecipe(ctx context.Context, d *draft.Draft) (domain.Recipe, error) {
	in, err := d.Submit()
	if err != nil {
		return domain.Recipe{}, err
	}
	rec, err := a.repo.Add(ctx, in)
	if err != nil {
		return domain.Recipe{}, err
	}
	d.Reset()
	return rec, nil
}

// DeleteRecipe removes a recipe. Unknown IDs are ignored.
func (a *App) DeleteRecipe(ctx context.Context, id string) error {
	return a.repo.Delete(ctx, id)
}

// HasGenerator reports whether AI generation is available.
func (a *App) HasGenerator() bool {
	return a.gen != nil
}

// Provider names the configured generator, or "" without one.
func (a *App) Provider() string {
	if a.gen == nil {
		return ""
	}
	return a.gen.Provider()
}

// GenerateSuggestion calls the generator directly and blocks until it
// answers.
func (a *App) GenerateSuggestion(ctx context.Context, ingredients []string, minutes int, healthy bool) (*domain.Suggestion, error) {
	if a.gen == nil {
		return nil, &domain.GenerationError{Provider: "none", Err: errNoGenerator}
	}
	return a.gen.Generate(ctx, domain.GenerationRequest{
		Ingredients: ingredients,
		CookingTime: minutes,
		IsHealthy:   healthy,
	})
}

// GenerationResult is delivered once per StartGeneration call.
type GenerationResult struct {
	// Applied is false when the request failed or the draft moved on
	// (reset) before the reply arrived.
	Applied    bool
	Suggestion *domain.Suggestion
	Err        error
}

// StartGeneration asks the generator to fill the draft in the background.
// The returned channel yields exactly one result and is then closed. The
// draft refuses a second generation while one is in flight.
func (a *App) StartGeneration(ctx context.Context, d *draft.Draft) (<-chan GenerationResult, error) {
	if a.gen == nil {
		return nil, &domain.GenerationError{Provider: "none", Err: errNoGenerator}
	}

	attempt, req, err := d.BeginGeneration()
	if err != nil {
		return nil, err
	}

	a.log.Info("generating with %s from %d ingredients", a.gen.Provider(), len(req.Ingredients))

	out := make(chan GenerationResult, 1)
	go func() {
		defer close(out)
		s, err := a.gen.Generate(ctx, req)
		applied := d.FinishGeneration(attempt, s, err)
		switch {
		case err == nil && s == nil:
			a.log.Warn("%s returned no suggestion", a.gen.Provider())
		case err == nil && !applied:
			a.log.Debug("discarding stale suggestion %q", s.Name)
		}
		out <- GenerationResult{Applied: applied, Suggestion: s, Err: err}
	}()
	return out, nil
}

// Theme returns the current theme.
func (a *App) Theme() domain.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

// ToggleTheme flips between light and dark and returns the new theme.
func (a *App) ToggleTheme() domain.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.theme = a.theme.Toggle()
	return a.theme
}
