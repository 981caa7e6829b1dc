package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeGenerator = (*Generator)(nil)

var errMissingKey = errors.New("no API key configured")

// Generator implements domain.RecipeGenerator on top of one provider
// adapter. Each Generate call is exactly one round trip; there is no retry.
type Generator struct {
	provider string
	hasKey   bool
	client   completer
	log      *logger.Logger
}

func newGenerator(provider string, hasKey bool, c completer, log *logger.Logger) *Generator {
	return &Generator{provider: provider, hasKey: hasKey, client: c, log: log}
}

// Provider names the backing service.
func (g *Generator) Provider() string { return g.provider }

// Generate asks the model for a recipe built around req. Every failure is a
// *domain.GenerationError.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.Suggestion, error) {
	if !g.hasKey {
		return nil, g.fail(errMissingKey)
	}
	if len(req.Ingredients) == 0 {
		return nil, g.fail(errors.New("no ingredients given"))
	}

	start := time.Now()
	reply, err := g.client.Complete(ctx, PromptSystem, buildPrompt(req))
	if err != nil {
		g.log.Error("%s: generation failed after %s: %v", g.provider, time.Since(start).Round(time.Millisecond), err)
		return nil, g.fail(err)
	}

	s, err := parseSuggestion(reply)
	if err != nil {
		g.log.Error("%s: unusable reply: %v\nraw: %s", g.provider, err, truncate(reply, 400))
		return nil, g.fail(fmt.Errorf("parse reply: %w", err))
	}

	g.log.Info("%s: suggested %q in %s", g.provider, s.Name, time.Since(start).Round(time.Millisecond))
	return s, nil
}

func (g *Generator) fail(err error) error {
	gerr := &domain.GenerationError{Provider: g.provider, Err: err}
	var se *statusError
	if errors.As(err, &se) {
		gerr.StatusCode = se.code
	}
	return gerr
}
