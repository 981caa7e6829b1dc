package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/quickmeals/internal/app"
	"github.com/hammamikhairi/quickmeals/internal/display"
	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/draft"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

type cliApp struct {
	app      *app.App
	draft    *draft.Draft
	parser   domain.CommandParser
	notifier domain.Notifier
	log      *logger.Logger
	ui       *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	a.ui.PrintInfo("Welcome! Build a recipe below or type 'list' to see saved ones.")
	a.showRecipes()

	uiCh := a.ui.InputChan()
	for {
		var input string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case input, ok = <-uiCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		cmd, err := a.parser.Parse(ctx, input)
		if err != nil {
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("command: %s (payload=%q)", cmd.Type, cmd.Payload)
		if quit := a.handleCommand(ctx, cmd); quit {
			return
		}
	}
}

// handleCommand runs one command and reports whether the user asked to quit.
func (a *cliApp) handleCommand(ctx context.Context, cmd *domain.Command) bool {
	switch cmd.Type {
	case domain.CommandHelp:
		a.ui.PrintBlock(display.HelpText(a.ui.Styles()))
	case domain.CommandListRecipes:
		a.showRecipes()
	case domain.CommandShowRecipe:
		a.showRecipe(cmd.Payload)
	case domain.CommandDeleteRecipe:
		a.deleteRecipe(ctx, cmd.Payload)
	case domain.CommandSetName:
		a.draft.SetName(cmd.Payload)
		a.ui.PrintHint("Name set.")
	case domain.CommandAddIngredient:
		a.addIngredients(cmd.Payload)
	case domain.CommandToggleIngredient:
		a.withIngredient(cmd.Payload, func(id string) bool { return a.draft.ToggleIngredient(id) })
	case domain.CommandRemoveIngredient:
		a.withIngredient(cmd.Payload, func(id string) bool { return a.draft.RemoveIngredient(id) })
	case domain.CommandSetTime:
		a.setTime(cmd.Payload)
	case domain.CommandHealthy:
		a.draft.SetHealthy(true)
		a.ui.PrintHint("Tagged healthy.")
	case domain.CommandIndulgent:
		a.draft.SetHealthy(false)
		a.ui.PrintHint("Tagged indulgent.")
	case domain.CommandSetInstructions:
		a.draft.SetInstructions(cmd.Payload)
		a.ui.PrintHint("Instructions set.")
	case domain.CommandGenerate:
		a.generate(ctx)
	case domain.CommandSubmit:
		a.submit(ctx)
	case domain.CommandResetDraft:
		generating := a.draft.Generating()
		a.draft.Reset()
		if generating {
			a.ui.PrintHint("Draft cleared. The pending suggestion will be ignored.")
		} else {
			a.ui.PrintHint("Draft cleared.")
		}
	case domain.CommandShowDraft:
		a.ui.PrintBlock(display.RenderDraft(a.ui.Styles(), a.draft.View()))
	case domain.CommandToggleTheme:
		theme := a.app.ToggleTheme()
		a.ui.SetTheme(theme)
		a.ui.PrintHint(fmt.Sprintf("Switched to %s theme.", theme))
	case domain.CommandDismiss:
		if !a.ui.DismissNotice() {
			a.ui.PrintHint("Nothing to dismiss.")
		}
	case domain.CommandQuit:
		a.ui.PrintInfo("Bye! Happy cooking.")
		return true
	default:
		a.ui.PrintHint(fmt.Sprintf("I didn't catch %q. Type 'help' for commands.", cmd.Payload))
	}
	return false
}

// ── Recipes ──────────────────────────────────────────────────────

func (a *cliApp) showRecipes() {
	a.ui.PrintBlock(display.RenderRecipeList(a.ui.Styles(), a.app.ListRecipes()))
}

// recipeAt resolves a 1-based list number.
func (a *cliApp) recipeAt(payload string) (int, domain.Recipe, bool) {
	recipes := a.app.ListRecipes()
	n, err := strconv.Atoi(payload)
	if err != nil || n < 1 || n > len(recipes) {
		a.ui.PrintUrgent(fmt.Sprintf("No recipe #%s. Type 'list' to see them.", payload))
		return 0, domain.Recipe{}, false
	}
	return n, recipes[n-1], true
}

func (a *cliApp) showRecipe(payload string) {
	n, listed, ok := a.recipeAt(payload)
	if !ok {
		return
	}
	r, err := a.app.GetRecipe(listed.ID)
	if err != nil {
		a.ui.PrintUrgent(fmt.Sprintf("Recipe #%d is gone. Type 'list' to refresh.", n))
		return
	}
	a.ui.PrintBlock(display.RenderRecipe(a.ui.Styles(), n, r))
}

func (a *cliApp) deleteRecipe(ctx context.Context, payload string) {
	_, r, ok := a.recipeAt(payload)
	if !ok {
		return
	}
	if err := a.app.DeleteRecipe(ctx, r.ID); err != nil {
		a.reportError("Could not delete recipe", err)
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("Deleted %q.", r.Name))
}

// ── Draft ────────────────────────────────────────────────────────

// addIngredients accepts a comma-separated list.
func (a *cliApp) addIngredients(payload string) {
	added := 0
	for _, part := range strings.Split(payload, ",") {
		if _, ok := a.draft.AddIngredient(part); ok {
			added++
		}
	}
	if added == 0 {
		a.ui.PrintHint("Nothing to add.")
		return
	}
	a.ui.PrintHint(fmt.Sprintf("Added %d ingredient(s).", added))
}

func (a *cliApp) withIngredient(payload string, fn func(id string) bool) {
	list := a.draft.View().Ingredients
	n, err := strconv.Atoi(payload)
	if err != nil || n < 1 || n > len(list) {
		a.ui.PrintUrgent(fmt.Sprintf("No ingredient #%s. Type 'draft' to see them.", payload))
		return
	}
	if fn(list[n-1].ID) {
		a.ui.PrintBlock(display.RenderDraft(a.ui.Styles(), a.draft.View()))
	}
}

func (a *cliApp) setTime(payload string) {
	minutes, err := strconv.Atoi(payload)
	if err != nil || !a.draft.SetCookingTime(minutes) {
		a.ui.PrintUrgent("Cooking time must be a positive number of minutes.")
		return
	}
	a.ui.PrintHint("Cooking time: " + domain.FormatCookingTime(minutes) + ".")
}

func (a *cliApp) submit(ctx context.Context) {
	r, err := a.app.AddRecipe(ctx, a.draft)
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		a.ui.PrintUrgent(fmt.Sprintf("Can't save yet: %s %s.", verr.Field, verr.Reason))
		return
	case err != nil:
		a.reportError("Could not save recipe", err)
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("Saved %q.", r.Name))
}

// generate starts a background suggestion and reports its result when it
// arrives.
func (a *cliApp) generate(ctx context.Context) {
	if !a.app.HasGenerator() {
		a.ui.PrintUrgent("AI generation is off. Set an API key for the configured provider to enable it.")
		return
	}
	ch, err := a.app.StartGeneration(ctx, a.draft)
	var verr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrGenerationInProgress):
		a.ui.PrintHint("Already generating, hang on.")
		return
	case errors.As(err, &verr):
		a.ui.PrintUrgent("Add at least one ingredient before generating.")
		return
	case err != nil:
		a.reportError("AI generation unavailable", err)
		return
	}

	a.ui.PrintHint(fmt.Sprintf("Asking %s for a recipe...", a.app.Provider()))
	go func() {
		res, ok := <-ch
		if !ok {
			return
		}
		switch {
		case res.Err != nil:
			a.reportError("Recipe generation failed", res.Err)
		case !res.Applied:
			a.log.Info("suggestion arrived after the draft was saved or reset")
		default:
			a.reportSuggestion(ctx, res)
		}
	}()
}

func (a *cliApp) reportSuggestion(ctx context.Context, res app.GenerationResult) {
	a.notifier.Notify(ctx, fmt.Sprintf("Suggestion ready: %q. Review it, then 'save'.", a.draft.View().Name))
	a.ui.PrintBlock(display.RenderDraft(a.ui.Styles(), a.draft.View()))
	if res.Suggestion != nil && res.Suggestion.Tips != "" {
		a.ui.SetNotice("Tip: "+res.Suggestion.Tips, false)
	}
}

// reportError shows store and generator failures as a dismissible notice.
func (a *cliApp) reportError(prefix string, err error) {
	a.log.Error("%s: %v", prefix, err)
	a.ui.SetNotice(fmt.Sprintf("%s: %v", prefix, err), true)
}
