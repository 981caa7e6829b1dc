// Package draft models the recipe form: the ingredient checklist being
// composed, the submission rules, and how an AI suggestion is merged in.
package draft

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hammamikhairi/quickmeals/internal/domain"
)

// DefaultCookingTime is the form's initial cooking time in minutes.
const DefaultCookingTime = 15

// FallbackName is used when a suggestion arrives without a name.
const FallbackName = "AI Generated Recipe"

// CookingTimePresets are the choices the form offers, in minutes.
var CookingTimePresets = []int{5, 10, 15, 20, 30, 45, 60, 90, 120}

// Attempt identifies one generation request. A result is applied only if
// its attempt is still the draft's current one.
type Attempt uint64

// Draft is a recipe in progress. All methods are safe for concurrent use;
// generation results arrive from another goroutine.
type Draft struct {
	mu sync.Mutex

	name         string
	ingredients  []domain.IngredientDraft
	cookingTime  int
	isHealthy    bool
	instructions string

	// Set once a suggestion has been merged.
	aiGenerated bool
	tips        string
	difficulty  domain.Difficulty
	servings    int

	defaultTime int
	generating  bool
	attempt     Attempt
}

// New creates an empty draft. defaultTime <= 0 selects DefaultCookingTime.
func New(defaultTime int) *Draft {
	if defaultTime <= 0 {
		defaultTime = DefaultCookingTime
	}
	d := &Draft{defaultTime: defaultTime}
	d.resetLocked()
	return d
}

// View is a read-only copy of the draft for rendering.
type View struct {
	Name          string
	Ingredients   []domain.IngredientDraft
	CookingTime   int
	IsHealthy     bool
	Instructions  string
	IsAIGenerated bool
	Tips          string
	Difficulty    domain.Difficulty
	Servings      int
	Generating    bool
}

// View returns the current state.
func (d *Draft) View() View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return View{
		Name:          d.name,
		Ingredients:   append([]domain.IngredientDraft(nil), d.ingredients...),
		CookingTime:   d.cookingTime,
		IsHealthy:     d.isHealthy,
		Instructions:  d.instructions,
		IsAIGenerated: d.aiGenerated,
		Tips:          d.tips,
		Difficulty:    d.difficulty,
		Servings:      d.servings,
		Generating:    d.generating,
	}
}

// SetName sets the recipe name.
func (d *Draft) SetName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

// SetCookingTime sets the cooking time. Non-positive values are ignored and
// reported with false.
func (d *Draft) SetCookingTime(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cookingTime = minutes
	return true
}

// SetHealthy tags the recipe healthy (true) or indulgent (false).
func (d *Draft) SetHealthy(healthy bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.isHealthy = healthy
}

// SetInstructions sets the free-text instructions.
func (d *Draft) SetInstructions(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.instructions = text
}

// AddIngredient appends an incomplete ingredient. Blank text is ignored.
func (d *Draft) AddIngredient(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.appendLocked(text), true
}

func (d *Draft) appendLocked(text string) string {
	id := uuid.NewString()
	d.ingredients = append(d.ingredients, domain.IngredientDraft{ID: id, Text: text})
	return id
}

// RemoveIngredient deletes the ingredient with the given ID.
func (d *Draft) RemoveIngredient(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, ing := range d.ingredients {
		if ing.ID == id {
			d.ingredients = append(d.ingredients[:i], d.ingredients[i+1:]...)
			return true
		}
	}
	return false
}

// ToggleIngredient flips the completed flag of the ingredient with the
// given ID.
func (d *Draft) ToggleIngredient(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.ingredients {
		if d.ingredients[i].ID == id {
			d.ingredients[i].Completed = !d.ingredients[i].Completed
			return true
		}
	}
	return false
}

// Submit validates the draft and turns it into a NewRecipe. Incomplete
// ingredients become the recipe's ingredients; completed ones are archived
// as completed ingredients. The form fields are not modified, but a
// generation still in flight becomes stale.
func (d *Draft) Submit() (domain.NewRecipe, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name := strings.TrimSpace(d.name)
	if name == "" {
		return domain.NewRecipe{}, &domain.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(d.ingredients) == 0 {
		return domain.NewRecipe{}, &domain.ValidationError{Field: "ingredients", Reason: "at least one ingredient is required"}
	}

	d.attempt++
	d.generating = false

	out := domain.NewRecipe{
		Name:          name,
		CookingTime:   d.cookingTime,
		IsHealthy:     d.isHealthy,
		Instructions:  strings.TrimSpace(d.instructions),
		IsAIGenerated: d.aiGenerated,
		Tips:          d.tips,
		Difficulty:    d.difficulty,
		Servings:      d.servings,
	}
	for _, ing := range d.ingredients {
		entry := domain.Ingredient{Text: ing.Text, Completed: ing.Completed}
		if ing.Completed {
			out.CompletedIngredients = append(out.CompletedIngredients, entry)
		} else {
			out.Ingredients = append(out.Ingredients, entry)
		}
	}
	return out, nil
}

// Reset restores the empty form. Any generation still in flight becomes
// stale and its result will be discarded.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.resetLocked()
}

func (d *Draft) resetLocked() {
	d.name = ""
	d.ingredients = nil
	d.cookingTime = d.defaultTime
	d.isHealthy = true
	d.instructions = ""
	d.aiGenerated = false
	d.tips = ""
	d.difficulty = domain.DifficultyNone
	d.servings = 0
	d.generating = false
	d.attempt++
}

// Generating reports whether a generation is in flight.
func (d *Draft) Generating() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generating
}

// BeginGeneration marks a generation as in flight and returns its attempt
// token together with the request to send. It refuses while another
// generation is running or when the draft has no ingredients.
func (d *Draft) BeginGeneration() (Attempt, domain.GenerationRequest, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.generating {
		return 0, domain.GenerationRequest{}, domain.ErrGenerationInProgress
	}
	if len(d.ingredients) == 0 {
		return 0, domain.GenerationRequest{}, &domain.ValidationError{
			Field:  "ingredients",
			Reason: "add at least one ingredient before generating",
		}
	}

	texts := make([]string, len(d.ingredients))
	for i, ing := range d.ingredients {
		texts[i] = ing.Text
	}

	d.attempt++
	d.generating = true
	return d.attempt, domain.GenerationRequest{
		Ingredients: texts,
		CookingTime: d.cookingTime,
		IsHealthy:   d.isHealthy,
	}, nil
}

// FinishGeneration ends the given attempt. The suggestion is merged only if
// the attempt is current and err is nil; it reports whether it was merged.
// On error the draft is left untouched apart from clearing the in-flight
// flag.
func (d *Draft) FinishGeneration(attempt Attempt, s *domain.Suggestion, err error) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if attempt != d.attempt {
		return false
	}
	d.generating = false
	if err != nil || s == nil {
		return false
	}

	d.name = s.Name
	if strings.TrimSpace(d.name) == "" {
		d.name = FallbackName
	}
	d.instructions = s.Instructions
	for _, text := range s.AdditionalIngredientList() {
		d.appendLocked(text)
	}
	d.aiGenerated = true
	d.tips = s.Tips
	d.difficulty = s.Difficulty
	d.servings = max(s.Servings, 0)
	return true
}
