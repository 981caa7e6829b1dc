// Package domain defines the core types and interfaces for the recipe tracker.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Recipe is a saved recipe. It is created only by the recipe repository and
// never mutated afterwards; ID and CreatedAt are immutable.
type Recipe struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Ingredients          []Ingredient `json:"ingredients"`
	CompletedIngredients []Ingredient `json:"completedIngredients"`
	CookingTime          int          `json:"cookingTime"` // minutes
	IsHealthy            bool         `json:"isHealthy"`
	Instructions         string       `json:"instructions"`
	CreatedAt            time.Time    `json:"createdAt"`

	// AI provenance, only set when a suggestion was merged into the draft.
	IsAIGenerated bool       `json:"isAIGenerated,omitempty"`
	Tips          string     `json:"tips,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty"`
	Servings      int        `json:"servings,omitempty"`
}

// Ingredient is a single checklist entry of a recipe.
type Ingredient struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// IngredientDraft is an ingredient while the recipe form is being composed.
type IngredientDraft struct {
	ID        string
	Text      string
	Completed bool
}

// NewRecipe is everything needed to create a Recipe except the identity and
// creation time, which the repository assigns.
type NewRecipe struct {
	Name                 string
	Ingredients          []Ingredient
	CompletedIngredients []Ingredient
	CookingTime          int
	IsHealthy            bool
	Instructions         string

	IsAIGenerated bool
	Tips          string
	Difficulty    Difficulty
	Servings      int
}

// Validate checks the submission rules: a non-empty name, at least one
// ingredient (completed or not), no blank ingredient text and a positive
// cooking time.
func (n NewRecipe) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(n.Ingredients)+len(n.CompletedIngredients) == 0 {
		return &ValidationError{Field: "ingredients", Reason: "at least one ingredient is required"}
	}
	for _, list := range [][]Ingredient{n.Ingredients, n.CompletedIngredients} {
		for i, ing := range list {
			if strings.TrimSpace(ing.Text) == "" {
				return &ValidationError{Field: "ingredients", Reason: fmt.Sprintf("entry %d has no text", i+1)}
			}
		}
	}
	if n.CookingTime <= 0 {
		return &ValidationError{Field: "cookingTime", Reason: "must be a positive number of minutes"}
	}
	return nil
}

// Difficulty is the effort level an AI suggestion attaches to a recipe.
type Difficulty string

const (
	DifficultyNone   Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes free text ("Easy", " HARD ") into a Difficulty.
// Unrecognized values yield DifficultyNone.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyNone
	}
}

// GenerationRequest is the input of a recipe generation call.
type GenerationRequest struct {
	Ingredients []string
	CookingTime int // minutes
	IsHealthy   bool
}

// Suggestion is the best-effort output of the AI generator. Every field may
// be empty.
type Suggestion struct {
	Name                  string
	Instructions          string
	AdditionalIngredients string // comma separated
	Tips                  string
	Difficulty            Difficulty
	Servings              int
}

// AdditionalIngredientList splits AdditionalIngredients on commas, trims
// each entry and drops empty ones.
func (s Suggestion) AdditionalIngredientList() []string {
	if strings.TrimSpace(s.AdditionalIngredients) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s.AdditionalIngredients, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatCookingTime renders minutes the way recipe cards show them:
// "45 min", "1 hour", "1h 30m", "2h".
func FormatCookingTime(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	case minutes == 60:
		return "1 hour"
	}
	h, m := minutes/60, minutes%60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
