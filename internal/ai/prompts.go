package ai

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/quickmeals/internal/domain"
)

// System prompts live here so wording changes are a single-file edit.

// PromptSystem frames the model as a recipe author that only answers in
// JSON.
const PromptSystem = `You are a professional chef and recipe creator. Create detailed, step-by-step recipes based on the given ingredients and preferences. Always respond with valid JSON format.`

// replySchema is appended to every request so all providers return the same
// shape.
const replySchema = `Please provide a JSON response with the following structure:
{
  "name": "Creative recipe name",
  "instructions": "Step-by-step cooking instructions",
  "additionalIngredients": "comma-separated list of additional ingredients needed",
  "tips": "Cooking tips and suggestions",
  "difficulty": "easy/medium/hard",
  "servings": "number of servings"
}
Respond ONLY with the JSON object. No text before or after.`

// buildPrompt renders the user message for a generation request.
func buildPrompt(req domain.GenerationRequest) string {
	preference := "indulgent"
	if req.IsHealthy {
		preference = "healthy"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a recipe using these ingredients: %s.\n", strings.Join(req.Ingredients, ", "))
	fmt.Fprintf(&sb, "Cooking time: %d minutes.\n", req.CookingTime)
	fmt.Fprintf(&sb, "Health preference: %s.\n\n", preference)
	sb.WriteString(replySchema)
	return sb.String()
}
