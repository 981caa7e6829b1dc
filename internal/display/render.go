package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/draft"
)

// Card dates use a short, locale-neutral layout.
const dateLayout = "Jan 2, 2006"

// RenderRecipeList renders the numbered summary of every recipe, or the
// empty-state message.
func RenderRecipeList(s Styles, recipes []domain.Recipe) string {
	if len(recipes) == 0 {
		return s.Heading.Render("  No recipes yet!") + "\n" +
			s.Secondary.Render("  Add your first recipe to get started")
	}

	var b strings.Builder
	b.WriteString(s.Heading.Render(fmt.Sprintf("  Your Recipes (%d)", len(recipes))))
	for i, r := range recipes {
		b.WriteByte('\n')
		line := fmt.Sprintf("  %2d. %s", i+1, r.Name)
		b.WriteString(s.Primary.Render(line))
		if r.IsAIGenerated {
			b.WriteString(" " + s.Badge.Render("[AI]"))
		}
		b.WriteString("  " + s.Secondary.Render(domain.FormatCookingTime(r.CookingTime)))
		b.WriteString("  " + healthBadge(s, r.IsHealthy))
	}
	b.WriteByte('\n')
	b.WriteString(s.Secondary.Render("  show <n> for details, delete <n> to remove"))
	return b.String()
}

// RenderRecipe renders one recipe card.
func RenderRecipe(s Styles, index int, r domain.Recipe) string {
	var b strings.Builder

	title := fmt.Sprintf("  #%d %s", index, r.Name)
	b.WriteString(s.Heading.Render(title))
	if r.IsAIGenerated {
		b.WriteString(" " + s.Badge.Render("[AI]"))
	}
	b.WriteByte('\n')

	meta := []string{
		s.Accent.Render(domain.FormatCookingTime(r.CookingTime)),
		healthBadge(s, r.IsHealthy),
	}
	if r.IsAIGenerated && r.Difficulty != domain.DifficultyNone {
		meta = append(meta, s.Badge.Render(string(r.Difficulty)))
	}
	if r.IsAIGenerated && r.Servings > 0 {
		meta = append(meta, s.Secondary.Render(fmt.Sprintf("%d servings", r.Servings)))
	}
	b.WriteString("  " + strings.Join(meta, s.Secondary.Render(" · ")) + "\n")

	b.WriteString(s.Primary.Render("  Ingredients:") + "\n")
	for _, ing := range r.Ingredients {
		b.WriteString(s.Primary.Render("    • "+ing.Text) + "\n")
	}
	for _, ing := range r.CompletedIngredients {
		b.WriteString(s.Secondary.Render("    ✓ ") + s.Done.Render(ing.Text) + "\n")
	}

	if r.Instructions != "" {
		b.WriteString(s.Primary.Render("  Instructions:") + "\n")
		for _, line := range strings.Split(r.Instructions, "\n") {
			b.WriteString(s.Primary.Render("    "+line) + "\n")
		}
	}
	if r.IsAIGenerated && r.Tips != "" {
		b.WriteString(s.Accent.Render("  Cooking tips: ") + s.Primary.Render(r.Tips) + "\n")
	}

	if r.IsAIGenerated {
		b.WriteString(s.Secondary.Render("  AI Generated"))
	} else {
		b.WriteString(s.Secondary.Render("  Added: " + r.CreatedAt.Local().Format(dateLayout)))
	}
	return b.String()
}

// RenderDraft renders the form being composed.
func RenderDraft(s Styles, v draft.View) string {
	var b strings.Builder

	name := v.Name
	if strings.TrimSpace(name) == "" {
		name = "(unnamed)"
	}
	b.WriteString(s.Heading.Render("  Draft: "+name))
	if v.IsAIGenerated {
		b.WriteString(" " + s.Badge.Render("[AI]"))
	}
	b.WriteByte('\n')
	b.WriteString("  " + s.Accent.Render(domain.FormatCookingTime(v.CookingTime)) +
		s.Secondary.Render(" · ") + healthBadge(s, v.IsHealthy) + "\n")

	if len(v.Ingredients) == 0 {
		b.WriteString(s.Secondary.Render("  No ingredients yet. add <ingredient> to start.") + "\n")
	}
	for i, ing := range v.Ingredients {
		box := "[ ]"
		text := s.Primary.Render(ing.Text)
		if ing.Completed {
			box = "[x]"
			text = s.Done.Render(ing.Text)
		}
		b.WriteString(s.Secondary.Render(fmt.Sprintf("  %2d. %s ", i+1, box)) + text + "\n")
	}

	if v.Instructions != "" {
		b.WriteString(s.Primary.Render("  Instructions: "+firstLine(v.Instructions)) + "\n")
	}
	if v.Tips != "" {
		b.WriteString(s.Accent.Render("  Tips: ") + s.Primary.Render(v.Tips) + "\n")
	}
	if v.Generating {
		b.WriteString(s.Badge.Render("  Generating recipe...") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// HelpText lists the commands the prompt understands.
func HelpText(s Styles) string {
	rows := [][2]string{
		{"list", "show saved recipes"},
		{"show <n>", "open recipe n"},
		{"delete <n>", "delete recipe n"},
		{"name <text>", "set the draft name"},
		{"add <a, b>", "add ingredients to the draft"},
		{"toggle <n>", "mark ingredient n done / not done"},
		{"remove <n>", "remove ingredient n"},
		{"time <min>", "set cooking time (presets: " + presetList() + ")"},
		{"healthy | indulgent", "set the health tag"},
		{"steps <text>", "set instructions"},
		{"generate", "let the AI fill in the draft"},
		{"draft", "show the draft"},
		{"save", "save the draft as a recipe"},
		{"reset", "clear the draft"},
		{"theme", "toggle light / dark"},
		{"dismiss", "hide the current notice"},
		{"quit", "exit"},
	}
	var b strings.Builder
	b.WriteString(s.Heading.Render("  Commands"))
	for _, r := range rows {
		b.WriteString("\n  " + s.Accent.Render(fmt.Sprintf("%-20s", r[0])) + s.Secondary.Render(r[1]))
	}
	return b.String()
}

func healthBadge(s Styles, healthy bool) string {
	if healthy {
		return s.Healthy.Render("Healthy")
	}
	return s.Indulgent.Render("Indulgent")
}

func presetList() string {
	parts := make([]string, len(draft.CookingTimePresets))
	for i, m := range draft.CookingTimePresets {
		parts[i] = fmt.Sprint(m)
	}
	return strings.Join(parts, ", ")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return s[:i] + " ..."
	}
	return s
}
