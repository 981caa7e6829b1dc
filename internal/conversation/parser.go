// Package conversation turns typed lines into commands and prints notices
// back to the user.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

// Compile-time interface check.
var _ domain.CommandParser = (*KeywordParser)(nil)

// KeywordParser matches user input to commands using keywords and simple
// patterns. A pattern's first capture group, if any, becomes the payload.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	command domain.CommandType
}

// NewKeywordParser creates a keyword-based command parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.CommandHelp},
		{regexp.MustCompile(`(?i)^(?:list|ls|recipes)$`), domain.CommandListRecipes},
		{regexp.MustCompile(`(?i)^(?:show|view|open)\s+#?(\d+)$`), domain.CommandShowRecipe},
		{regexp.MustCompile(`(?i)^(?:delete|del)\s+#?(\d+)$`), domain.CommandDeleteRecipe},

		// Draft editing.
		{regexp.MustCompile(`(?i)^(?:name|title)\s+(.+)$`), domain.CommandSetName},
		{regexp.MustCompile(`(?i)^(?:add|ingredient)\s+(.+)$`), domain.CommandAddIngredient},
		{regexp.MustCompile(`^\+\s*(.+)$`), domain.CommandAddIngredient},
		{regexp.MustCompile(`(?i)^(?:toggle|check|tick|x)\s+#?(\d+)$`), domain.CommandToggleIngredient},
		{regexp.MustCompile(`(?i)^(?:remove|drop|rm)\s+#?(\d+)$`), domain.CommandRemoveIngredient},
		{regexp.MustCompile(`(?i)^(?:time|minutes|mins)\s+(\d+)\s*(?:m|min|mins|minutes)?$`), domain.CommandSetTime},
		{regexp.MustCompile(`(?i)^(?:healthy|light meal)$`), domain.CommandHealthy},
		{regexp.MustCompile(`(?i)^(?:indulgent|treat|comfort)$`), domain.CommandIndulgent},
		{regexp.MustCompile(`(?i)^(?:instructions|steps|notes)\s+(.+)$`), domain.CommandSetInstructions},
		{regexp.MustCompile(`(?i)^(?:generate|suggest|ai|magic)$`), domain.CommandGenerate},
		{regexp.MustCompile(`(?i)^(?:save|submit|done)$`), domain.CommandSubmit},
		{regexp.MustCompile(`(?i)^(?:reset|clear|new)$`), domain.CommandResetDraft},
		{regexp.MustCompile(`(?i)^(?:draft|form|status)$`), domain.CommandShowDraft},

		{regexp.MustCompile(`(?i)^(?:theme|toggle theme|dark|light)$`), domain.CommandToggleTheme},
		{regexp.MustCompile(`(?i)^(?:dismiss|ok|got it)$`), domain.CommandDismiss},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q)$`), domain.CommandQuit},
	}
	return p
}

// Parse converts user input into a command.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Command, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Command{Type: domain.CommandUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	// A bare number opens that recipe.
	if len(trimmed) <= 3 && isDigits(trimmed) {
		return &domain.Command{Type: domain.CommandShowRecipe, Payload: trimmed}, nil
	}

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched command: %s", rule.command)
		cmd := &domain.Command{Type: rule.command}
		if len(m) > 1 {
			cmd.Payload = strings.TrimSpace(m[1])
		}
		return cmd, nil
	}

	p.log.Debug("no match, returning unknown command")
	return &domain.Command{Type: domain.CommandUnknown, Payload: trimmed}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
