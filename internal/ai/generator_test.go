package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/logger"
)

type fakeCompleter struct {
	reply  string
	err    error
	calls  int
	system string
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	f.calls++
	f.system, f.prompt = system, prompt
	return f.reply, f.err
}

func testGenerator(c completer, hasKey bool) *Generator {
	return newGenerator("fake", hasKey, c, logger.New(logger.LevelOff, nil))
}

var stirFry = domain.GenerationRequest{Ingredients: []string{"rice", "egg"}, CookingTime: 15, IsHealthy: true}

func TestGenerateParsesReply(t *testing.T) {
	fc := &fakeCompleter{reply: `{"name":"Stir Fry","instructions":"Fry it.","additionalIngredients":"soy sauce, garlic","tips":"Hot pan.","difficulty":"Easy","servings":"2"}`}
	g := testGenerator(fc, true)

	s, err := g.Generate(context.Background(), stirFry)
	require.NoError(t, err)
	assert.Equal(t, &domain.Suggestion{
		Name:                  "Stir Fry",
		Instructions:          "Fry it.",
		AdditionalIngredients: "soy sauce, garlic",
		Tips:                  "Hot pan.",
		Difficulty:            domain.DifficultyEasy,
		Servings:              2,
	}, s)

	assert.Equal(t, PromptSystem, fc.system)
	assert.Contains(t, fc.prompt, "rice, egg")
	assert.Contains(t, fc.prompt, "15 minutes")
	assert.Contains(t, fc.prompt, "healthy")
}

func TestGenerateHugeServingsDropped(t *testing.T) {
	fc := &fakeCompleter{reply: `{"name":"Stir Fry","servings":1e20}`}

	s, err := testGenerator(fc, true).Generate(context.Background(), stirFry)
	require.NoError(t, err)
	assert.Equal(t, "Stir Fry", s.Name)
	assert.Zero(t, s.Servings)
}

func TestGenerateIndulgentPrompt(t *testing.T) {
	fc := &fakeCompleter{reply: `{"name":"Fries"}`}
	g := testGenerator(fc, true)

	_, err := g.Generate(context.Background(), domain.GenerationRequest{Ingredients: []string{"potato"}, CookingTime: 30})
	require.NoError(t, err)
	assert.Contains(t, fc.prompt, "Health preference: indulgent")
}

func TestGenerateProseWrappedReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"code fence", "```json\n{\"name\":\"Soup\"}\n```", "Soup"},
		{"prose around", `Sure! Here is your recipe: {"name":"Salad"} Enjoy {the meal}.`, "Salad"},
		{"brace in string", `{"name":"Curly {brace} bowl","tips":"use \"}\" carefully"}`, "Curly {brace} bowl"},
		{"invalid first span", `{not json} then {"name":"Toast"}`, "Toast"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(&fakeCompleter{reply: tt.reply}, true)
			s, err := g.Generate(context.Background(), stirFry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Name)
		})
	}
}

func TestGenerateFailures(t *testing.T) {
	tests := []struct {
		name       string
		fc         *fakeCompleter
		hasKey     bool
		wantCalls  int
		wantStatus int
	}{
		{"missing key", &fakeCompleter{reply: `{"name":"x"}`}, false, 0, 0},
		{"transport error", &fakeCompleter{err: errors.New("dial tcp: refused")}, true, 1, 0},
		{"non-success status", &fakeCompleter{err: &statusError{code: 429, body: "slow down"}}, true, 1, 429},
		{"no json", &fakeCompleter{reply: "I cannot help with that."}, true, 1, 0},
		{"empty reply", &fakeCompleter{reply: ""}, true, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(tt.fc, tt.hasKey)
			s, err := g.Generate(context.Background(), stirFry)
			require.Error(t, err)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, domain.ErrGeneration)

			var gerr *domain.GenerationError
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, "fake", gerr.Provider)
			assert.Equal(t, tt.wantStatus, gerr.StatusCode)
			assert.Equal(t, tt.wantCalls, tt.fc.calls)
		})
	}
}

func TestParseSuggestionLooseTypes(t *testing.T) {
	s, err := parseSuggestion(`{
		"name": "Bowl",
		"instructions": ["Cook rice.", "Top with egg."],
		"additionalIngredients": ["soy sauce", "scallion"],
		"difficulty": "impossible",
		"servings": 4
	}`)
	require.NoError(t, err)
	assert.Equal(t, "Cook rice.\nTop with egg.", s.Instructions)
	assert.Equal(t, []string{"soy sauce", "scallion"}, s.AdditionalIngredientList())
	assert.Equal(t, domain.DifficultyNone, s.Difficulty)
	assert.Equal(t, 4, s.Servings)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`4`, 4},
		{`2.0`, 2},
		{`"3"`, 3},
		{`"4 servings"`, 4},
		{`"2-3"`, 2},
		{`"four"`, 0},
		{`-1`, 0},
		{`1e20`, 0},
		{`2147483648`, 0},
		{`"99999999999999999999 servings"`, 0},
		{`null`, 0},
		{``, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, flexInt([]byte(tt.raw)), "flexInt(%s)", tt.raw)
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		provider, key string
		want          bool
	}{
		{"openai", "sk-0123456789abcdefghij", true},
		{"openai", "sk-short", false},
		{"openai", "pk-0123456789abcdefghij", false},
		{"claude", "sk-ant-0123456789abcdef", true},
		{"claude", "sk-0123456789abcdefghij", false},
		{"gemini", "AIza0123456789abcdefghij", true},
		{"gemini", "AIza", false},
		{"other", "12345678901", true},
		{"other", "1234567890", false},
		{"openai", "   ", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateAPIKey(tt.provider, tt.key), "%s/%s", tt.provider, tt.key)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "llama"}, logger.New(logger.LevelOff, nil))
	require.Error(t, err)

	g, err := New(Config{Provider: "", APIKey: "sk-x"}, logger.New(logger.LevelOff, nil))
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, g.Provider())
}
