package draft

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hammamikhairi/quickmeals/internal/domain"
)

func ingredientTexts(v View) []string {
	out := make([]string, len(v.Ingredients))
	for i, ing := range v.Ingredients {
		out[i] = ing.Text
	}
	return out
}

func TestNewDefaults(t *testing.T) {
	d := New(0)
	v := d.View()
	if v.CookingTime != DefaultCookingTime {
		t.Errorf("CookingTime = %d, want %d", v.CookingTime, DefaultCookingTime)
	}
	if !v.IsHealthy {
		t.Error("new draft should be healthy")
	}
	if v.Name != "" || len(v.Ingredients) != 0 || v.Generating {
		t.Errorf("new draft not empty: %+v", v)
	}

	if got := New(30).View().CookingTime; got != 30 {
		t.Errorf("New(30) cooking time = %d", got)
	}
}

func TestAddIngredientIgnoresBlank(t *testing.T) {
	d := New(0)
	for _, text := range []string{"", "   ", "\t"} {
		if _, ok := d.AddIngredient(text); ok {
			t.Errorf("AddIngredient(%q) accepted", text)
		}
	}
	id, ok := d.AddIngredient("  rice ")
	if !ok || id == "" {
		t.Fatalf("AddIngredient(rice) = %q, %v", id, ok)
	}
	v := d.View()
	if len(v.Ingredients) != 1 || v.Ingredients[0].Text != "rice" || v.Ingredients[0].Completed {
		t.Errorf("ingredients = %+v", v.Ingredients)
	}
}

func TestToggleAndRemove(t *testing.T) {
	d := New(0)
	a, _ := d.AddIngredient("a")
	b, _ := d.AddIngredient("b")

	if !d.ToggleIngredient(b) {
		t.Fatal("toggle b failed")
	}
	if d.ToggleIngredient("nope") {
		t.Error("toggle of unknown id reported success")
	}
	if !d.RemoveIngredient(a) {
		t.Fatal("remove a failed")
	}
	if d.RemoveIngredient(a) {
		t.Error("second remove reported success")
	}

	v := d.View()
	if len(v.Ingredients) != 1 || v.Ingredients[0].ID != b || !v.Ingredients[0].Completed {
		t.Errorf("ingredients = %+v", v.Ingredients)
	}
}

func TestSetCookingTimeRejectsNonPositive(t *testing.T) {
	d := New(0)
	if d.SetCookingTime(0) || d.SetCookingTime(-5) {
		t.Error("non-positive time accepted")
	}
	if !d.SetCookingTime(45) {
		t.Error("45 rejected")
	}
	if got := d.View().CookingTime; got != 45 {
		t.Errorf("CookingTime = %d, want 45", got)
	}
}

func TestSubmitPartition(t *testing.T) {
	d := New(0)
	d.SetName("Bowl")
	d.SetInstructions("  mix  ")
	d.AddIngredient("a")
	b, _ := d.AddIngredient("b")
	d.AddIngredient("c")
	d.ToggleIngredient(b)

	got, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	wantIng := []domain.Ingredient{{Text: "a"}, {Text: "c"}}
	wantDone := []domain.Ingredient{{Text: "b", Completed: true}}
	if !reflect.DeepEqual(got.Ingredients, wantIng) {
		t.Errorf("Ingredients = %+v, want %+v", got.Ingredients, wantIng)
	}
	if !reflect.DeepEqual(got.CompletedIngredients, wantDone) {
		t.Errorf("CompletedIngredients = %+v, want %+v", got.CompletedIngredients, wantDone)
	}
	if got.Instructions != "mix" {
		t.Errorf("Instructions = %q", got.Instructions)
	}
	if got.CookingTime != DefaultCookingTime || !got.IsHealthy {
		t.Errorf("defaults not carried: %+v", got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("submitted recipe fails validation: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	tests := []struct {
		name        string
		recipeName  string
		ingredients []string
		wantErr     bool
	}{
		{"empty name", "", []string{"rice"}, true},
		{"whitespace name", "   ", []string{"rice"}, true},
		{"no ingredients", "Rice", nil, true},
		{"one ingredient", "Rice", []string{"rice"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(0)
			d.SetName(tt.recipeName)
			for _, ing := range tt.ingredients {
				d.AddIngredient(ing)
			}
			_, err := d.Submit()
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("err = %v, want ErrValidation", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSubmitAllCompleted(t *testing.T) {
	d := New(0)
	d.SetName("Leftovers")
	id, _ := d.AddIngredient("rice")
	d.ToggleIngredient(id)

	got, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(got.Ingredients) != 0 || len(got.CompletedIngredients) != 1 {
		t.Errorf("partition = %+v / %+v", got.Ingredients, got.CompletedIngredients)
	}
}

func TestGenerationMerge(t *testing.T) {
	d := New(0)
	d.AddIngredient("rice")
	d.AddIngredient("egg")

	attempt, req, err := d.BeginGeneration()
	if err != nil {
		t.Fatalf("BeginGeneration: %v", err)
	}
	if !reflect.DeepEqual(req.Ingredients, []string{"rice", "egg"}) || req.CookingTime != 15 || !req.IsHealthy {
		t.Errorf("request = %+v", req)
	}
	if !d.Generating() {
		t.Error("draft should be generating")
	}

	applied := d.FinishGeneration(attempt, &domain.Suggestion{
		Name:                  "Stir Fry",
		Instructions:          "Fry everything.",
		AdditionalIngredients: "soy sauce, garlic, ",
		Tips:                  "Use day-old rice.",
		Difficulty:            domain.DifficultyEasy,
		Servings:              2,
	}, nil)
	if !applied {
		t.Fatal("suggestion not applied")
	}

	v := d.View()
	if want := []string{"rice", "egg", "soy sauce", "garlic"}; !reflect.DeepEqual(ingredientTexts(v), want) {
		t.Errorf("ingredients = %v, want %v", ingredientTexts(v), want)
	}
	if v.Name != "Stir Fry" || v.Instructions != "Fry everything." {
		t.Errorf("name/instructions = %q / %q", v.Name, v.Instructions)
	}
	if !v.IsAIGenerated || v.Tips != "Use day-old rice." || v.Difficulty != domain.DifficultyEasy || v.Servings != 2 {
		t.Errorf("provenance = %+v", v)
	}
	if v.Generating {
		t.Error("still generating after finish")
	}

	rec, err := d.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !rec.IsAIGenerated || rec.Servings != 2 {
		t.Errorf("submitted provenance = %+v", rec)
	}
}

func TestGenerationFallbackName(t *testing.T) {
	d := New(0)
	d.SetName("Mine")
	d.AddIngredient("oats")

	attempt, _, err := d.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	d.FinishGeneration(attempt, &domain.Suggestion{}, nil)

	if got := d.View().Name; got != FallbackName {
		t.Errorf("Name = %q, want %q", got, FallbackName)
	}
}

func TestGenerationFailureLeavesDraft(t *testing.T) {
	d := New(0)
	d.SetName("Mine")
	d.SetInstructions("boil")
	d.AddIngredient("oats")
	before := d.View()

	attempt, _, err := d.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	if d.FinishGeneration(attempt, nil, &domain.GenerationError{Provider: "openai", StatusCode: 500, Err: errors.New("boom")}) {
		t.Error("failed generation reported as applied")
	}

	after := d.View()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("draft changed:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestStaleAttemptIgnored(t *testing.T) {
	d := New(0)
	d.AddIngredient("rice")

	attempt, _, err := d.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	d.Reset()

	if d.FinishGeneration(attempt, &domain.Suggestion{Name: "Late", AdditionalIngredients: "salt"}, nil) {
		t.Error("stale suggestion applied")
	}
	v := d.View()
	if v.Name != "" || len(v.Ingredients) != 0 {
		t.Errorf("reset draft modified by stale result: %+v", v)
	}
}

func TestBeginGenerationGuards(t *testing.T) {
	d := New(0)
	if _, _, err := d.BeginGeneration(); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty draft: err = %v, want ErrValidation", err)
	}

	d.AddIngredient("rice")
	first, _, err := d.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := d.BeginGeneration(); !errors.Is(err, domain.ErrGenerationInProgress) {
		t.Errorf("second begin: err = %v, want ErrGenerationInProgress", err)
	}

	d.FinishGeneration(first, nil, errors.New("timeout"))
	if _, _, err := d.BeginGeneration(); err != nil {
		t.Errorf("begin after finish: %v", err)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	d := New(20)
	d.SetName("x")
	d.SetHealthy(false)
	d.SetCookingTime(90)
	d.AddIngredient("y")
	d.Reset()

	v := d.View()
	if v.Name != "" || v.IsHealthy != true || v.CookingTime != 20 || len(v.Ingredients) != 0 {
		t.Errorf("after reset: %+v", v)
	}
}

func TestMergedSuggestionAlwaysSubmits(t *testing.T) {
	for _, servings := range []int{-1, -9223372036854775808, 0, 4} {
		d := New(0)
		d.AddIngredient("rice")

		attempt, _, err := d.BeginGeneration()
		if err != nil {
			t.Fatal(err)
		}
		if !d.FinishGeneration(attempt, &domain.Suggestion{Name: "Stir Fry", Servings: servings}, nil) {
			t.Fatalf("servings %d: suggestion not applied", servings)
		}

		rec, err := d.Submit()
		if err != nil {
			t.Fatalf("servings %d: Submit: %v", servings, err)
		}
		if err := rec.Validate(); err != nil {
			t.Fatalf("servings %d: Validate: %v", servings, err)
		}
		if rec.Servings < 0 {
			t.Errorf("servings %d: submitted %d", servings, rec.Servings)
		}
	}
}

func TestSubmitMakesGenerationStale(t *testing.T) {
	d := New(0)
	d.SetName("Mine")
	d.AddIngredient("rice")

	attempt, _, err := d.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Submit(); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if d.Generating() {
		t.Error("still generating after submit")
	}
	if d.FinishGeneration(attempt, &domain.Suggestion{Name: "Late", AdditionalIngredients: "salt"}, nil) {
		t.Error("suggestion applied to a submitted draft")
	}
	if v := d.View(); v.Name != "Mine" || len(v.Ingredients) != 1 {
		t.Errorf("draft modified by late result: %+v", v)
	}
}

func TestInvalidSubmitKeepsGeneration(t *testing.T) {
	d := New(0)
	d.AddIngredient("rice")

	attempt, _, err := d.BeginGeneration()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.Submit(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !d.FinishGeneration(attempt, &domain.Suggestion{Name: "Stir Fry"}, nil) {
		t.Error("rejected submit cancelled the generation")
	}
}
