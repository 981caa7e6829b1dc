package domain

// CommandType classifies what the user wants to do.
type CommandType int

const (
	CommandUnknown CommandType = iota
	CommandHelp
	CommandListRecipes
	CommandShowRecipe
	CommandDeleteRecipe
	CommandSetName
	CommandAddIngredient
	CommandToggleIngredient
	CommandRemoveIngredient
	CommandSetTime
	CommandHealthy
	CommandIndulgent
	CommandSetInstructions
	CommandGenerate    // ask the AI to fill the draft
	CommandSubmit      // add the draft as a recipe
	CommandResetDraft  // clear the form
	CommandShowDraft   // print the form state
	CommandToggleTheme // light <-> dark
	CommandDismiss     // hide the current notice
	CommandQuit
)

// String returns a human-readable command type.
func (c CommandType) String() string {
	if name, ok := commandStrings[c]; ok {
		return name
	}
	return "unknown"
}

// Command represents a parsed user action.
type Command struct {
	Type    CommandType
	Payload string // optional argument, e.g. a recipe number or ingredient text
}

var commandStrings = map[CommandType]string{
	CommandHelp:             "help",
	CommandListRecipes:      "list_recipes",
	CommandShowRecipe:       "show_recipe",
	CommandDeleteRecipe:     "delete_recipe",
	CommandSetName:          "set_name",
	CommandAddIngredient:    "add_ingredient",
	CommandToggleIngredient: "toggle_ingredient",
	CommandRemoveIngredient: "remove_ingredient",
	CommandSetTime:          "set_time",
	CommandHealthy:          "healthy",
	CommandIndulgent:        "indulgent",
	CommandSetInstructions:  "set_instructions",
	CommandGenerate:         "generate",
	CommandSubmit:           "submit",
	CommandResetDraft:       "reset_draft",
	CommandShowDraft:        "show_draft",
	CommandToggleTheme:      "toggle_theme",
	CommandDismiss:          "dismiss",
	CommandQuit:             "quit",
}
