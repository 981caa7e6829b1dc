package domain

import "context"

// SnapshotStore durably holds one serialized collection under one key.
// Implementations can be in-memory, a JSON file, or SQLite.
type SnapshotStore interface {
	// Load returns the last saved snapshot, or ErrNotFound if nothing was
	// ever saved.
	Load(ctx context.Context) ([]byte, error)
	// Save replaces the whole snapshot.
	Save(ctx context.Context, data []byte) error
	Close() error
}

// RecipeGenerator produces a recipe suggestion from an external text model.
// Callers never see the provider's request or response shape.
type RecipeGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (*Suggestion, error)
	// Provider names the backing service, e.g. "openai".
	Provider() string
}

// CommandParser converts raw user input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
