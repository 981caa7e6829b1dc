// Command quickmeals is a terminal recipe tracker with optional AI suggestions.
//
// Usage:
//
//	quickmeals [-config file.yaml] [-store file|sqlite|memory] [-provider openai|claude|gemini] [-verbose] [-quiet]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/quickmeals/internal/ai"
	"github.com/hammamikhairi/quickmeals/internal/app"
	"github.com/hammamikhairi/quickmeals/internal/config"
	"github.com/hammamikhairi/quickmeals/internal/conversation"
	"github.com/hammamikhairi/quickmeals/internal/display"
	"github.com/hammamikhairi/quickmeals/internal/domain"
	"github.com/hammamikhairi/quickmeals/internal/draft"
	"github.com/hammamikhairi/quickmeals/internal/logger"
	"github.com/hammamikhairi/quickmeals/internal/recipe"
	"github.com/hammamikhairi/quickmeals/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Usage of quickmeals:\n%s", config.Usage())
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" && cfg.LogFile != "stderr" {
		dir := filepath.Dir(cfg.LogFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", cfg.LogFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party libs) to the
	// same output so it doesn't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(cfg.Level(), logOut)
	defer log.Sync()
	if cfg.File != "" {
		log.Info("config loaded from %s", cfg.File)
	}

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	if cfg.Store != storage.DriverMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error: creating data dir %s: %v\n", cfg.DataDir, err)
			os.Exit(1)
		}
	}
	store, err := storage.Open(ctx, cfg.StorageOptions(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: opening %s store: %v\n", cfg.Store, err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("using %s store in %s", cfg.Store, cfg.DataDir)

	opts := []app.Option{app.WithTheme(domain.ParseTheme(cfg.Theme))}
	keyWarning := ""
	switch {
	case cfg.AI.Disabled:
		log.Info("AI generation disabled by flag")
	case cfg.AI.APIKey == "":
		log.Info("AI generation disabled: no API key for %s", cfg.AI.Provider)
	default:
		gen, err := ai.New(cfg.GeneratorConfig(), log)
		if err != nil {
			log.Error("AI generation disabled: %v", err)
			break
		}
		opts = append(opts, app.WithGenerator(gen))
		log.Info("AI generation enabled (provider=%s)", gen.Provider())
		if !ai.ValidateAPIKey(cfg.AI.Provider, cfg.AI.APIKey) {
			keyWarning = fmt.Sprintf("The %s API key does not look valid; generation may fail.", cfg.AI.Provider)
			log.Warn("%s", keyWarning)
		}
	}

	repo := recipe.NewRepository(store, log)
	controller := app.New(repo, log, opts...)
	form := draft.New(cfg.DefaultCookingTime)

	ui := display.NewUI(func() display.Status {
		return display.Status{
			Recipes:  repo.Len(),
			Draft:    form.View(),
			Provider: controller.Provider(),
		}
	}, controller.Theme())

	cli := &cliApp{
		app:      controller,
		draft:    form,
		parser:   conversation.NewKeywordParser(log),
		notifier: conversation.NewCLINotifier(log, ui.Printf),
		log:      log,
		ui:       ui,
	}

	// Load before the UI starts so the first render has the real count.
	loadErr := controller.Load(ctx)

	fmt.Println(display.RenderBanner(ui.Styles(), "Quick, healthy meals from what you have."))
	fmt.Println(ui.Styles().Banner.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		if loadErr != nil {
			ui.SetNotice("Could not read saved recipes; starting with an empty list.", true)
		}
		if keyWarning != "" {
			ui.PrintHint(keyWarning)
		}
		cli.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal and blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}
