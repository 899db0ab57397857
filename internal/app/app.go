package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/readview/internal/article"
	"github.com/kyaoi/readview/internal/config"
	"github.com/kyaoi/readview/internal/settings"
	"github.com/kyaoi/readview/internal/ui"
)

// Run executes the Bubble Tea program for the article reader.
func Run(cfg *config.Config, target string) error {
	closeLog, err := SetupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	state, err := LoadInitialState(target, cfg.Watch)
	if err != nil {
		return err
	}
	slog.Info("opening article", "path", state.HeaderPath, "title", state.Document.Title())
	return runProgram(cfg, state)
}

func runProgram(cfg *config.Config, state ui.State) error {
	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(ui.NewModel(state), opts...)
	_, err := program.Run()
	return err
}

// SetupLogging installs the default slog logger. The terminal belongs to the
// program, so without a log file everything is discarded.
func SetupLogging(cfg *config.Config) (func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, opts)))
		return func() {}, nil
	}

	f, err := tea.LogToFile(cfg.LogFile, "readview")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))
	return func() { _ = f.Close() }, nil
}

// Export writes target as an HTML page styled by s. An empty target exports
// the bundled sample.
func Export(w io.Writer, target string, s settings.State) error {
	doc := article.Sample()
	if target != "" {
		var err error
		if doc, err = article.Load(target); err != nil {
			return err
		}
	}
	return article.ExportHTML(w, doc, s)
}

// ExportFile is Export into a file at path.
func ExportFile(path, target string, s settings.State) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Export(f, target, s)
}
