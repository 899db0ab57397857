package app

import (
	"os"
	"path/filepath"

	"github.com/kyaoi/readview/internal/article"
	"github.com/kyaoi/readview/internal/ui"
)

// LoadInitialState prepares the UI state for target. An empty target opens
// the bundled sample article.
func LoadInitialState(target string, watch bool) (ui.State, error) {
	if target == "" {
		return ui.State{
			Document:   article.Sample(),
			HeaderPath: "sample",
		}, nil
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return ui.State{}, err
	}

	doc, err := article.Load(absTarget)
	if err != nil {
		return ui.State{}, err
	}

	displayPath := absTarget
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, absTarget); err == nil {
			displayPath = rel
		}
	}

	return ui.State{
		Document:      doc,
		HeaderPath:    filepath.ToSlash(displayPath),
		ActiveAbsPath: absTarget,
		Watch:         watch,
	}, nil
}
