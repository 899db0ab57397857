package ui

import "github.com/kyaoi/readview/internal/article"

// State contains the data required to bootstrap the Bubble Tea model.
type State struct {
	Document   article.Document
	HeaderPath string
	// ActiveAbsPath is watched for changes when Watch is set. It is empty for
	// the bundled sample.
	ActiveAbsPath string
	Watch         bool
}
