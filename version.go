package scribe

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the released version of the backend.
var Version = strings.TrimSpace(version)
