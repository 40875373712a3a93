package inliner

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/amalgamate/config"
)

// FileReadError reports a resolved file that could not be read.
type FileReadError struct {
	Path config.AbsolutePath
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// DepthError reports an include chain nested deeper than the configured limit.
type DepthError struct {
	Limit int
	Chain []config.AbsolutePath
}

func (e *DepthError) Error() string {
	parts := make([]string, 0, len(e.Chain))
	for _, p := range e.Chain {
		parts = append(parts, p.String())
	}
	return fmt.Sprintf("include depth limit of %d exceeded: %s", e.Limit, strings.Join(parts, " -> "))
}
