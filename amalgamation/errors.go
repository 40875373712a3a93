package amalgamation

import "fmt"

// IOError reports a configured root source that does not exist under the
// source root.
type IOError struct {
	Path string
}

func (e *IOError) Error() string {
	return fmt.Sprintf("File not found: %q", e.Path)
}
