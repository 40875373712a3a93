// Package runner holds the flags shared by the amalgamate commands and runs
// one amalgamation from them.
package runner

import (
	"errors"
	"fmt"
	"strings"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgamate/syntaxcheck"
	"github.com/spf13/pflag"
)

// Options are the command line settings of one amalgamation run.
type Options struct {
	ConfigPath string
	SourceRoot string
	Prologue   string
	Verbose    string
	MaxDepth   int
	Commit     string
	Check      bool
	Language   string
}

// NewOptions returns Options holding the flag defaults.
func NewOptions() *Options {
	return &Options{Verbose: "no"}
}

// BindFlags registers the run flags on fs. The --commit flag is only added
// when withCommit is set.
func (o *Options) BindFlags(fs *pflag.FlagSet, withCommit bool) {
	fs.StringVarP(&o.ConfigPath, "config", "c", o.ConfigPath, "Path to a JSON (or .hcl) config file")
	fs.StringVarP(&o.SourceRoot, "source", "s", o.SourceRoot, "Source code root directory")
	fs.StringVarP(&o.Prologue, "prologue", "p", o.Prologue, "Path to a file prepended verbatim to the amalgamation")
	fs.StringVarP(&o.Verbose, "verbose", "v", o.Verbose, "Be verbose (yes or no)")
	fs.IntVar(&o.MaxDepth, "max-depth", o.MaxDepth, "Maximum include nesting depth (default from config, else 200)")
	fs.BoolVar(&o.Check, "check", o.Check, "Parse the amalgamation with tree-sitter and warn about syntax errors")
	fs.StringVar(&o.Language, "language", o.Language, "Grammar used by --check: c or cpp (default from the target extension)")
	if withCommit {
		fs.StringVar(&o.Commit, "commit", o.Commit, "Amalgamate the sources as of this git commit")
	}
}

// Validate checks the values cobra cannot check on its own.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.ConfigPath) == "" {
		return errors.New(`required flag "config" not set`)
	}
	if strings.TrimSpace(o.SourceRoot) == "" {
		return errors.New(`required flag "source" not set`)
	}
	switch o.Verbose {
	case "yes", "no":
	default:
		return fmt.Errorf("invalid value %q for --verbose: must be yes or no", o.Verbose)
	}
	if o.MaxDepth < 0 {
		return fmt.Errorf("invalid value %d for --max-depth: must not be negative", o.MaxDepth)
	}
	if o.Language != "" {
		if _, ok := syntaxcheck.LanguageByID(o.Language); !ok {
			return fmt.Errorf("unsupported language %q for --language: use c or cpp", o.Language)
		}
	}
	return nil
}

// IsVerbose reports whether --verbose yes was given.
func (o *Options) IsVerbose() bool {
	return o.Verbose == "yes"
}

// ConfigureLogging sets the log level for the run.
func (o *Options) ConfigureLogging() {
	if o.IsVerbose() {
		log.SetLogLevel(log.Verbose)
	}
}
