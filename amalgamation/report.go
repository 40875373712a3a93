package amalgamation

import (
	"fmt"
	"io"
	"os"

	"github.com/LegacyCodeHQ/amalgamate/config"
)

// Report prints the human-readable progress of a run. A nil *Report prints
// nothing.
type Report struct {
	out     io.Writer
	verbose bool
}

// NewReport returns a Report writing to out. Verbose reports also print the
// configuration and the list of files involved.
func NewReport(out io.Writer, verbose bool) *Report {
	return &Report{out: out, verbose: verbose}
}

func (r *Report) start(cfg *config.Config) {
	if r == nil {
		return
	}
	if r.verbose {
		wd, err := os.Getwd()
		if err != nil {
			wd = "?"
		}
		fmt.Fprintln(r.out, "Config:")
		fmt.Fprintf(r.out, " target        = %s\n", cfg.Target)
		fmt.Fprintf(r.out, " working_dir   = %s\n", wd)
		fmt.Fprintf(r.out, " include_paths = %v\n", cfg.IncludePaths)
	}
	fmt.Fprintln(r.out, "Creating amalgamation:")
}

func (r *Report) processing(path config.AbsolutePath) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.out, " - processing \"%s\"\n", path)
}

func (r *Report) done(cfg *config.Config, result *Result) {
	if r == nil {
		return
	}
	fmt.Fprintln(r.out, "...done!")
	fmt.Fprintln(r.out)
	if r.verbose {
		fmt.Fprintf(r.out, "Files processed: %v\n", cfg.Sources)
		fmt.Fprintf(r.out, "Files included: %v\n", result.Included)
	}
	fmt.Fprintln(r.out)
}
