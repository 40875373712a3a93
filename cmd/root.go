package cmd

import (
	"os"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgamate/cmd/languages"
	"github.com/LegacyCodeHQ/amalgamate/cmd/watch"
	"github.com/LegacyCodeHQ/amalgamate/internal/runner"
	"github.com/spf13/cobra"
)

// version is set via build-time ldflags
var version = "dev"

// buildDate is set via build-time ldflags
var buildDate = "unknown"

// commit is set via build-time ldflags
var commit = "unknown"

// NewRootCommand returns the amalgamate command with its subcommands attached.
func NewRootCommand() *cobra.Command {
	opts := runner.NewOptions()

	cmd := &cobra.Command{
		Use:   "amalgamate",
		Short: "Combine C/C++ sources into a single amalgamated file",
		Long: `Amalgamate combines a set of C/C++ source files into one file by inlining
every #include that resolves inside the source tree. Each local header is
inlined once; system and library includes are left untouched.

Examples:
  amalgamate -c amalgamate.json -s src
  amalgamate -c amalgamate.json -s src -p prologue.h -v yes
  amalgamate -c amalgamate.json -s src --commit v1.2.0 --check`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			opts.ConfigureLogging()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runner.Run(cmd.Context(), cmd.OutOrStdout(), opts)
			return err
		},
	}

	opts.BindFlags(cmd.Flags(), true)

	cmd.Annotations = map[string]string{
		"buildDate": buildDate,
		"commit":    commit,
	}
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build date: {{printf "%s" (index .Annotations "buildDate")}}
Commit: {{printf "%s" (index .Annotations "commit")}}
`)

	cmd.AddCommand(watch.NewCommand())
	cmd.AddCommand(languages.NewCommand())

	return cmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	log.SetDefaultsForClientTools()
	if err := NewRootCommand().Execute(); err != nil {
		log.Errf("%v", err)
		os.Exit(1)
	}
}
