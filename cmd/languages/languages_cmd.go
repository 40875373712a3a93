package languages

import (
	"fmt"
	"strings"

	"github.com/LegacyCodeHQ/amalgamate/syntaxcheck"
	"github.com/spf13/cobra"
)

// NewCommand returns a new languages command instance.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the grammars available to --check",
		Long: `List the languages the amalgamation can be checked against, with the
--language value and the target file extensions that select each one.

Examples:
  amalgamate languages`,
		Args: cobra.NoArgs,
		RunE: runLanguages,
	}

	return cmd
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	for _, language := range syntaxcheck.SupportedLanguages() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] (%s)\n", language.Name, language.ID, strings.Join(language.Extensions, ", ")); err != nil {
			return err
		}
	}

	return nil
}
