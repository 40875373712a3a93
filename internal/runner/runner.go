package runner

import (
	"context"
	"io"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgamate/amalgamation"
	"github.com/LegacyCodeHQ/amalgamate/config"
	"github.com/LegacyCodeHQ/amalgamate/syntaxcheck"
	"github.com/LegacyCodeHQ/amalgamate/vcs"
	"github.com/LegacyCodeHQ/amalgamate/vcs/git"
)

// LoadConfig reads the config file and merges the command line options.
func LoadConfig(opts *Options) (*config.Config, error) {
	file, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return config.New(file, config.Options{
		SourceRoot:      opts.SourceRoot,
		Prologue:        opts.Prologue,
		Verbose:         opts.IsVerbose(),
		MaxIncludeDepth: opts.MaxDepth,
	})
}

// Run performs one amalgamation and writes the report to out.
func Run(ctx context.Context, out io.Writer, opts *Options) (*amalgamation.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	return RunConfig(ctx, out, cfg, opts)
}

// RunConfig performs one amalgamation for an already loaded configuration.
func RunConfig(ctx context.Context, out io.Writer, cfg *config.Config, opts *Options) (*amalgamation.Result, error) {
	isFile := vcs.FilesystemFileChecker()
	readFile := vcs.FilesystemContentReader()
	if opts.Commit != "" {
		tree, err := git.NewCommitTree(cfg.SourceRoot.String(), opts.Commit)
		if err != nil {
			return nil, err
		}
		log.Infof("Reading sources from commit %s", tree.Commit())
		isFile = tree.IsFile
		readFile = tree.ReadFile
	}

	resolver := config.NewResolver(cfg, isFile)
	gen := amalgamation.New(cfg, resolver, readFile,
		amalgamation.WithReport(amalgamation.NewReport(out, cfg.Verbose)))

	result, err := gen.Run()
	if err != nil {
		return nil, err
	}

	if opts.Check {
		checkSyntax(ctx, cfg.Target, result.Content, opts.Language)
	}
	return result, nil
}

func checkSyntax(ctx context.Context, target, content, languageID string) {
	language := syntaxcheck.LanguageForPath(target)
	if languageID != "" {
		if l, ok := syntaxcheck.LanguageByID(languageID); ok {
			language = l
		}
	}

	problems, err := syntaxcheck.Check(ctx, []byte(content), language)
	if err != nil {
		log.Warnf("Syntax check of %s failed: %v", target, err)
		return
	}
	for _, p := range problems {
		log.Warnf("%s:%s", target, p)
	}
	if len(problems) == 0 {
		log.LogVf("%s parses cleanly as %s", target, language.Name)
	} else {
		log.Warnf("%d syntax problem(s) in %s (%s)", len(problems), target, language.Name)
	}
}
