package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/pathwatch/internal/action"
	"github.com/dshills/pathwatch/internal/config"
	"github.com/dshills/pathwatch/internal/detect"
	"github.com/dshills/pathwatch/internal/gitrun"
	"github.com/dshills/pathwatch/internal/logger"
)

// Check flags. Input flags override the INPUT_* environment; the rest
// override config.
var (
	flagPath          string
	flagBefore        string
	flagAfter         string
	flagOutput        string
	flagWorkdir       string
	flagRemote        string
	flagFetchStrategy string
	flagGit           string
	flagConfig        string
	flagLogLevel      string
	flagLogFormat     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Decide whether files under a path changed between two refs",
	Long: "Check reads the target path and ref pair from INPUT_PATH, INPUT_BEFORE and\n" +
		"INPUT_AFTER (or the matching flags), diffs the two refs, and appends\n" +
		"changed=true|false to the GITHUB_OUTPUT file.\n\n" +
		"An empty or all-zero INPUT_BEFORE (first push, force-push) short-circuits to\n" +
		"changed=true without touching git. An empty INPUT_AFTER defaults to HEAD.",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode = runCheck(os.Getenv, os.Stderr)
	},
}

func init() {
	checkCmd.Flags().StringVar(&flagPath, "path", "", "Target path to test (overrides INPUT_PATH)")
	checkCmd.Flags().StringVar(&flagBefore, "before", "", "Starting ref (overrides INPUT_BEFORE)")
	checkCmd.Flags().StringVar(&flagAfter, "after", "", "Ending ref (overrides INPUT_AFTER, default HEAD)")
	checkCmd.Flags().StringVar(&flagOutput, "output", "", "Step-output file (overrides GITHUB_OUTPUT)")
	checkCmd.Flags().StringVar(&flagWorkdir, "workdir", "", "Repository root (overrides GITHUB_WORKSPACE)")
	checkCmd.Flags().StringVar(&flagRemote, "remote", "", "Remote to fetch from (default origin)")
	checkCmd.Flags().StringVar(&flagFetchStrategy, "fetch-strategy", "", "Ref materialization strategy (deepen, targeted)")
	checkCmd.Flags().StringVar(&flagGit, "git", "", "Path to the git executable")
	checkCmd.Flags().StringVar(&flagConfig, "config", "", "Config file path (default .pathwatch.yaml)")
	checkCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	checkCmd.Flags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagRemote != "" {
		m["remote"] = flagRemote
	}
	if flagFetchStrategy != "" {
		m["fetchStrategy"] = flagFetchStrategy
	}
	if flagGit != "" {
		m["gitPath"] = flagGit
	}
	if flagLogLevel != "" {
		m["logLevel"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["logFormat"] = flagLogFormat
	}
	return m
}

// newClient is a seam for tests to substitute a scripted git client.
var newClient = func(cfg config.Config, dir string) (gitrun.Client, error) {
	return gitrun.NewExecClient(cfg.GitPath, cfg.Remote, dir)
}

// runCheck performs the three stages in order: input resolution, ref
// materialization, change detection. It returns the process exit code and
// writes diagnostics to errw only; the output file receives at most the
// single changed= line.
func runCheck(lookup action.Lookup, errw io.Writer) int {
	cfg, err := config.Load(config.Lookup(lookup), flagConfig, buildOverrides())
	if err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return ExitError
	}
	logger.SetupWriter(cfg, errw)

	in := action.ReadInputs(lookup)
	if flagPath != "" {
		in.Path = flagPath
	}
	if flagBefore != "" {
		in.Before = flagBefore
	}
	if flagAfter != "" {
		in.After = flagAfter
	}

	target := detect.NormalizePath(in.Path)
	if target == "" {
		fmt.Fprintf(errw, "Error: %s is required\n", action.EnvInputPath)
		return ExitError
	}

	outPath := flagOutput
	if outPath == "" {
		outPath, err = action.OutputPath(lookup)
		if err != nil {
			fmt.Fprintf(errw, "Error: %v\n", err)
			return ExitError
		}
	}

	// No usable before ref means no prior state to diff against: report
	// changed without consulting git, so dependent steps run rather than
	// silently skip.
	if detect.SkipDiff(in.Before) {
		slog.Debug("no usable before ref, assuming changed", "before", in.Before)
		if err := action.WriteChanged(outPath, true); err != nil {
			fmt.Fprintf(errw, "Error: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	}

	after := in.After
	if after == "" {
		after = "HEAD"
	}

	workdir, err := action.Workspace(lookup, flagWorkdir)
	if err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return ExitError
	}

	client, err := newClient(cfg, workdir)
	if err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return ExitError
	}

	ctx := context.Background()
	if cfg.MarkSafeDir {
		// Best effort: container runners often own the checkout as another
		// user and git refuses to touch it until marked safe.
		_ = client.MarkSafeDirectory(ctx)
	}

	if err := gitrun.EnsureResolvable(ctx, client, cfg.FetchStrategy, in.Before, after); err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return ExitError
	}

	files, err := client.DiffNameOnly(ctx, in.Before, after)
	if err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return ExitError
	}

	changed := detect.PathChanged(files, target)
	slog.Debug("diff computed",
		"before", in.Before, "after", after,
		"files", len(files), "path", target, "changed", changed)

	if err := action.WriteChanged(outPath, changed); err != nil {
		fmt.Fprintf(errw, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
