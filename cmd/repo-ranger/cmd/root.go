package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bianoble/repo-ranger/internal/config"
	"github.com/bianoble/repo-ranger/internal/log"
	"github.com/bianoble/repo-ranger/pkg/reporanger"
)

// Build-time variables set via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags.
var (
	baseDir         string
	manifestPath    string
	credentialsPath string
	lockfilePath    string
	verbose         bool
	quiet           bool
	noColor         bool
)

var rootCmd = &cobra.Command{
	Use:   "repo-ranger",
	Short: "Fetch pinned snapshots of git repositories",
	Long: `repo-ranger reads a manifest of git repositories, resolves each version
spec (a tag glob such as "1.2.*" or a branch marker such as "b:main")
against the remote, fetches the matching snapshot into its destination
without version control metadata, and records the exact hash in a lockfile.
Repositories whose locked hash is still current are skipped.

Running repo-ranger without a subcommand is the same as 'repo-ranger fetch'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFetch,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "repo-ranger %s\n", version)
		fmt.Fprintf(out, "  commit:  %s\n", commit)
		fmt.Fprintf(out, "  built:   %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", ".", "base directory; relative paths are resolved against it")
	rootCmd.PersistentFlags().StringVar(&manifestPath, "manifest", config.DefaultManifestFile, "path to manifest file")
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", config.DefaultCredentialsFile, "path to credentials file")
	rootCmd.PersistentFlags().StringVar(&lockfilePath, "lockfile", config.DefaultLockFile, "path to lockfile")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "detailed output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimal output (warnings and errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve versions and show the plan without fetching")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. SIGINT cancels a running fetch.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
		return err
	}
	return nil
}

// reportError prints a failure according to its kind. Resolution and VCS
// failures were logged while running, so nothing more is printed for them.
func reportError(w io.Writer, err error) {
	if reporanger.Reported(err) {
		return
	}
	if reporanger.KindOf(err) != reporanger.KindUnexpected {
		fmt.Fprintf(w, "error: %s\n", err)
		return
	}

	fmt.Fprintf(w, "unexpected error: %s\n", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(w, "  caused by %T: %s\n", cause, cause)
	}
}

// newLogger builds the console logger from the global flags.
func newLogger(cmd *cobra.Command) *zap.SugaredLogger {
	useColor := !noColor && log.IsTerminal(cmd.OutOrStdout())
	color.NoColor = !useColor
	return log.NewCliLogger(cmd.OutOrStdout(), cmd.ErrOrStderr(), log.Options{
		Verbose: verbose,
		Quiet:   quiet,
		Color:   useColor,
	})
}

// newClient creates a library client from the global flags.
func newClient(logger *zap.SugaredLogger) (*reporanger.Client, error) {
	return reporanger.New(reporanger.Options{
		Paths: config.Paths{
			BaseDir:     baseDir,
			Manifest:    manifestPath,
			Credentials: credentialsPath,
			Lockfile:    lockfilePath,
		},
		Logger: logger,
	})
}
