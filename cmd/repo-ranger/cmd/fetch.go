package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bianoble/repo-ranger/pkg/reporanger"
)

var dryRun bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch every manifest repository and update the lockfile",
	Long: `Resolves each repository's version spec against its remote and compares
the result with the lockfile. Repositories that were never locked, whose
resolved version changed, or whose locked version now points at a different
hash are fetched again; the others are skipped.

The lockfile is written once, after every repository succeeded. The first
failure stops the run and leaves the lockfile untouched.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve versions and show the plan without fetching")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd)
	defer func() { _ = logger.Sync() }()

	if !quiet {
		printBanner(cmd.OutOrStdout())
	}

	client, err := newClient(logger)
	if err != nil {
		return err
	}

	result, err := client.Fetch(cmd.Context(), reporanger.FetchOptions{DryRun: dryRun})
	if err != nil {
		return err
	}

	if result.DryRun {
		if !quiet {
			printPlan(cmd.OutOrStdout(), result)
		}
		return nil
	}

	logger.Infof("Done: %d fetched, %d up to date.", result.Fetched(), len(result.Outcomes)-result.Fetched())
	return nil
}

func printBanner(w io.Writer) {
	bold := color.New(color.Bold)
	bold.Fprintf(w, "repo-ranger %s\n", version)
	fmt.Fprintln(w, "Pinned git snapshots, resolved from tag globs and branches.")
	fmt.Fprintln(w)
}

func printPlan(w io.Writer, result *reporanger.Result) {
	fmt.Fprintln(w, "Dry run, nothing fetched:")
	for _, o := range result.Outcomes {
		fmt.Fprintf(w, "  %-13s %s %s -> %s\n", actionColor(o.Action).Sprint(o.Action), o.URL, o.Ref.Name, o.Destination)
	}
}

func actionColor(a reporanger.Action) *color.Color {
	switch a {
	case reporanger.ActionSkip:
		return color.New(color.Faint)
	case reporanger.ActionForceUpdate:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
