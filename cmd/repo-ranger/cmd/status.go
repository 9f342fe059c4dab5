package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bianoble/repo-ranger/pkg/reporanger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the locked state of every manifest repository",
	Long: `Shows repository URL, destination, version spec, locked version and hash,
and state (locked, unlocked, missing, moved) for every manifest repository.
Remotes are not contacted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		defer func() { _ = logger.Sync() }()

		client, err := newClient(logger)
		if err != nil {
			return err
		}

		statuses, err := client.Status(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(statuses) == 0 {
			fmt.Fprintln(out, "No repositories configured.")
			return nil
		}

		fmt.Fprintf(out, "%-40s %-24s %-12s %-22s %s\n", "URL", "DESTINATION", "SPEC", "LOCKED AT", "STATE")
		for _, s := range statuses {
			lockedAt := "-"
			if s.Locked != nil {
				lockedAt = fmt.Sprintf("%s@%s", s.Locked.Version, reporanger.ShortHash(s.Locked.LockedHash))
			}
			fmt.Fprintf(out, "%-40s %-24s %-12s %-22s %s\n", s.URL, s.Destination, s.Spec, lockedAt, stateColor(s.State).Sprint(s.State))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func stateColor(s reporanger.State) *color.Color {
	switch s {
	case reporanger.StateLocked:
		return color.New(color.FgGreen)
	case reporanger.StateUnlocked:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
