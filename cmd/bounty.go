package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/report"
)

var bountyCmd = &cobra.Command{
	Use:   "bounty",
	Short: "Hunt a specific archetype for bonus XP",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		fmt.Print(report.Bounty(e.Settings().Bounty))
		return nil
	},
}

var bountyStartCmd = &cobra.Command{
	Use:   "start <archetype>",
	Short: "Open a bounty against an archetype",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		b, err := e.StartBounty(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Bounty opened: log %d %s events to earn %d XP\n", b.Target, b.Archetype, b.RewardXP)
		return nil
	},
}

func init() {
	bountyCmd.AddCommand(bountyStartCmd)
}
