package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the Minotaur, leaderboard and analytics",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		s, err := e.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(report.Stats(s))
		return nil
	},
}
