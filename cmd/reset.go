package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetWeekCmd = &cobra.Command{
	Use:   "reset-week",
	Short: "Weekly reset: clear the queue, deferral counts and Minotaur history",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		if err := e.WeeklyReset(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Weekly reset done. XP and streak carry over.")
		return nil
	},
}
