package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var drillsCmd = &cobra.Command{
	Use:   "drills",
	Short: "Show remediation drills for the current Minotaur",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		s := e.Settings()
		if s.Minotaur.Current == "" {
			fmt.Println("No Minotaur, no drills.")
			return nil
		}
		fmt.Printf("Drills for %s:\n", s.Minotaur.Current)
		for _, d := range e.Library().DrillsFor(s.Minotaur.Current) {
			fmt.Println("  -", d)
		}
		if len(s.QueuedDrills) > 0 {
			fmt.Println("\nAlready queued:")
			for _, d := range s.QueuedDrills {
				fmt.Println("  -", d)
			}
		}
		return nil
	},
}
