package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/report"
)

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recompute the Minotaur from the stored records",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		out, err := e.Recalculate(cmd.Context())
		if err != nil {
			return err
		}
		if out.MinotaurChanged {
			fmt.Print(report.Outcome(out))
			return nil
		}
		if out.Minotaur == "" {
			fmt.Println("No Minotaur: no failures in the window.")
			return nil
		}
		fmt.Printf("Minotaur unchanged: %s\n", out.Minotaur)
		return nil
	},
}
