package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/store"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect the append-only audit log",
}

var auditXPCmd = &cobra.Command{
	Use:   "xp",
	Short: "List recent XP events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryXP(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query xp events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No XP events found.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-18s  %6s  %6s  %s\n",
			"Seq", "Timestamp", "Reason", "XP", "Total", "Loss")
		fmt.Println(strings.Repeat("─", 80))
		for _, ev := range events {
			loss := ""
			if ev.LossID != nil {
				loss = *ev.LossID
			}
			fmt.Printf("%-6d  %-19s  %-18s  %+6d  %6d  %s\n",
				ev.Sequence, ev.Timestamp.Format("2006-01-02 15:04:05"),
				ev.Reason, ev.Amount, ev.TotalAfter, loss)
		}
		return nil
	},
}

var auditTransitionsCmd = &cobra.Command{
	Use:   "transitions",
	Short: "List recent Minotaur transitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryTransitions(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query transition events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No transitions found.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-24s  %-24s  %s\n",
			"Seq", "Timestamp", "From", "To", "Trigger")
		fmt.Println(strings.Repeat("─", 90))
		for _, ev := range events {
			from := ev.From
			if from == "" {
				from = "(none)"
			}
			fmt.Printf("%-6d  %-19s  %-24s  %-24s  %s\n",
				ev.Sequence, ev.Timestamp.Format("2006-01-02 15:04:05"),
				from, ev.To, ev.Trigger)
		}
		return nil
	},
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	auditXPCmd.Flags().Int("limit", 20, "Maximum events to show")
	auditTransitionsCmd.Flags().Int("limit", 20, "Maximum events to show")

	auditCmd.AddCommand(auditXPCmd)
	auditCmd.AddCommand(auditTransitionsCmd)
}
