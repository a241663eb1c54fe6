package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/engine"
	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/report"
)

var deferCmd = &cobra.Command{
	Use:   "defer",
	Short: "Defer a failure log for later completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		task, _ := cmd.Flags().GetString("task")
		ftype, _ := cmd.Flags().GetString("type")
		archetypes, _ := cmd.Flags().GetStringSlice("archetype")
		topics, _ := cmd.Flags().GetStringSlice("topic")
		origin, _ := cmd.Flags().GetString("origin-task")

		if ftype != "" && !event.FailureType(ftype).Valid() {
			return fmt.Errorf("unknown failure type %q", ftype)
		}

		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		p, err := e.DeferLog(cmd.Context(), event.PendingEvent{
			SourceTask:     task,
			Archetypes:     archetypes,
			Topics:         topics,
			Type:           event.FailureType(ftype),
			OriginalTaskID: origin,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Deferred %s\n", p.ID)
		return nil
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Work the deferred-log queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		s := e.Settings()
		fmt.Print(report.Pending(e.PendingLogs(), s.Deferrals, engine.DefaultDeferralThreshold))
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Complete a deferred log into a full failure event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := partialFromFlags(cmd)
		if err != nil {
			return err
		}

		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		out, err := e.CompletePending(cmd.Context(), args[0], p)
		if err != nil {
			return err
		}
		fmt.Print(report.Outcome(out))
		return nil
	},
}

var discardCmd = &cobra.Command{
	Use:   "discard <id>",
	Short: "Drop a deferred log without completing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		if err := e.DiscardPending(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Discarded", args[0])
		return nil
	},
}

func init() {
	addCaptureFlags(deferCmd)
	deferCmd.Flags().String("origin-task", "", "External task id that triggered the deferral")

	addCaptureFlags(completeCmd)
	completeCmd.Flags().Int("impact", 0, "Impact rating 1-5")
	completeCmd.Flags().StringSlice("why", nil, "Root-cause chain entry (repeatable, innermost last)")
	completeCmd.Flags().String("principle", "", "Ariadne's Thread: the transferable lesson")
	completeCmd.Flags().String("counterfactual", "", "What would have avoided the failure")
	completeCmd.Flags().String("aura", "", "Aura during the failure")
	completeCmd.Flags().String("emotion", "", "Emotional state during the failure")
	completeCmd.Flags().String("evidence", "", "Link to evidence")
	completeCmd.Flags().String("mock-test", "", "Linked mock test reference")
	completeCmd.Flags().String("realized", "", "When the failure was realized")

	pendingCmd.AddCommand(completeCmd)
	pendingCmd.AddCommand(discardCmd)
}
