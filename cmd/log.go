package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/report"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a completed failure event",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := partialFromFlags(cmd)
		if err != nil {
			return err
		}
		quick, _ := cmd.Flags().GetBool("quick")
		if quick {
			p.Origin = event.OriginQuickLog
		}

		e, closeEngine, err := openEngine(cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		out, err := e.CreateLossLog(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Print(report.Outcome(out))
		return nil
	},
}

func init() {
	addCaptureFlags(logCmd)
	logCmd.Flags().Int("impact", 0, "Impact rating 1-5")
	logCmd.Flags().StringSlice("why", nil, "Root-cause chain entry (repeatable, innermost last)")
	logCmd.Flags().String("principle", "", "Ariadne's Thread: the transferable lesson")
	logCmd.Flags().String("counterfactual", "", "What would have avoided the failure")
	logCmd.Flags().String("aura", "", "Aura during the failure")
	logCmd.Flags().String("emotion", "", "Emotional state during the failure")
	logCmd.Flags().String("evidence", "", "Link to evidence")
	logCmd.Flags().String("mock-test", "", "Linked mock test reference")
	logCmd.Flags().String("realized", "", "When the failure was realized")
	logCmd.Flags().Bool("quick", false, "Mark as a quick log")
}

// addCaptureFlags registers the flags shared by log and defer.
func addCaptureFlags(cmd *cobra.Command) {
	cmd.Flags().String("task", "", "Source task the failure occurred on")
	cmd.Flags().String("type", "", "Failure type: knowledge-gap, skill-gap or process-failure")
	cmd.Flags().StringSlice("archetype", nil, "Failure archetype (repeatable)")
	cmd.Flags().StringSlice("topic", nil, "Syllabus topic (repeatable)")
	cmd.Flags().StringSlice("paper", nil, "Syllabus paper (repeatable)")
}

func partialFromFlags(cmd *cobra.Command) (event.Partial, error) {
	task, _ := cmd.Flags().GetString("task")
	ftype, _ := cmd.Flags().GetString("type")
	archetypes, _ := cmd.Flags().GetStringSlice("archetype")
	topics, _ := cmd.Flags().GetStringSlice("topic")
	papers, _ := cmd.Flags().GetStringSlice("paper")
	impact, _ := cmd.Flags().GetInt("impact")
	why, _ := cmd.Flags().GetStringSlice("why")
	principle, _ := cmd.Flags().GetString("principle")
	counter, _ := cmd.Flags().GetString("counterfactual")
	aura, _ := cmd.Flags().GetString("aura")
	emotion, _ := cmd.Flags().GetString("emotion")
	evidence, _ := cmd.Flags().GetString("evidence")
	mockTest, _ := cmd.Flags().GetString("mock-test")
	realized, _ := cmd.Flags().GetString("realized")

	if ftype != "" && !event.FailureType(ftype).Valid() {
		return event.Partial{}, fmt.Errorf("unknown failure type %q", ftype)
	}

	return event.Partial{
		SourceTask:       task,
		FailureType:      event.FailureType(ftype),
		Archetypes:       archetypes,
		Impact:           impact,
		Topics:           topics,
		Papers:           papers,
		Aura:             aura,
		Emotional:        emotion,
		RootCauseChain:   why,
		Principle:        principle,
		CounterFactual:   counter,
		EvidenceRef:      evidence,
		LinkedTestRef:    mockTest,
		RealizationPoint: realized,
	}, nil
}
