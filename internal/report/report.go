// Package report renders engine state for the terminal.
package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/adite/labyrinth/internal/engine"
	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/history"
	"github.com/adite/labyrinth/internal/remediation"
)

// Color palette — dark, labyrinthine.
var (
	Primary = lipgloss.Color("#B91C1C") // Minotaur Red
	Accent  = lipgloss.Color("#D97706") // Amber
	Success = lipgloss.Color("#16A34A") // Green
	Text    = lipgloss.Color("#E7E5E4") // Stone
	TextDim = lipgloss.Color("#78716C") // Dim Stone
	Border  = lipgloss.Color("#44403C") // Dark Stone
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Accent)

	bodyStyle = lipgloss.NewStyle().
			Foreground(Text)

	dimStyle = lipgloss.NewStyle().
			Foreground(TextDim)

	goodStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

// Stats renders the full analytics view.
func Stats(s *engine.Stats) string {
	var b strings.Builder

	minotaur := s.Minotaur
	if minotaur == "" {
		minotaur = "none (no recent failures)"
	}
	head := titleStyle.Render("MINOTAUR: "+minotaur) + "\n" +
		dimStyle.Render(fmt.Sprintf("%d events logged, %d-day window", s.TotalEvents, s.WindowSize))
	b.WriteString(cardStyle.Render(head))
	b.WriteString("\n\n")

	b.WriteString(headingStyle.Render("Leaderboard"))
	b.WriteString("\n")
	if len(s.Leaderboard) == 0 {
		b.WriteString(dimStyle.Render("  nothing in the window") + "\n")
	}
	for i, sc := range s.Leaderboard {
		b.WriteString(bodyStyle.Render(
			fmt.Sprintf("  %d. %-28s %6.2f  (%d events)", i+1, sc.Archetype, sc.Score, sc.Events)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Progress"))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("  Level %d — %s (%d XP, %d lifetime events)",
		s.Level.Level, s.Level.Title, s.XP.Total, s.XP.LifetimeEvents)))
	b.WriteString("\n")
	streak := fmt.Sprintf("  Slaying streak: %d days", s.StreakDays)
	if s.StreakDays >= 21 {
		b.WriteString(goodStyle.Render(streak + "  ** Slayer of the Minotaur **"))
	} else {
		b.WriteString(bodyStyle.Render(streak))
	}
	b.WriteString("\n")
	if s.Bounty != nil {
		b.WriteString(bodyStyle.Render("  " + bountyLine(s.Bounty)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(headingStyle.Render("Escape rate"))
	b.WriteString("\n")
	b.WriteString(bodyStyle.Render(fmt.Sprintf("  %.1f%% (%d of %d failed topics redeemed)",
		s.EscapeRate.Percent, s.EscapeRate.Escaped, s.EscapeRate.Total)))
	b.WriteString("\n\n")

	if len(s.Nemesis) > 0 {
		b.WriteString(headingStyle.Render("Nemesis topics"))
		b.WriteString("\n")
		for _, tc := range s.Nemesis {
			b.WriteString(bodyStyle.Render(fmt.Sprintf("  %-28s %d failures", tc.Topic, tc.Events)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.Threads) > 0 {
		b.WriteString(headingStyle.Render("Most-reused threads"))
		b.WriteString("\n")
		for _, tc := range s.Threads {
			b.WriteString(bodyStyle.Render(fmt.Sprintf("  %dx  %s", tc.Uses, tc.Principle)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.Findings) > 0 {
		b.WriteString(headingStyle.Render("Correlations"))
		b.WriteString("\n")
		for _, f := range s.Findings {
			b.WriteString(bodyStyle.Render("  " + f.Describe()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.HistoryFrequency) > 0 {
		b.WriteString(headingStyle.Render("History"))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(fmt.Sprintf("  Most persistent: %s (%d consecutive reigns)",
			s.MostPersistent, s.PersistentRun)))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(fmt.Sprintf("  Instability: %d distinct Minotaurs in the last %d transitions",
			s.Instability, history.DefaultInstabilityWindow)))
		b.WriteString("\n\n")
	}

	if len(s.ChronicTasks) > 0 {
		b.WriteString(headingStyle.Render("Chronic deferrals"))
		b.WriteString("\n")
		for _, id := range s.ChronicTasks {
			b.WriteString(dimStyle.Render("  " + id))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Outcome renders the consequences of one logged event.
func Outcome(out *engine.Outcome) string {
	var b strings.Builder

	if out.Event != nil {
		b.WriteString(goodStyle.Render("Logged " + out.Event.ID))
		b.WriteString("\n")
		b.WriteString(bodyStyle.Render(fmt.Sprintf("  +%d XP", out.XPAwarded)))
		b.WriteString("\n")
	}
	if out.LeveledUp {
		b.WriteString(goodStyle.Render(fmt.Sprintf("  LEVEL UP — %d: %s", out.Level.Level, out.Level.Title)))
		b.WriteString("\n")
	}
	if out.BountyCompleted {
		b.WriteString(goodStyle.Render(fmt.Sprintf("  Bounty complete! +%d XP", out.BountyRewardXP)))
		b.WriteString("\n")
	} else if out.BountyProgressed {
		b.WriteString(bodyStyle.Render("  Bounty progressed"))
		b.WriteString("\n")
	}
	if out.StreakAchieved {
		b.WriteString(goodStyle.Render("  21-day slaying streak — Slayer of the Minotaur"))
		b.WriteString("\n")
	}
	if out.Enshrined {
		b.WriteString(headingStyle.Render("  Principle enshrined in the codex"))
		b.WriteString("\n")
	}
	for _, t := range out.VOITasks {
		b.WriteString(dimStyle.Render("  task: " + t.Text))
		b.WriteString("\n")
	}
	for _, n := range out.GardenNotices {
		b.WriteString(dimStyle.Render("  garden: " + n))
		b.WriteString("\n")
	}
	if out.MinotaurChanged {
		from := out.PreviousMinotaur
		if from == "" {
			from = "(none)"
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("  Minotaur: %s -> %s", from, out.Minotaur)))
		b.WriteString("\n")
		for _, d := range out.Drills {
			b.WriteString(bodyStyle.Render("  drill: " + d))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Pending renders the deferred queue, oldest first.
func Pending(items []event.PendingEvent, deferrals map[string]int, threshold int) string {
	if len(items) == 0 {
		return dimStyle.Render("The queue is empty.") + "\n"
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Pending logs (%d)", len(items))))
	b.WriteString("\n")
	for i, p := range items {
		line := fmt.Sprintf("  %d. %-36s  %s", i+1, p.ID, p.SourceTask)
		if n := deferrals[p.OriginalTaskID]; p.OriginalTaskID != "" && n >= threshold {
			line += fmt.Sprintf("  [deferred %dx]", n)
			b.WriteString(titleStyle.Render(line))
		} else {
			b.WriteString(bodyStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Bounty renders the active bounty state.
func Bounty(b *remediation.Bounty) string {
	if b == nil {
		return dimStyle.Render("No bounty active.") + "\n"
	}
	line := bountyLine(b)
	if b.Completed {
		return goodStyle.Render(line) + "\n"
	}
	return bodyStyle.Render(line) + "\n"
}

func bountyLine(b *remediation.Bounty) string {
	state := fmt.Sprintf("%d/%d", b.Count, b.Target)
	if b.Completed {
		state = "complete"
	}
	return fmt.Sprintf("Bounty on %s: %s (reward %d XP)", b.Archetype, state, b.RewardXP)
}
