package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/adite/labyrinth/internal/event"
	"github.com/adite/labyrinth/internal/remediation"
	"github.com/adite/labyrinth/internal/scoring"
	"github.com/adite/labyrinth/internal/store"
	"github.com/adite/labyrinth/internal/vault"
)

// Engine owns the settings aggregate and orchestrates the leaf
// components. All operations assume at most one in-flight mutating
// call; the host serializes access.
type Engine struct {
	cfg   Config
	vault vault.RecordStore
	tasks remediation.TaskSink
	snaps store.SnapshotRepo
	audit store.EventRepo
	lib   remediation.Library
	rng   *rand.Rand
	now   func() time.Time

	lastSeq  int64
	settings Settings
}

// Options configures a new Engine. Vault is required; Tasks, Snapshots
// and Audit may be nil, in which case the corresponding side effects
// are skipped (useful in tests and read-only invocations).
type Options struct {
	Vault     vault.RecordStore
	Tasks     remediation.TaskSink
	Snapshots store.SnapshotRepo
	Audit     store.EventRepo
	Library   *remediation.Library
	Config    Config
	// Now overrides the clock, Seed the drill-sampling randomness.
	Now  func() time.Time
	Seed int64
}

// New builds an engine, restoring the settings aggregate from the
// latest snapshot if one exists.
func New(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Vault == nil {
		return nil, fmt.Errorf("engine: vault is required")
	}

	lib := remediation.DefaultLibrary()
	if opts.Library != nil {
		lib = *opts.Library
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	seed := opts.Seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	e := &Engine{
		cfg:      opts.Config.normalize(),
		vault:    opts.Vault,
		tasks:    opts.Tasks,
		snaps:    opts.Snapshots,
		audit:    opts.Audit,
		lib:      lib,
		rng:      rand.New(rand.NewSource(seed)),
		now:      now,
		settings: newSettings(),
	}

	if e.snaps != nil {
		snap, err := e.snaps.Latest(ctx)
		if err != nil {
			return nil, fmt.Errorf("restore settings: %w", err)
		}
		if snap != nil {
			e.settings = settingsFromSnapshot(&snap.Data)
			e.lastSeq = snap.Sequence
		}
	}
	return e, nil
}

// Settings exposes the current aggregate for read-only inspection.
func (e *Engine) Settings() *Settings {
	return &e.settings
}

// Library returns the drill library in use.
func (e *Engine) Library() remediation.Library {
	return e.lib
}

// CreateLossLog validates, persists and processes one completed
// failure event: the full remediation pipeline followed by a Minotaur
// recomputation. The vault write happens before any derived side
// effect, so a crash mid-pipeline leaves the record durable and the
// consequences re-derivable.
func (e *Engine) CreateLossLog(ctx context.Context, p event.Partial) (*Outcome, error) {
	out, err := e.createEvent(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := e.save(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// DeferLog appends a partially specified failure to the pending queue.
func (e *Engine) DeferLog(ctx context.Context, p event.PendingEvent) (event.PendingEvent, error) {
	if err := event.ValidatePending(p); err != nil {
		return event.PendingEvent{}, err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = e.now()
	}
	e.settings.Pending.Add(p)
	if p.OriginalTaskID != "" {
		e.settings.Deferrals.Increment(p.OriginalTaskID)
	}
	if err := e.save(ctx); err != nil {
		return event.PendingEvent{}, err
	}
	return p, nil
}

// PendingLogs returns the deferred queue, oldest first.
func (e *Engine) PendingLogs() []event.PendingEvent {
	return e.settings.Pending.All()
}

// CompletePending consumes a queued item into a full FailureEvent. The
// completion input overrides the defer-time hints; the resulting event
// carries provenance origin "deferred" and the original task id, which
// also resets that task's deferral counter.
func (e *Engine) CompletePending(ctx context.Context, id string, p event.Partial) (*Outcome, error) {
	pending, ok := e.findPending(id)
	if !ok {
		return nil, fmt.Errorf("complete pending: no queued item %s", id)
	}

	if p.SourceTask == "" {
		p.SourceTask = pending.SourceTask
	}
	if len(p.Archetypes) == 0 {
		p.Archetypes = pending.Archetypes
	}
	if len(p.Topics) == 0 {
		p.Topics = pending.Topics
	}
	if p.FailureType == "" {
		p.FailureType = pending.Type
	}
	p.Origin = event.OriginDeferred
	p.SourceID = pending.OriginalTaskID

	out, err := e.createEvent(ctx, p)
	if err != nil {
		return nil, err
	}

	// Consume only after the event is durably stored.
	e.settings.Pending.Remove(id)
	if err := e.save(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// DiscardPending drops a queued item without completing it. The
// originating task's deferral counter still resets: the loop closed,
// just without a log.
func (e *Engine) DiscardPending(ctx context.Context, id string) error {
	p, ok := e.settings.Pending.Remove(id)
	if !ok {
		return fmt.Errorf("discard pending: no queued item %s", id)
	}
	if p.OriginalTaskID != "" {
		e.settings.Deferrals.Reset(p.OriginalTaskID)
	}
	return e.save(ctx)
}

// Recalculate re-runs the Minotaur computation over the stored records.
// Idempotent: with no new events the dominant archetype and history are
// unchanged.
func (e *Engine) Recalculate(ctx context.Context) (*Outcome, error) {
	events, err := e.scanLosses(ctx)
	if err != nil {
		return nil, err
	}
	out := &Outcome{}
	e.recalculate(ctx, events, "recalculate", out)
	if err := e.save(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// StartBounty opens a bounty against an archetype. Only one bounty may
// be active; a completed one is replaced.
func (e *Engine) StartBounty(ctx context.Context, archetype string) (*remediation.Bounty, error) {
	if archetype == "" {
		return nil, fmt.Errorf("start bounty: archetype is required")
	}
	if b := e.settings.Bounty; b != nil && !b.Completed {
		return nil, fmt.Errorf("start bounty: bounty on %q still active", b.Archetype)
	}
	b := remediation.NewBounty(archetype, e.cfg.BountyTarget, e.cfg.BountyRewardXP)
	e.settings.Bounty = b
	if err := e.save(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// WeeklyReset clears the deferred queue, the deferral counters and the
// Minotaur history. Cumulative XP and lifetime counters survive.
func (e *Engine) WeeklyReset(ctx context.Context) error {
	e.settings.Pending.Clear()
	e.settings.Deferrals = map[string]int{}
	e.settings.Minotaur.History = nil
	return e.save(ctx)
}

// createEvent runs the shared pipeline without saving settings.
func (e *Engine) createEvent(ctx context.Context, p event.Partial) (*Outcome, error) {
	now := e.now()
	ev := event.Prepare(p, now)
	if err := event.Validate(ev); err != nil {
		return nil, err
	}

	// One scan serves enshrinement counting and the recomputation.
	prior, err := e.scanLosses(ctx)
	if err != nil {
		return nil, err
	}

	occurrences := remediation.CountPrinciple(prior, ev.Principle) + 1
	ev.Enshrined = remediation.ShouldEnshrine(occurrences)

	// Durable write first; every derived effect below is re-derivable.
	meta, err := vault.MetaFromEvent(ev).ToMap()
	if err != nil {
		return nil, err
	}
	path := e.lossPath(ev.ID)
	if err := e.vault.Create(ctx, path, meta, lossBody(ev)); err != nil {
		return nil, fmt.Errorf("store loss record: %w", err)
	}

	out := &Outcome{Event: &ev}

	// 1. XP award.
	out.XPAwarded = e.cfg.XPPerEvent
	out.LeveledUp, out.Level = e.settings.XP.Award(e.cfg.XPPerEvent)
	e.settings.XP.RecordEvent()
	e.appendXP(ctx, store.XPEventData{
		Amount:     e.cfg.XPPerEvent,
		Reason:     "event-logged",
		LossID:     &ev.ID,
		TotalAfter: e.settings.XP.Total,
	})

	// 2. Slaying streak.
	out.StreakAchieved = e.settings.Minotaur.RecordOutcome(ev.Archetypes, now)
	out.StreakDays = e.settings.Minotaur.StreakDays

	// 3. Bounty progress.
	if b := e.settings.Bounty; b != nil {
		out.BountyProgressed, out.BountyCompleted = b.RecordHit(ev.Archetypes)
		if out.BountyCompleted {
			out.BountyRewardXP = b.RewardXP
			leveled, level := e.settings.XP.Award(b.RewardXP)
			if leveled {
				out.LeveledUp, out.Level = true, level
			}
			e.appendXP(ctx, store.XPEventData{
				Amount:     b.RewardXP,
				Reason:     "bounty-completed",
				TotalAfter: e.settings.XP.Total,
			})
		}
	}

	// 4. Value-of-information tasks.
	if remediation.TriggersVOI(ev) {
		out.VOITasks = remediation.SynthesizeVOITasks(ev, now)
		for _, task := range out.VOITasks {
			e.appendTask(ctx, task)
		}
	}

	// 5. Topic consequences.
	if ev.FailureType != event.TypeProcessFailure {
		out.GardenNotices = e.propagateTopicConsequences(ctx, ev.Topics)
	}

	// 6. Enshrinement.
	if ev.Enshrined {
		entry := remediation.CodexEntry(ev.Principle, now)
		if err := e.vault.Append(ctx, e.cfg.CodexPath, entry); err != nil {
			log.Printf("codex append failed: %v", err)
		} else {
			out.Enshrined = true
		}
	}

	// Completing or logging against the origin task closes its loop.
	if ev.Provenance.SourceID != "" {
		e.settings.Deferrals.Reset(ev.Provenance.SourceID)
	}

	// Recompute the Minotaur with the new event included.
	e.recalculate(ctx, append(prior, ev), "new-event", out)
	return out, nil
}

// recalculate determines the dominant archetype and, on change, records
// the transition and surfaces drills for the new Minotaur.
func (e *Engine) recalculate(ctx context.Context, events []event.FailureEvent, trigger string, out *Outcome) {
	now := e.now()
	prev := e.settings.Minotaur.Current
	dominant := scoring.Dominant(events, now, e.cfg.Scoring)

	out.PreviousMinotaur = prev
	out.Minotaur = dominant
	if !e.settings.Minotaur.RecordTransition(dominant, now) {
		return
	}
	out.MinotaurChanged = true

	e.appendTransition(ctx, store.TransitionEventData{From: prev, To: dominant, Trigger: trigger})

	if dominant == "" {
		return
	}
	drills := remediation.SelectDrills(e.lib, dominant, remediation.DrillsPerTransition, e.settings.QueuedDrills, e.rng)
	out.Drills = drills
	for _, d := range drills {
		e.appendTask(ctx, remediation.NewTask(d, now))
		e.settings.QueuedDrills = append(e.settings.QueuedDrills, d)
	}
}

// propagateTopicConsequences tags each referenced topic unstable and
// steps its garden status down one stage. Missing topic records are
// skipped; already-lowest stages absorb the hit silently.
func (e *Engine) propagateTopicConsequences(ctx context.Context, topics []string) []string {
	var notices []string
	for _, topic := range topics {
		path := e.cfg.TopicScope + "/" + topic + ".md"
		err := e.vault.UpdateMeta(ctx, path, func(meta map[string]any) error {
			tm, err := vault.DecodeTopicMeta(meta)
			if err != nil {
				return err
			}

			tags, added := remediation.AddTag(tm.Tags, remediation.UnstableTag)
			if added {
				meta["tags"] = tags
				notices = append(notices, fmt.Sprintf("%s tagged %s", topic, remediation.UnstableTag))
			}

			if next, stepped := remediation.StepDown(remediation.GardenStatus(tm.Status)); stepped {
				meta["status"] = string(next)
				notices = append(notices, fmt.Sprintf("%s: %s -> %s", topic, tm.Status, next))
			}
			return nil
		})
		if err != nil {
			log.Printf("topic consequence for %q skipped: %v", topic, err)
		}
	}
	return notices
}

// scanLosses reads every loss record in scope, tolerating individual
// parse failures: a malformed record is logged and excluded, never
// fatal to the aggregation. Results are oldest first.
func (e *Engine) scanLosses(ctx context.Context) ([]event.FailureEvent, error) {
	paths, err := e.vault.List(ctx, e.cfg.LossScope)
	if err != nil {
		return nil, fmt.Errorf("list loss records: %w", err)
	}

	events := make([]event.FailureEvent, 0, len(paths))
	for _, path := range paths {
		raw, err := e.vault.ReadMeta(ctx, path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		meta, err := vault.DecodeLossMeta(raw)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		ev, err := meta.Event()
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}
		events = append(events, ev)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events, nil
}

func (e *Engine) findPending(id string) (event.PendingEvent, bool) {
	for _, p := range e.settings.Pending.All() {
		if p.ID == id {
			return p, true
		}
	}
	return event.PendingEvent{}, false
}

func (e *Engine) lossPath(id string) string {
	return e.cfg.LossScope + "/" + id + ".md"
}

// save persists the settings aggregate and prunes old snapshots.
func (e *Engine) save(ctx context.Context) error {
	if e.snaps == nil {
		return nil
	}
	snap := &store.Snapshot{
		Sequence:  e.lastSeq,
		Timestamp: e.now(),
		Data:      e.settings.snapshotData(),
	}
	if err := e.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := e.snaps.Prune(ctx, e.cfg.SnapshotKeep); err != nil {
		log.Printf("snapshot prune failed: %v", err)
	}
	return nil
}

// Audit appends are best-effort: the settings aggregate and the vault
// already carry the state of record.
func (e *Engine) appendXP(ctx context.Context, data store.XPEventData) {
	if e.audit == nil {
		return
	}
	seq, err := e.audit.AppendXP(ctx, data)
	if err != nil {
		log.Printf("xp audit append failed: %v", err)
		return
	}
	e.lastSeq = seq
}

func (e *Engine) appendTransition(ctx context.Context, data store.TransitionEventData) {
	if e.audit == nil {
		return
	}
	seq, err := e.audit.AppendTransition(ctx, data)
	if err != nil {
		log.Printf("transition audit append failed: %v", err)
		return
	}
	e.lastSeq = seq
}

func (e *Engine) appendTask(ctx context.Context, task remediation.Task) {
	if e.tasks == nil {
		return
	}
	if err := e.tasks.AppendTask(ctx, task); err != nil {
		log.Printf("task append failed: %v", err)
	}
}

// lossBody renders the free-text body of a loss record.
func lossBody(ev event.FailureEvent) string {
	body := "## " + ev.SourceTask + "\n"
	if len(ev.RootCauseChain) > 0 {
		body += "\n### Why\n"
		for i, cause := range ev.RootCauseChain {
			body += fmt.Sprintf("%d. %s\n", i+1, cause)
		}
	}
	if ev.Principle != "" {
		body += "\n### Ariadne's Thread\n> " + ev.Principle + "\n"
	}
	return body
}
