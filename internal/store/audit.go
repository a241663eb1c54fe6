package store

import (
	"context"
	"fmt"

	"github.com/adite/labyrinth/ent"
	"github.com/adite/labyrinth/ent/transitionevent"
	"github.com/adite/labyrinth/ent/xpevent"
)

// eventRepo implements EventRepo on the ent client + sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendXP(ctx context.Context, data XPEventData) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.XPEvent.Create().
		SetSequence(seqNum).
		SetAmount(data.Amount).
		SetReason(data.Reason).
		SetTotalAfter(data.TotalAfter)

	if data.LossID != nil {
		builder = builder.SetLossID(*data.LossID)
	}

	if _, err := builder.Save(ctx); err != nil {
		return 0, fmt.Errorf("save xp event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) AppendTransition(ctx context.Context, data TransitionEventData) (int64, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.TransitionEvent.Create().
		SetSequence(seqNum).
		SetFromArchetype(data.From).
		SetToArchetype(data.To).
		SetTrigger(data.Trigger).
		Save(ctx)
	if err != nil {
		return 0, fmt.Errorf("save transition event: %w", err)
	}
	return seqNum, nil
}

func (r *eventRepo) QueryXP(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error) {
	query := r.client.XPEvent.Query().
		Order(ent.Desc(xpevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(xpevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		query = query.Where(xpevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		query = query.Where(xpevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(xpevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}

	records := make([]XPEventRecord, len(events))
	for i, e := range events {
		records[i] = XPEventRecord{
			Amount:     e.Amount,
			Reason:     e.Reason,
			LossID:     e.LossID,
			TotalAfter: e.TotalAfter,
			Sequence:   e.Sequence,
			Timestamp:  e.Timestamp,
		}
	}
	return records, nil
}

func (r *eventRepo) QueryTransitions(ctx context.Context, opts QueryOpts) ([]TransitionEventRecord, error) {
	query := r.client.TransitionEvent.Query().
		Order(ent.Desc(transitionevent.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}
	if opts.After > 0 {
		query = query.Where(transitionevent.SequenceGT(opts.After))
	}
	if !opts.From.IsZero() {
		query = query.Where(transitionevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		query = query.Where(transitionevent.TimestampLTE(opts.To))
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query transition events: %w", err)
	}

	records := make([]TransitionEventRecord, len(events))
	for i, e := range events {
		records[i] = TransitionEventRecord{
			From:      e.FromArchetype,
			To:        e.ToArchetype,
			Trigger:   e.Trigger,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
		}
	}
	return records, nil
}
