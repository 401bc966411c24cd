package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/engine"
	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/logging"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	sourceMove  = "move"
	sourceSweep = "sweep"
)

// Sweep resolves every currently stacked pair in one world step. Outcomes
// are recorded and published like movement fights.
func (a *Arena) Sweep(ctx context.Context) []engine.Outcome {
	ctx, span := tracer.Start(ctx, "arena.Sweep")
	defer span.End()

	outcomes := a.world.ResolveCollisions()
	if len(outcomes) == 0 {
		return nil
	}
	for _, o := range outcomes {
		a.recordCombat(ctx, o, sourceSweep)
	}
	logging.Info("collision sweep resolved fights", logging.Fields{constants.LogFieldCount: len(outcomes)})
	return outcomes
}

// RecentCombats returns persisted outcomes, newest first. Without a
// repository it returns an empty list.
func (a *Arena) RecentCombats(ctx context.Context, limit int) ([]game.CombatRecord, error) {
	_, span := tracer.Start(ctx, "arena.RecentCombats")
	defer span.End()

	if a.repo == nil {
		return []game.CombatRecord{}, nil
	}
	return a.repo.RecentCombats(limit)
}

// Leaderboard returns the top fighters. Concurrent requests for the same
// limit share one query.
func (a *Arena) Leaderboard(ctx context.Context, limit int) ([]game.FighterStats, error) {
	_, span := tracer.Start(ctx, "arena.Leaderboard")
	defer span.End()

	if a.repo == nil {
		return []game.FighterStats{}, nil
	}
	top, shared, err := a.leaderboard.Do("top:"+strconv.Itoa(limit), func() ([]game.FighterStats, error) {
		return a.repo.GetTopFighters(limit)
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Bool("shared", shared))
	return top, nil
}

// FighterStats returns the win/loss record for a player name.
func (a *Arena) FighterStats(ctx context.Context, name string) (game.FighterStats, error) {
	_, span := tracer.Start(ctx, "arena.FighterStats")
	defer span.End()

	if !game.ValidName(name) {
		return game.FighterStats{}, fmt.Errorf("%w: fighter name is required", game.ErrInvalidArgument)
	}
	if a.repo == nil {
		return game.FighterStats{}, fmt.Errorf("%w: fighter %q", game.ErrNotFound, name)
	}
	s, err := a.repo.GetStatsByName(name)
	if err != nil {
		return game.FighterStats{}, err
	}
	return *s, nil
}

func (a *Arena) recordCombat(ctx context.Context, o engine.Outcome, source string) {
	fields := logging.Fields{
		constants.LogFieldWinnerID: o.WinnerID,
		constants.LogFieldLoserID:  o.LoserID,
		"source":                   source,
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields["trace_id"] = sc.TraceID().String()
	}
	logging.Info("combat resolved", fields)
	if a.repo == nil {
		return
	}
	rec := &game.CombatRecord{
		WinnerID:   o.WinnerID,
		LoserID:    o.LoserID,
		WinnerName: o.WinnerName,
		LoserName:  o.LoserName,
		OccurredAt: o.Timestamp,
		Source:     source,
	}
	if err := a.repo.RecordCombat(rec); err != nil {
		logging.Error("failed to record combat", err, fields)
	}
}
