package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/logging"
	"github.com/RichStephens/killzone/internal/world"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Join spawns a new player.
func (a *Arena) Join(ctx context.Context, name string) (game.PlayerSnapshot, error) {
	_, span := tracer.Start(ctx, "arena.Join")
	defer span.End()

	p, err := a.world.AddPlayer(name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return game.PlayerSnapshot{}, err
	}
	span.SetAttributes(attribute.String(constants.LogFieldPlayerID, p.ID))
	logging.Info("player joined", logging.Fields{
		constants.LogFieldPlayerID:   p.ID,
		constants.LogFieldPlayerName: p.Name,
		"x":                          p.X,
		"y":                          p.Y,
	})
	return p, nil
}

// Status returns the player's current snapshot.
func (a *Arena) Status(ctx context.Context, id string) (game.PlayerSnapshot, error) {
	_, span := tracer.Start(ctx, "arena.Status")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return game.PlayerSnapshot{}, fmt.Errorf("%w: player id is required", game.ErrInvalidArgument)
	}
	p, ok := a.world.Player(id)
	if !ok {
		return game.PlayerSnapshot{}, fmt.Errorf("%w: player %q", game.ErrNotFound, id)
	}
	return p, nil
}

// Leave removes a player. Unknown ids yield game.ErrNotFound.
func (a *Arena) Leave(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "arena.Leave")
	defer span.End()

	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: player id is required", game.ErrInvalidArgument)
	}
	if !a.world.RemovePlayer(id) {
		err := fmt.Errorf("%w: player %q", game.ErrNotFound, id)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	logging.Info("player left", logging.Fields{constants.LogFieldPlayerID: id})
	return nil
}

// Move applies a one-cell move. A fight triggered by the move is recorded
// and published; failing to record it is logged but does not fail the move,
// which the world has already committed.
func (a *Arena) Move(ctx context.Context, id, direction string) (world.MoveResult, error) {
	ctx, span := tracer.Start(ctx, "arena.Move")
	defer span.End()
	span.SetAttributes(
		attribute.String(constants.LogFieldPlayerID, id),
		attribute.String(constants.LogFieldDirection, direction),
	)

	dir, err := game.ParseDirection(direction)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return world.MoveResult{}, err
	}
	res, err := a.world.Move(id, dir)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return world.MoveResult{}, err
	}

	span.SetAttributes(attribute.Int64("seq", int64(res.Seq)))
	if res.Combat != nil {
		span.SetAttributes(attribute.Bool("combat", true))
		a.recordCombat(ctx, *res.Combat, sourceMove)
	}
	return res, nil
}
