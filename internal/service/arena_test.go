package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/RichStephens/killzone/internal/events"
	"github.com/RichStephens/killzone/internal/game"
	"github.com/RichStephens/killzone/internal/world"
)

type mockRepo struct {
	mu        sync.Mutex
	records   []game.CombatRecord
	recordErr error
	top       []game.FighterStats
	topCalls  int
}

func (m *mockRepo) RecordCombat(rec *game.CombatRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockRepo) RecentCombats(limit int) ([]game.CombatRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]game.CombatRecord(nil), m.records...), nil
}

func (m *mockRepo) GetStatsByName(name string) (*game.FighterStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.top {
		if m.top[i].DisplayName == name {
			s := m.top[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: fighter %q", game.ErrNotFound, name)
}

func (m *mockRepo) GetTopFighters(limit int) ([]game.FighterStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.topCalls++
	return m.top, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestArena(t *testing.T) (*Arena, *world.World, *mockRepo, *recordingPublisher) {
	t.Helper()
	w, err := world.New(world.DefaultConfig(), world.WithRand(rand.New(rand.NewSource(3))))
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	repo := &mockRepo{}
	pub := &recordingPublisher{}
	return NewArena(w, repo, pub), w, repo, pub
}

func TestJoin(t *testing.T) {
	a, _, _, pub := newTestArena(t)
	ctx := context.Background()

	p, err := a.Join(ctx, "Alice")
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.ID == "" || p.Name != "Alice" || p.Health != 100 || p.Status != game.StatusAlive {
		t.Fatalf("unexpected player %+v", p)
	}
	if _, err := a.Join(ctx, ""); !errors.Is(err, game.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if got := pub.types(); len(got) != 1 || got[0] != events.TypeJoined {
		t.Fatalf("expected one joined event, got %v", got)
	}
	if h := a.Health(); h.PlayerCount != 1 || h.Status != "healthy" {
		t.Fatalf("unexpected health %+v", h)
	}
}

func TestStatusAndLeave(t *testing.T) {
	a, _, _, pub := newTestArena(t)
	ctx := context.Background()
	p, _ := a.Join(ctx, "Alice")

	got, err := a.Status(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("Status: %+v, %v", got, err)
	}
	if _, err := a.Status(ctx, "nonexistent"); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := a.Leave(ctx, ""); !errors.Is(err, game.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if err := a.Leave(ctx, "nonexistent"); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := a.Leave(ctx, p.ID); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if _, err := a.Status(ctx, p.ID); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected player gone, got %v", err)
	}
	types := pub.types()
	if types[len(types)-1] != events.TypeLeft {
		t.Fatalf("expected left event last, got %v", types)
	}
}

func TestMove_RecordsCombat(t *testing.T) {
	a, w, repo, pub := newTestArena(t)
	ctx := context.Background()
	if _, err := w.PlacePlayer("m", "Mover", 1, 1); err != nil {
		t.Fatalf("PlacePlayer: %v", err)
	}
	if _, err := w.PlacePlayer("t", "Target", 1, 2); err != nil {
		t.Fatalf("PlacePlayer: %v", err)
	}

	res, err := a.Move(ctx, "m", "down")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if res.Combat == nil {
		t.Fatalf("expected combat")
	}
	if len(repo.records) != 1 || repo.records[0].Source != sourceMove {
		t.Fatalf("expected one recorded move combat, got %+v", repo.records)
	}
	if repo.records[0].WinnerID != res.Combat.WinnerID {
		t.Fatalf("recorded winner does not match outcome")
	}
	types := pub.types()
	want := []events.Type{events.TypeJoined, events.TypeJoined, events.TypeMoved, events.TypeCombat}
	if len(types) != len(want) {
		t.Fatalf("expected %v, got %v", want, types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, types)
		}
	}
	if pub.events[2].Seq != res.Seq || pub.events[3].Seq != res.Seq {
		t.Fatalf("move and combat events must carry the move's seq %d", res.Seq)
	}
}

func TestMove_RecordFailureDoesNotFailMove(t *testing.T) {
	a, w, repo, _ := newTestArena(t)
	repo.recordErr = errors.New("database is locked")
	_, _ = w.PlacePlayer("m", "Mover", 1, 1)
	_, _ = w.PlacePlayer("t", "Target", 2, 1)

	res, err := a.Move(context.Background(), "m", "right")
	if err != nil {
		t.Fatalf("expected move to succeed, got %v", err)
	}
	if res.Combat == nil {
		t.Fatalf("expected combat outcome to be returned")
	}
}

func TestMove_Errors(t *testing.T) {
	a, _, _, pub := newTestArena(t)
	ctx := context.Background()
	p, _ := a.Join(ctx, "Alice")

	if _, err := a.Move(ctx, p.ID, "invalid"); !errors.Is(err, game.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := a.Move(ctx, "nonexistent", "up"); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(pub.types()) != 1 {
		t.Fatalf("failed moves must not publish events")
	}
}

func TestSweep(t *testing.T) {
	a, w, repo, pub := newTestArena(t)
	ctx := context.Background()
	if out := a.Sweep(ctx); out != nil {
		t.Fatalf("expected nothing to sweep, got %v", out)
	}
	_, _ = w.PlacePlayer("a", "A", 3, 3)
	_, _ = w.PlacePlayer("b", "B", 3, 3)

	out := a.Sweep(ctx)
	if len(out) != 1 {
		t.Fatalf("expected one outcome, got %d", len(out))
	}
	if len(repo.records) != 1 || repo.records[0].Source != sourceSweep {
		t.Fatalf("expected sweep record, got %+v", repo.records)
	}
	types := pub.types()
	if types[len(types)-1] != events.TypeSweep {
		t.Fatalf("expected sweep event, got %v", types)
	}
}

func TestLeaderboardAndHistory(t *testing.T) {
	a, _, repo, _ := newTestArena(t)
	repo.top = []game.FighterStats{{DisplayName: "Alice", Wins: 3}}
	repo.records = []game.CombatRecord{{WinnerName: "Alice", LoserName: "Bob"}}

	top, err := a.Leaderboard(context.Background(), 10)
	if err != nil || len(top) != 1 || top[0].DisplayName != "Alice" {
		t.Fatalf("Leaderboard: %+v, %v", top, err)
	}
	recs, err := a.RecentCombats(context.Background(), 5)
	if err != nil || len(recs) != 1 {
		t.Fatalf("RecentCombats: %+v, %v", recs, err)
	}
	s, err := a.FighterStats(context.Background(), "Alice")
	if err != nil || s.Wins != 3 {
		t.Fatalf("FighterStats: %+v, %v", s, err)
	}
	if _, err := a.FighterStats(context.Background(), "Nobody"); !errors.Is(err, game.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := a.FighterStats(context.Background(), " "); !errors.Is(err, game.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestArenaWithoutCollaborators(t *testing.T) {
	w, _ := world.New(world.DefaultConfig())
	a := NewArena(w, nil, nil)
	ctx := context.Background()
	_, _ = w.PlacePlayer("a", "A", 0, 0)
	_, _ = w.PlacePlayer("b", "B", 0, 1)

	if _, err := a.Move(ctx, "b", "up"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	recs, err := a.RecentCombats(ctx, 10)
	if err != nil || len(recs) != 0 {
		t.Fatalf("expected empty history, got %v, %v", recs, err)
	}
	top, err := a.Leaderboard(ctx, 10)
	if err != nil || len(top) != 0 {
		t.Fatalf("expected empty leaderboard, got %v, %v", top, err)
	}
	a.Reset(ctx)
	if a.State(ctx).Players == nil || len(a.State(ctx).Players) != 0 {
		t.Fatalf("expected empty non-nil player list after reset")
	}
}

func TestStartCollisionSweeper(t *testing.T) {
	a, w, repo, _ := newTestArena(t)
	_, _ = w.PlacePlayer("a", "A", 5, 5)
	_, _ = w.PlacePlayer("b", "B", 5, 5)

	ctx, cancel := context.WithCancel(context.Background())
	done := StartCollisionSweeper(ctx, a, 5*time.Millisecond)

	deadline := time.After(2 * time.Second)
	for {
		repo.mu.Lock()
		n := len(repo.records)
		repo.mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("sweeper never resolved the stacked pair")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sweeper did not stop after cancel")
	}

	disabled := StartCollisionSweeper(context.Background(), a, 0)
	if _, open := <-disabled; open {
		t.Fatalf("expected disabled sweeper channel to be closed")
	}
}

// slowRepo answers GetTopFighters with its own tag after a delay.
type slowRepo struct {
	mockRepo
	tag   string
	delay time.Duration
}

func (s *slowRepo) GetTopFighters(limit int) ([]game.FighterStats, error) {
	time.Sleep(s.delay)
	return []game.FighterStats{{DisplayName: s.tag}}, nil
}

func TestLeaderboard_ArenasDoNotShareResults(t *testing.T) {
	newArena := func(tag string) *Arena {
		w, err := world.New(world.DefaultConfig())
		if err != nil {
			t.Fatalf("world.New: %v", err)
		}
		return NewArena(w, &slowRepo{tag: tag, delay: 50 * time.Millisecond}, nil)
	}
	a, b := newArena("from-A"), newArena("from-B")

	var wg sync.WaitGroup
	var gotA, gotB []game.FighterStats
	var errA, errB error
	wg.Add(2)
	go func() { defer wg.Done(); gotA, errA = a.Leaderboard(context.Background(), 10) }()
	go func() { defer wg.Done(); gotB, errB = b.Leaderboard(context.Background(), 10) }()
	wg.Wait()

	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if len(gotA) != 1 || gotA[0].DisplayName != "from-A" {
		t.Fatalf("arena A got %+v", gotA)
	}
	if len(gotB) != 1 || gotB[0].DisplayName != "from-B" {
		t.Fatalf("arena B got %+v", gotB)
	}
}

func TestEvents_FollowWorldOrderUnderConcurrentMoves(t *testing.T) {
	a, w, _, pub := newTestArena(t)
	ids := []string{"p0", "p1", "p2", "p3"}
	for i, id := range ids {
		if _, err := w.PlacePlayer(id, "P"+id, i*5, 10); err != nil {
			t.Fatalf("PlacePlayer: %v", err)
		}
	}
	dirs := []string{"up", "down", "left", "right"}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := a.Move(context.Background(), id, dirs[i%len(dirs)]); err != nil {
					t.Errorf("Move(%s): %v", id, err)
					return
				}
			}
		}(id)
	}
	wg.Wait()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	var last uint64
	final := map[string]game.Position{}
	for _, e := range pub.events {
		if e.Seq < last {
			t.Fatalf("event seq went backwards: %d after %d", e.Seq, last)
		}
		last = e.Seq
		if e.Type == events.TypeMoved {
			final[e.PlayerID] = *e.Position
		}
	}
	if last != w.Seq() {
		t.Fatalf("last event seq %d, world seq %d", last, w.Seq())
	}
	for _, id := range ids {
		p, ok := w.Player(id)
		if !ok {
			t.Fatalf("player %s vanished", id)
		}
		if got := final[id]; got.X != p.X || got.Y != p.Y {
			t.Fatalf("stream position for %s is %+v, world has (%d,%d)", id, got, p.X, p.Y)
		}
	}
}
