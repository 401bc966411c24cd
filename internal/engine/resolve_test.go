package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/RichStephens/killzone/internal/game"
)

// fixedCoin replays a sequence of results.
type fixedCoin struct {
	vals []int
	i    int
}

func (f *fixedCoin) Intn(n int) int {
	v := f.vals[f.i%len(f.vals)]
	f.i++
	return v % n
}

func TestResolve_NilInputs(t *testing.T) {
	r := NewResolver(nil, nil)
	a := mustPlayer(t, "a", "A", 0, 0)
	if r.Resolve(nil, a) != nil || r.Resolve(a, nil) != nil {
		t.Fatalf("expected nil outcome for a missing player")
	}
	if a.Health() != game.MaxHealth {
		t.Fatalf("missing opponent must not hurt the other player")
	}
}

func TestResolve_BothBranches(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	clock := func() time.Time { return ts }

	a := mustPlayer(t, "a", "Alice", 3, 3)
	b := mustPlayer(t, "b", "Bob", 3, 3)
	out := NewResolver(&fixedCoin{vals: []int{0}}, clock).Resolve(a, b)
	if out.WinnerID != "a" || out.LoserID != "b" {
		t.Fatalf("expected a to win on 0, got %+v", out)
	}
	if out.Type != OutcomeCombat || out.WinnerName != "Alice" || out.LoserName != "Bob" || !out.Timestamp.Equal(ts) {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if b.Health() != 0 || b.Status() != game.StatusDead {
		t.Fatalf("expected loser dead, got %d/%s", b.Health(), b.Status())
	}
	if a.Health() != 100 || a.Status() != game.StatusAlive {
		t.Fatalf("expected winner untouched, got %d/%s", a.Health(), a.Status())
	}

	c := mustPlayer(t, "c", "Carol", 1, 1)
	d := mustPlayer(t, "d", "Dave", 1, 1)
	out = NewResolver(&fixedCoin{vals: []int{1}}, clock).Resolve(c, d)
	if out.WinnerID != "d" || out.LoserID != "c" {
		t.Fatalf("expected d to win on 1, got %+v", out)
	}
	if c.Status() != game.StatusDead || d.Status() != game.StatusAlive {
		t.Fatalf("unexpected statuses %s/%s", c.Status(), d.Status())
	}
}

func TestResolve_WinnerLoserDistinctAndNonDegenerate(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(7)), nil)
	wins := map[string]int{}
	for i := 0; i < 1000; i++ {
		a := mustPlayer(t, "a", "A", 0, 0)
		b := mustPlayer(t, "b", "B", 0, 0)
		out := r.Resolve(a, b)
		if out.WinnerID == out.LoserID {
			t.Fatalf("winner equals loser")
		}
		if (out.WinnerID != "a" && out.WinnerID != "b") || (out.LoserID != "a" && out.LoserID != "b") {
			t.Fatalf("outcome ids outside the pair: %+v", out)
		}
		wins[out.WinnerID]++
	}
	if wins["a"] == 0 || wins["b"] == 0 {
		t.Fatalf("expected both sides to win at least once, got %v", wins)
	}
}

func TestResolve_AlreadyDeadCanLoseAgain(t *testing.T) {
	a := mustPlayer(t, "a", "A", 0, 0)
	b := mustPlayer(t, "b", "B", 0, 0)
	b.SetHealth(0)

	out := NewResolver(&fixedCoin{vals: []int{0}}, nil).Resolve(a, b)
	if out.LoserID != "b" || b.Health() != 0 || b.Status() != game.StatusDead {
		t.Fatalf("expected dead player to stay dead, got %+v", out)
	}
	out = NewResolver(&fixedCoin{vals: []int{1}}, nil).Resolve(a, b)
	if out.WinnerID != "b" || a.Status() != game.StatusDead {
		t.Fatalf("expected the dead player to be able to win the flip, got %+v", out)
	}
}

func TestResolveMany_PreservesOrder(t *testing.T) {
	a := mustPlayer(t, "a", "A", 0, 0)
	b := mustPlayer(t, "b", "B", 0, 0)
	c := mustPlayer(t, "c", "C", 5, 5)
	d := mustPlayer(t, "d", "D", 5, 5)

	r := NewResolver(&fixedCoin{vals: []int{0, 1}}, nil)
	outs := r.ResolveMany([]Pair{{A: a, B: b}, {A: c, B: d}})
	if len(outs) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outs))
	}
	if outs[0].WinnerID != "a" || outs[1].WinnerID != "d" {
		t.Fatalf("unexpected outcomes %+v %+v", outs[0], outs[1])
	}
	if len(r.ResolveMany(nil)) != 0 {
		t.Fatalf("expected no outcomes for no pairs")
	}
}
