package version

import "testing"

func TestCurrent(t *testing.T) {
	oldV, oldC, oldD := Version, Commit, Dirty
	t.Cleanup(func() { Version, Commit, Dirty = oldV, oldC, oldD })

	Version, Commit, Dirty = "v1.2.0", "abc123", "true"
	info := Current()
	if info.Service != "killzone" || info.Version != "v1.2.0" || !info.Dirty {
		t.Fatalf("unexpected info %+v", info)
	}
	if got := info.String(); got != "killzone v1.2.0 (abc123) dirty" {
		t.Fatalf("unexpected string %q", got)
	}

	Dirty = "garbage"
	if Current().Dirty {
		t.Fatalf("unparsable dirty flag must read as clean")
	}
}
