package fileset

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddSkipsCaseInsensitiveDuplicates(t *testing.T) {
	s := New()
	if got := s.Add("/db/a.sql", "/db/B.sql"); got != 2 {
		t.Fatalf("Add returned %d, want 2", got)
	}
	if got := s.Add("/DB/A.SQL", "/db/b.sql", "/db/c.sql"); got != 1 {
		t.Fatalf("Add returned %d, want 1", got)
	}

	want := []string{"/db/a.sql", "/db/B.sql", "/db/c.sql"}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDuplicateWithinOneCall(t *testing.T) {
	s := New()
	s.Add("/x.sql", "/X.sql", "/x.SQL")
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestRemoveThenAddAppendsAtEnd(t *testing.T) {
	s := New()
	s.Add("/a", "/b", "/c")
	s.Remove("/a")
	s.Add("/a")

	want := []string{"/b", "/c", "/a"}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveBatchAndMissing(t *testing.T) {
	s := New()
	s.Add("/a", "/b", "/c", "/d")
	s.Remove("/B", "/d", "/missing")

	want := []string{"/a", "/c"}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}
	if s.Contains("/b") || s.Contains("/d") {
		t.Fatalf("removed paths still reported as members")
	}
	if !s.Contains("/A") {
		t.Fatalf("Contains(/A) = false, want true")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Add("/a", "/b")
	s.Clear()
	if s.Len() != 0 || s.Contains("/a") {
		t.Fatalf("Clear left entries behind: %v", s.Snapshot())
	}
	s.Add("/a")
	if s.Len() != 1 {
		t.Fatalf("Add after Clear: Len = %d, want 1", s.Len())
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name  string
		index int
		delta int
		want  []string
	}{
		{"down one", 0, 1, []string{"b", "a", "c", "d"}},
		{"up one", 2, -1, []string{"a", "c", "b", "d"}},
		{"to end", 0, 3, []string{"b", "c", "d", "a"}},
		{"to front", 3, -3, []string{"d", "a", "b", "c"}},
		{"first up", 0, -1, []string{"a", "b", "c", "d"}},
		{"last down", 3, 1, []string{"a", "b", "c", "d"}},
		{"index out of range", 4, -1, []string{"a", "b", "c", "d"}},
		{"negative index", -1, 1, []string{"a", "b", "c", "d"}},
		{"zero delta", 2, 0, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Add("a", "b", "c", "d")
			s.Move(tt.index, tt.delta)
			if diff := cmp.Diff(tt.want, s.Snapshot()); diff != "" {
				t.Fatalf("Move(%d, %d) mismatch (-want +got):\n%s", tt.index, tt.delta, diff)
			}
		})
	}
}

func TestMovePreservesMembers(t *testing.T) {
	base := []string{"a", "b", "c", "d", "e"}
	for index := range base {
		for delta := -len(base); delta <= len(base); delta++ {
			s := New()
			s.Add(base...)
			s.Move(index, delta)

			got := s.Snapshot()
			sort.Strings(got)
			if diff := cmp.Diff(base, got); diff != "" {
				t.Fatalf("Move(%d, %d) changed members (-want +got):\n%s", index, delta, diff)
			}
			for _, p := range base {
				if !s.Contains(p) {
					t.Fatalf("Move(%d, %d) lost membership of %q", index, delta, p)
				}
			}
		}
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := New()
	s.Add("a", "b")
	snap := s.Snapshot()
	s.Add("c")
	s.Move(0, 1)

	if diff := cmp.Diff([]string{"a", "b"}, snap); diff != "" {
		t.Fatalf("snapshot changed after mutation (-want +got):\n%s", diff)
	}

	snap[0] = "changed"
	if diff := cmp.Diff([]string{"b", "a", "c"}, s.Snapshot()); diff != "" {
		t.Fatalf("set changed through snapshot (-want +got):\n%s", diff)
	}
}

func TestIndexOf(t *testing.T) {
	s := New()
	s.Add("/a", "/b")
	if got := s.IndexOf("/B"); got != 1 {
		t.Fatalf("IndexOf(/B) = %d, want 1", got)
	}
	if got := s.IndexOf("/z"); got != -1 {
		t.Fatalf("IndexOf(/z) = %d, want -1", got)
	}
}
