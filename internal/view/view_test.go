package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/venom/internal/testutil"
)

func TestPolicyCycle(t *testing.T) {
	e := New(SeparateCompleted)
	require.Equal(t, ShowAll, e.CyclePolicy())
	require.Equal(t, HideCompleted, e.CyclePolicy())
	require.Equal(t, SeparateCompleted, e.CyclePolicy())
}

func TestParsePolicy(t *testing.T) {
	for _, p := range []Policy{SeparateCompleted, ShowAll, HideCompleted} {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
	_, err := ParsePolicy("all")
	require.Error(t, err)
}

func TestRegenerate_HideCompleted(t *testing.T) {
	now := testutil.Epoch
	s := testutil.NewBuilder(t).
		WithTask("third", testutil.WithDue(now.Add(3*time.Hour))).
		WithTask("finished", testutil.Done(), testutil.WithDue(now.Add(-time.Hour))).
		WithTask("first", testutil.WithDue(now.Add(time.Hour))).
		Build()

	e := New(HideCompleted)
	e.Regenerate(s, now)

	require.Equal(t, 2, e.Len())
	require.Equal(t, []string{"first", "third"}, testutil.Titles(e.Tasks()))
}

func TestRegenerate_Policies(t *testing.T) {
	now := testutil.Epoch
	s := testutil.NewBuilder(t).
		WithTask("late", testutil.WithDue(now.Add(2*time.Hour))).
		WithTask("old done", testutil.Done(), testutil.WithDue(now.Add(-2*time.Hour))).
		WithTask("unscheduled").
		WithTask("soon", testutil.WithDue(now.Add(time.Hour))).
		Build()

	tests := []struct {
		policy Policy
		want   []string
	}{
		{ShowAll, []string{"old done", "unscheduled", "soon", "late"}},
		{HideCompleted, []string{"unscheduled", "soon", "late"}},
		{SeparateCompleted, []string{"unscheduled", "soon", "late", "old done"}},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			e := New(tt.policy)
			e.Regenerate(s, now)
			require.Equal(t, tt.want, testutil.Titles(e.Tasks()))
		})
	}
}

func TestRegenerate_LabelFilter(t *testing.T) {
	b := testutil.NewBuilder(t).
		WithLabel("WORK", "Work", "Red").
		WithLabel("HOME", "Home", "Blue").
		WithTask("report", testutil.WithLabel("WORK")).
		WithTask("dishes", testutil.WithLabel("HOME")).
		WithTask("loose")
	s := b.Build()

	e := New(ShowAll)
	e.SetFilter("WORK")
	e.Regenerate(s, testutil.Epoch)
	require.Equal(t, []string{"report"}, testutil.Titles(e.Tasks()))

	s.RemoveLabel("WORK")
	e.Regenerate(s, testutil.Epoch)
	require.Empty(t, e.Filter(), "filter on a removed label resets")
	require.Equal(t, 3, e.Len())
}

func TestCycleLabelFilter(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithLabel("A", "a", "Red").
		WithLabel("B", "b", "Blue").
		Build()

	e := New(ShowAll)
	require.Equal(t, "A   ", e.CycleLabelFilter(s))
	require.Equal(t, "B   ", e.CycleLabelFilter(s))
	require.Equal(t, "", e.CycleLabelFilter(s))
	require.Equal(t, "A   ", e.CycleLabelFilter(s))

	empty := testutil.NewBuilder(t).Build()
	require.Equal(t, "", e.CycleLabelFilter(empty))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0, Clamp(5, 0))
	require.Equal(t, 2, Clamp(5, 3))
	require.Equal(t, 1, Clamp(1, 3))
	require.Equal(t, 0, Clamp(-1, 3))
}

func TestSelectionStaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := testutil.StoreGen().Draw(t, "store")
		e := New(rapid.SampledFrom([]Policy{SeparateCompleted, ShowAll, HideCompleted}).Draw(t, "policy"))
		for i := rapid.IntRange(0, 3).Draw(t, "filter_steps"); i > 0; i-- {
			e.CycleLabelFilter(s)
		}
		e.Regenerate(s, testutil.Epoch)

		idx := Clamp(rapid.IntRange(0, 20).Draw(t, "old_index"), e.Len())
		if e.Len() == 0 {
			if idx != 0 {
				t.Fatalf("empty view selected %d", idx)
			}
			return
		}
		if idx < 0 || idx >= e.Len() {
			t.Fatalf("index %d out of [0,%d)", idx, e.Len())
		}
	})
}

func TestSeparateKeepsDueOrderWithinGroups(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := testutil.StoreGen().Draw(t, "store")
		e := New(SeparateCompleted)
		e.Regenerate(s, testutil.Epoch)

		seenDone := false
		for i, tk := range e.Tasks() {
			if tk.Done {
				seenDone = true
			} else if seenDone {
				t.Fatalf("incomplete task at %d after a completed one", i)
			}
			if i > 0 {
				prev := e.Tasks()[i-1]
				if prev.Done == tk.Done && prev.DueOr(testutil.Epoch).After(tk.DueOr(testutil.Epoch)) {
					t.Fatalf("due order broken at %d", i)
				}
			}
		}
	})
}
