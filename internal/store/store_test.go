package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
	"github.com/zjrosen/venom/internal/testutil"
)

func TestAddRemoveTask(t *testing.T) {
	s := store.New()
	a := s.AddTask(task.New())
	b := s.AddTask(task.New())
	require.Len(t, s.Tasks(), 2)

	s.RemoveTask(a)
	require.Equal(t, []*task.Task{b}, s.Tasks())

	// Removing again is a no-op.
	s.RemoveTask(a)
	require.Len(t, s.Tasks(), 1)
}

func TestAddTask_DropsUnknownLabel(t *testing.T) {
	s := store.New()
	tk := task.New()
	tk.LabelCode = "NOPE"
	s.AddTask(tk)
	require.Empty(t, tk.LabelCode)
}

func TestAddLabel_ExistingCodeUpdatesInPlace(t *testing.T) {
	s := store.New()
	first := s.AddLabel(task.NewLabel("WORK", "Work", task.NamedColor("Red")))
	got := s.AddLabel(task.NewLabel("WORK", "Office", task.NamedColor("Blue")))

	require.Same(t, first, got)
	require.Len(t, s.Labels(), 1)
	require.Equal(t, "Office", first.Name)
	require.Equal(t, task.NamedColor("Blue"), first.Color)
}

func TestLabelByCode(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithLabel("AB", "Short", "Blue").
		WithLabel("WORK", "Work", "Red").
		Build()

	tests := []struct {
		name string
		code string
		want string
	}{
		{"exact", "WORK", "Work"},
		{"padded input", "AB", "Short"},
		{"already padded", "AB  ", "Short"},
		{"truncated input", "WORKING", "Work"},
		{"missing", "HOME", ""},
		{"case sensitive", "work", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := s.LabelByCode(tt.code)
			if tt.want == "" {
				require.Nil(t, l)
				return
			}
			require.NotNil(t, l)
			require.Equal(t, tt.want, l.Name)
		})
	}
}

func TestRemoveLabel_Cascades(t *testing.T) {
	b := testutil.NewBuilder(t).
		WithLabel("WORK", "Work", "Red").
		WithLabel("HOME", "Home", "Blue").
		WithTask("report", testutil.WithLabel("WORK")).
		WithTask("dishes", testutil.WithLabel("HOME")).
		WithTask("email", testutil.WithLabel("WORK"))
	s := b.Build()

	s.RemoveLabel("WORK")

	require.Nil(t, s.LabelByCode("WORK"))
	require.Empty(t, b.Task("report").LabelCode)
	require.Empty(t, b.Task("email").LabelCode)
	require.Equal(t, "HOME", b.Task("dishes").LabelCode)

	require.NotPanics(t, func() { s.RemoveLabel("WORK") })
}

func TestSortTasks(t *testing.T) {
	now := testutil.Epoch
	b := testutil.NewBuilder(t).
		WithTask("done early", testutil.Done(), testutil.WithDue(now.Add(-48*time.Hour))).
		WithTask("later", testutil.WithDue(now.Add(24*time.Hour))).
		WithTask("unscheduled").
		WithTask("overdue", testutil.WithDue(now.Add(-time.Hour))).
		WithTask("done unscheduled", testutil.Done())
	s := b.Build()

	s.SortTasks(now)

	require.Equal(t,
		[]string{"overdue", "unscheduled", "later", "done early", "done unscheduled"},
		testutil.Titles(s.Tasks()))
}

func TestDocumentRoundTrip(t *testing.T) {
	due := time.Date(2024, 2, 29, 18, 5, 0, 0, time.FixedZone("CET", 3600))
	b := testutil.NewBuilder(t).
		WithLabel("TRIP", "Travel", "Blue").
		WithTask("pack", testutil.WithLabel("TRIP"), testutil.WithDue(due),
			testutil.WithPriority(task.PriorityHigh), testutil.WithNotes("passport\ncharger")).
		WithTask("relax", testutil.Done())
	s := b.Build()
	s.AddLabel(task.NewLabel("RGB", "True color", task.RGBColor(1, 2, 3)))

	doc := s.Document()
	require.Equal(t, "TRIP", doc.Tasks[0].Label)
	require.Equal(t, "#010203", doc.Labels[1].Color)
	require.Equal(t, "High", doc.Tasks[0].Priority)

	loaded := store.FromDocument(doc)
	require.Equal(t, doc, loaded.Document())

	pack := loaded.TaskByID(b.Task("pack").ID)
	require.NotNil(t, pack)
	require.True(t, pack.Due.Equal(due))
	require.Equal(t, "TRIP", loaded.LabelOf(pack).ShortCode())
}

func TestFromDocument_Lenient(t *testing.T) {
	doc := store.Document{
		Tasks: []store.TaskRecord{
			{Title: "a", Priority: "Urgent", Label: "GONE"},
		},
	}
	s := store.FromDocument(doc)
	require.Len(t, s.Tasks(), 1)
	tk := s.Tasks()[0]
	require.Equal(t, task.PriorityNone, tk.Priority)
	require.Empty(t, tk.LabelCode)
	require.NotEmpty(t, tk.ID)
}

func TestRemoveLabelNeverLeavesReferences(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := testutil.StoreGen().Draw(t, "store")
		if len(s.Labels()) == 0 {
			return
		}
		code := rapid.SampledFrom(s.Labels()).Draw(t, "label").Code

		s.RemoveLabel(code)

		for _, tk := range s.Tasks() {
			if tk.LabelCode == code {
				t.Fatalf("task %q still references %q", tk.Title, code)
			}
			if tk.LabelCode != "" && s.LabelOf(tk) == nil {
				t.Fatalf("task %q has dangling reference %q", tk.Title, tk.LabelCode)
			}
		}
	})
}

func TestSortTasksIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := testutil.StoreGen().Draw(t, "store")
		s.SortTasks(testutil.Epoch)
		first := append([]*task.Task(nil), s.Tasks()...)

		s.SortTasks(testutil.Epoch)
		for i, tk := range s.Tasks() {
			if tk != first[i] {
				t.Fatalf("position %d changed on second sort", i)
			}
		}
	})
}
