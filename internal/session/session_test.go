package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/venom/internal/codec"
	"github.com/zjrosen/venom/internal/shared"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
	"github.com/zjrosen/venom/internal/testutil"
	"github.com/zjrosen/venom/internal/textbuffer"
	"github.com/zjrosen/venom/internal/view"
)

type fakePersister struct {
	saves []store.Document
	err   error
}

func (f *fakePersister) Save(_ context.Context, doc store.Document) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, doc)
	return nil
}

func newSession(t *testing.T, s *store.Store, opts Options) (*Session, *fakePersister) {
	t.Helper()
	p := &fakePersister{}
	opts.Persister = p
	opts.Clock = shared.FixedClock{T: testutil.Epoch}
	opts.Location = time.UTC
	return New(s, opts), p
}

func apply(t *testing.T, s *Session, cmds ...Command) {
	t.Helper()
	for _, c := range cmds {
		require.NoError(t, s.Apply(context.Background(), c), c.Kind.String())
	}
}

func keys(text ...string) []Command {
	out := make([]Command, 0, len(text))
	for _, k := range text {
		out = append(out, Keystroke(textbuffer.Key(k)))
	}
	return out
}

func TestAddTaskAndEditTitle(t *testing.T) {
	sess, p := newSession(t, store.New(), Options{VimEnabled: true})

	apply(t, sess, Do(AddTask))
	require.Equal(t, EditingTask, sess.State())
	snap := sess.Snapshot()
	require.Equal(t, codec.Title, snap.Property)
	require.Equal(t, FocusFields, snap.Focus)

	apply(t, sess, Do(ConfirmIntoEdit))
	apply(t, sess, keys("i", "Buy milk")...)

	// First cancel only leaves insert mode.
	apply(t, sess, Do(CancelOneLevel))
	require.Equal(t, FocusEdit, sess.Snapshot().Focus)
	require.Empty(t, p.saves)
	require.Empty(t, sess.Target().Title)

	apply(t, sess, Do(CancelOneLevel))
	require.Equal(t, FocusFields, sess.Snapshot().Focus)
	require.Equal(t, "Buy milk", sess.Target().Title)
	require.Len(t, p.saves, 1)

	apply(t, sess, Do(CancelOneLevel))
	require.Equal(t, MainView, sess.State())
	require.Len(t, p.saves, 2, "new task is saved when the editor closes")
	require.Equal(t, "Buy milk", p.saves[1].Tasks[0].Title)
	require.Equal(t, 0, sess.Selected())
}

func TestEditExistingTaskDoesNotSaveOnClose(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("existing").Build()
	sess, p := newSession(t, s, Options{VimEnabled: true})

	apply(t, sess, Do(EditCurrentTask), Do(CancelOneLevel))
	require.Equal(t, MainView, sess.State())
	require.Empty(t, p.saves)
}

func TestEditCurrentTaskOnEmptyViewIsNoop(t *testing.T) {
	sess, _ := newSession(t, store.New(), Options{})
	apply(t, sess, Do(EditCurrentTask), Do(DeleteSelectedTask), Do(ToggleSelectedDone), Do(CopySelectedTitle))
	require.Equal(t, MainView, sess.State())
}

func TestPropertyCycleReloadsBuffer(t *testing.T) {
	due := time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)
	s := testutil.NewBuilder(t).
		WithLabel("HOME", "Home", "Blue").
		WithTask("fireworks", testutil.WithDue(due), testutil.WithLabel("HOME"),
			testutil.WithPriority(task.PriorityLow)).
		Build()
	sess, _ := newSession(t, s, Options{VimEnabled: true})

	apply(t, sess, Do(EditCurrentTask))
	want := []struct {
		prop codec.Property
		text string
	}{
		{codec.Label, "HOME"},
		{codec.DueDate, "04 Jul 2024 09:00"},
		{codec.Notes, ""},
		{codec.Priority, "Low"},
		{codec.Title, "fireworks"},
	}
	for _, w := range want {
		apply(t, sess, Do(CyclePropertyDown))
		snap := sess.Snapshot()
		require.Equal(t, w.prop, snap.Property)
		require.Equal(t, []string{w.text}, snap.Editor.Lines)
	}

	apply(t, sess, Do(CyclePropertyUp))
	require.Equal(t, codec.Priority, sess.Snapshot().Property)
}

func TestPriorityCommitFallback(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("plan").Build()
	sess, p := newSession(t, s, Options{VimEnabled: true})
	tk := s.Tasks()[0]

	apply(t, sess, Do(EditCurrentTask), Do(CyclePropertyUp), Do(ConfirmIntoEdit))
	apply(t, sess, keys("d", "d", "i", "High")...)
	apply(t, sess, Do(CancelOneLevel), Do(CancelOneLevel))
	require.Equal(t, task.PriorityHigh, tk.Priority)

	apply(t, sess, Do(ConfirmIntoEdit))
	apply(t, sess, keys("d", "d", "i", "Urgent")...)
	apply(t, sess, Do(CancelOneLevel), Do(CancelOneLevel))
	require.Equal(t, task.PriorityHigh, tk.Priority)
	require.Equal(t, []string{"High"}, sess.Snapshot().Editor.Lines, "buffer shows the kept value")
	require.Len(t, p.saves, 2)
}

func TestKeystrokesIgnoredInFieldsFocus(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("x").Build()
	sess, _ := newSession(t, s, Options{VimEnabled: false})

	apply(t, sess, Do(EditCurrentTask))
	apply(t, sess, keys("typed")...)
	require.Equal(t, []string{"x"}, sess.Snapshot().Editor.Lines)
}

func TestVimDisabledSingleCancelCommits(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("x").Build()
	sess, p := newSession(t, s, Options{VimEnabled: false})

	apply(t, sess, Do(EditCurrentTask), Do(ConfirmIntoEdit))
	apply(t, sess, keys("new ")...)
	apply(t, sess, Do(CancelOneLevel))
	require.Equal(t, FocusFields, sess.Snapshot().Focus)
	require.Equal(t, "new x", s.Tasks()[0].Title)
	require.Len(t, p.saves, 1)
}

func TestMoveSelectionWraps(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithTask("a", testutil.WithDue(testutil.Epoch.Add(time.Hour))).
		WithTask("b", testutil.WithDue(testutil.Epoch.Add(2*time.Hour))).
		WithTask("c", testutil.WithDue(testutil.Epoch.Add(3*time.Hour))).
		Build()
	sess, _ := newSession(t, s, Options{})

	apply(t, sess, Do(MoveSelectionUp))
	require.Equal(t, 2, sess.Selected())
	apply(t, sess, Do(MoveSelectionDown))
	require.Equal(t, 0, sess.Selected())
	apply(t, sess, Do(MoveSelectionDown))
	require.Equal(t, "b", sess.Current().Title)
}

func TestToggleDoneSortsAndSaves(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithTask("first", testutil.WithDue(testutil.Epoch.Add(time.Hour))).
		WithTask("second", testutil.WithDue(testutil.Epoch.Add(2*time.Hour))).
		Build()
	sess, p := newSession(t, s, Options{Policy: view.SeparateCompleted})

	apply(t, sess, Do(ToggleSelectedDone))
	require.Equal(t, []string{"second", "first"}, testutil.Titles(sess.View().Tasks()))
	require.Equal(t, []string{"second", "first"}, testutil.Titles(s.Tasks()))
	require.Len(t, p.saves, 1)
	require.True(t, p.saves[0].Tasks[1].Done)
}

func TestDeleteClampsSelection(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithTask("a", testutil.WithDue(testutil.Epoch.Add(time.Hour))).
		WithTask("b", testutil.WithDue(testutil.Epoch.Add(2*time.Hour))).
		Build()
	sess, p := newSession(t, s, Options{})

	apply(t, sess, Do(MoveSelectionDown), Do(DeleteSelectedTask))
	require.Equal(t, 0, sess.Selected())
	require.Equal(t, []string{"a"}, testutil.Titles(s.Tasks()))

	apply(t, sess, Do(DeleteSelectedTask))
	require.Equal(t, 0, sess.Selected())
	require.Empty(t, s.Tasks())
	require.Len(t, p.saves, 2)
}

func TestAddTaskFromCurrent(t *testing.T) {
	due := testutil.Epoch.Add(24 * time.Hour)
	s := testutil.NewBuilder(t).
		WithLabel("WORK", "Work", "Red").
		WithTask("standup", testutil.WithDue(due), testutil.WithLabel("WORK"),
			testutil.WithNotes("zoom"), testutil.WithPriority(task.PriorityHigh)).
		Build()
	sess, _ := newSession(t, s, Options{})

	apply(t, sess, Do(AddTaskFromCurrent))
	require.Equal(t, EditingTask, sess.State())
	clone := sess.Target()
	require.NotSame(t, s.Tasks()[0], clone)
	require.Equal(t, "standup", clone.Title)
	require.Equal(t, "zoom", clone.Notes)
	require.Equal(t, "WORK", clone.LabelCode)
	require.True(t, clone.Due.Equal(due))
	require.Equal(t, task.PriorityNone, clone.Priority)
	require.Len(t, s.Tasks(), 2)
}

func TestAddTaskFromCurrentOnEmptyView(t *testing.T) {
	sess, _ := newSession(t, store.New(), Options{})
	apply(t, sess, Do(AddTaskFromCurrent))
	require.Equal(t, EditingTask, sess.State())
	require.Empty(t, sess.Target().Title)
}

func TestEditLabelsReconciles(t *testing.T) {
	b := testutil.NewBuilder(t).
		WithLabel("PSNL", "Personal", "Blue").
		WithLabel("WORK", "Work", "Red").
		WithTask("deploy", testutil.WithLabel("WORK"))
	s := b.Build()
	sess, p := newSession(t, s, Options{VimEnabled: true})

	apply(t, sess, Do(CycleLabelFilter), Do(CycleLabelFilter))
	require.Equal(t, "WORK", sess.Snapshot().Filter)

	apply(t, sess, Do(EditLabels))
	require.Equal(t, EditingLabels, sess.State())
	require.Equal(t, []string{"PSNL Blue Personal", "WORK Red Work"}, sess.Snapshot().Editor.Lines)

	// Replace the WORK line with a TRIP line.
	apply(t, sess, keys("j", "d", "d", "o", "TRIP Blue Travel")...)
	apply(t, sess, Do(CancelOneLevel))
	require.Equal(t, EditingLabels, sess.State(), "first cancel leaves insert mode")

	apply(t, sess, Do(CancelOneLevel))
	require.Equal(t, MainView, sess.State())
	require.Nil(t, s.LabelByCode("WORK"))
	require.NotNil(t, s.LabelByCode("TRIP"))
	require.Empty(t, b.Task("deploy").LabelCode)
	require.Empty(t, sess.View().Filter(), "filter on removed label resets")
	require.Len(t, p.saves, 1)
	require.Len(t, p.saves[0].Labels, 2)
}

func TestSaveFailureIsReported(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("a").Build()
	sess, p := newSession(t, s, Options{})
	p.err = errors.New("read-only file system")

	err := sess.Apply(context.Background(), Do(ToggleSelectedDone))
	require.ErrorContains(t, err, "saving tasks")
	require.ErrorIs(t, err, p.err)
	require.True(t, s.Tasks()[0].Done, "mutation still applied")
}

func TestQuitOnlyFromMainView(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("a").Build()
	sess, _ := newSession(t, s, Options{})

	apply(t, sess, Do(EditCurrentTask), Do(Quit))
	require.False(t, sess.Quitting())

	apply(t, sess, Do(CancelOneLevel), Do(Quit))
	require.True(t, sess.Quitting())
}

func TestCopySelectedTitle(t *testing.T) {
	s := testutil.NewBuilder(t).WithTask("copy me").Build()
	cb := &shared.MockClipboard{}
	sess, _ := newSession(t, s, Options{Clipboard: cb})

	apply(t, sess, Do(CopySelectedTitle))
	require.Equal(t, "copy me", cb.Last)

	noClip, _ := newSession(t, s, Options{})
	require.ErrorIs(t, noClip.Apply(context.Background(), Do(CopySelectedTitle)), ErrNoClipboard)
}

func TestCyclePolicyRegenerates(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithTask("open").
		WithTask("closed", testutil.Done()).
		Build()
	sess, _ := newSession(t, s, Options{Policy: view.ShowAll})

	apply(t, sess, Do(CycleCompletionPolicy))
	require.Equal(t, view.HideCompleted, sess.Snapshot().Policy)
	require.Equal(t, []string{"open"}, testutil.Titles(sess.View().Tasks()))
}

func TestSnapshot(t *testing.T) {
	due := time.Date(2024, 12, 24, 18, 30, 0, 0, time.UTC)
	s := testutil.NewBuilder(t).
		WithLabel("FAM", "Family", "Green").
		WithTask("dinner", testutil.WithDue(due), testutil.WithLabel("FAM"),
			testutil.WithNotes("bring wine"), testutil.WithPriority(task.PriorityMedium)).
		WithTask("later").
		Build()
	sess, _ := newSession(t, s, Options{})

	snap := sess.Snapshot()
	require.Equal(t, MainView, snap.State)
	require.Nil(t, snap.Editor)
	require.Len(t, snap.Rows, 2)

	// Unscheduled sorts as now, before the December date.
	assert.Equal(t, "later", snap.Rows[0].Title)
	assert.True(t, snap.Rows[0].Selected)
	assert.Empty(t, snap.Rows[0].DueDate)

	row := snap.Rows[1]
	assert.False(t, row.Selected)
	assert.Equal(t, "24 Dec 2024", row.DueDate)
	assert.Equal(t, "18:30", row.DueTime)
	assert.Equal(t, "FAM", row.LabelCode)
	assert.Equal(t, task.NamedColor("Green"), row.LabelColor)
	assert.Equal(t, task.PriorityMedium, row.Priority)

	apply(t, sess, Do(MoveSelectionDown), Do(EditCurrentTask))
	snap = sess.Snapshot()
	require.Equal(t, "bring wine", snap.Notes)
	require.Len(t, snap.Fields, len(codec.Properties))
	require.Equal(t, "FAM", snap.Fields[1].Value)
	require.NotNil(t, snap.Editor)
	require.Equal(t, []string{"dinner"}, snap.Editor.Lines)
}

func TestReload(t *testing.T) {
	s := testutil.NewBuilder(t).
		WithTask("a", testutil.WithID("id-a"), testutil.WithDue(testutil.Epoch.Add(time.Hour))).
		WithTask("b", testutil.WithID("id-b"), testutil.WithDue(testutil.Epoch.Add(2*time.Hour))).
		Build()
	sess, _ := newSession(t, s, Options{})
	apply(t, sess, Do(MoveSelectionDown))

	reloaded := testutil.NewBuilder(t).
		WithTask("new", testutil.WithDue(testutil.Epoch.Add(-time.Hour))).
		WithTask("b", testutil.WithID("id-b"), testutil.WithDue(testutil.Epoch.Add(2*time.Hour))).
		Build()
	require.True(t, sess.Reload(reloaded))
	require.Same(t, reloaded, sess.Store())
	require.Equal(t, "b", sess.Current().Title)
	require.Equal(t, 1, sess.Selected())

	apply(t, sess, Do(EditCurrentTask))
	require.False(t, sess.Reload(store.New()), "reload is skipped while editing")
	require.Same(t, reloaded, sess.Store())
}
