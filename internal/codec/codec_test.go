package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
	"github.com/zjrosen/venom/internal/testutil"
)

func TestPropertyCycle(t *testing.T) {
	require.Equal(t, Label, Title.Next())
	require.Equal(t, Title, Priority.Next())
	require.Equal(t, Priority, Title.Prev())
	require.Equal(t, DueDate, Notes.Prev())

	p := Title
	for range Properties {
		p = p.Next()
	}
	require.Equal(t, Title, p)
}

func TestEncode(t *testing.T) {
	due := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)
	b := testutil.NewBuilder(t).
		WithLabel("AB", "Alpha", "Blue").
		WithTask("call mom",
			testutil.WithNotes("line one\nline two"),
			testutil.WithPriority(task.PriorityMedium),
			testutil.WithDue(due),
			testutil.WithLabel("AB")).
		WithTask("bare")
	c := New(b.Build())

	full := b.Task("call mom")
	assert.Equal(t, "call mom", c.Encode(full, Title))
	assert.Equal(t, "line one\nline two", c.Encode(full, Notes))
	assert.Equal(t, "Medium", c.Encode(full, Priority))
	assert.Equal(t, "05 Mar 2024 09:07", c.Encode(full, DueDate))
	assert.Equal(t, "AB", c.Encode(full, Label))

	bare := b.Task("bare")
	assert.Equal(t, " ", c.Encode(bare, DueDate))
	assert.Equal(t, "", c.Encode(bare, Label))
	assert.Equal(t, "None", c.Encode(bare, Priority))
}

func TestDecodeTextFields(t *testing.T) {
	c := New(testutil.NewBuilder(t).Build())
	tk := task.New()

	c.Decode(tk, Title, "  spaced  ")
	require.Equal(t, "  spaced  ", tk.Title)
	c.Decode(tk, Notes, "a\nb")
	require.Equal(t, "a\nb", tk.Notes)
	c.Decode(tk, Title, "")
	require.Empty(t, tk.Title)
}

func TestDecodePriority(t *testing.T) {
	c := New(testutil.NewBuilder(t).Build())
	tk := task.New()

	c.Decode(tk, Priority, "High")
	require.Equal(t, task.PriorityHigh, tk.Priority)

	c.Decode(tk, Priority, "Urgent")
	require.Equal(t, task.PriorityHigh, tk.Priority)

	fresh := task.New()
	c.Decode(fresh, Priority, "Urgent")
	require.Equal(t, task.PriorityNone, fresh.Priority)
	c.Decode(fresh, Priority, "low")
	require.Equal(t, task.PriorityNone, fresh.Priority)
}

func TestDecodeLabel(t *testing.T) {
	s := testutil.NewBuilder(t).WithLabel("WORK", "Work", "Red").Build()
	c := New(s)
	tk := task.New()

	c.Decode(tk, Label, "WORK\n")
	require.Equal(t, "WORK", tk.LabelCode)

	c.Decode(tk, Label, "NOPE")
	require.Empty(t, tk.LabelCode)

	c.Decode(tk, Label, "WORKS")
	require.Equal(t, "WORK", tk.LabelCode, "input is truncated to the code width")

	c.Decode(tk, Label, "")
	require.Empty(t, tk.LabelCode)
}

func TestDecodeDue(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	prev := time.Date(2024, time.May, 10, 14, 30, 0, 0, loc)

	tests := []struct {
		name string
		prev *time.Time
		text string
		want *time.Time
	}{
		{
			name: "full parse without previous",
			text: "01 Jan 2025 08:15",
			want: ptr(time.Date(2025, time.January, 1, 8, 15, 0, 0, time.UTC)),
		},
		{
			name: "full parse keeps previous zone",
			prev: &prev,
			text: "3 feb 2025 23:59",
			want: ptr(time.Date(2025, time.February, 3, 23, 59, 0, 0, loc)),
		},
		{
			name: "bad date falls back",
			prev: &prev,
			text: "xx Foo 2025 07:00",
			want: ptr(time.Date(2024, time.May, 10, 7, 0, 0, 0, loc)),
		},
		{
			name: "impossible day falls back",
			prev: &prev,
			text: "31 Feb 2025 07:00",
			want: ptr(time.Date(2024, time.May, 10, 7, 0, 0, 0, loc)),
		},
		{
			name: "bad clock falls back",
			prev: &prev,
			text: "20 Dec 2024 25:00",
			want: ptr(time.Date(2024, time.December, 20, 14, 30, 0, 0, loc)),
		},
		{
			name: "bad clock without previous leaves unset",
			text: "20 Dec 2024 noon",
			want: nil,
		},
		{
			name: "empty clears",
			prev: &prev,
			text: "  \n ",
			want: nil,
		},
		{
			name: "wrong token count keeps previous",
			prev: &prev,
			text: "20 Dec 2024",
			want: &prev,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(testutil.NewBuilder(t).Build())
			c.Location = time.UTC
			tk := task.New()
			tk.SetDue(tt.prev)

			c.Decode(tk, DueDate, tt.text)

			if tt.want == nil {
				require.Nil(t, tk.Due)
				return
			}
			require.NotNil(t, tk.Due)
			require.True(t, tt.want.Equal(*tk.Due), "got %v want %v", tk.Due, tt.want)
			require.Equal(t, tt.want.Location(), tk.Due.Location())
		})
	}
}

func TestDueRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		due := testutil.DueGen().Draw(t, "due")
		c := New(store.New())
		c.Location = time.UTC

		src := task.New()
		src.SetDue(due)
		dst := task.New()
		c.Decode(dst, DueDate, c.Encode(src, DueDate))

		if due == nil {
			if dst.Due != nil {
				t.Fatalf("expected unset, got %v", dst.Due)
			}
			return
		}
		if dst.Due == nil || !dst.Due.Equal(*due) {
			t.Fatalf("round trip %v -> %v", due, dst.Due)
		}
	})
}

func TestWrongTokenCountLeavesDueUntouched(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		due := testutil.DueGen().Draw(t, "due")
		n := rapid.SampledFrom([]int{1, 2, 3, 5, 6}).Draw(t, "tokens")
		words := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z0-9:]{1,5}`), n, n).Draw(t, "words")

		tk := task.New()
		tk.SetDue(due)
		before := tk.Due

		c := New(store.New())
		text := ""
		for i, w := range words {
			if i > 0 {
				text += " "
			}
			text += w
		}
		c.Decode(tk, DueDate, text)

		if tk.Due != before {
			t.Fatalf("due pointer changed for %q", text)
		}
	})
}

func ptr(t time.Time) *time.Time { return &t }
