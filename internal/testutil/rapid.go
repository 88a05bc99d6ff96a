package testutil

import (
	"fmt"
	"time"

	"pgregory.net/rapid"

	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/task"
)

var colorNames = []string{"Blue", "Red", "Green", "Yellow", "Magenta", "Cyan", "Gray", "White"}

// CodeGen draws label codes of one to four upper case letters.
func CodeGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Z]{1,4}`)
}

// ColorGen draws named or RGB colors.
func ColorGen() *rapid.Generator[task.Color] {
	return rapid.Custom(func(t *rapid.T) task.Color {
		if rapid.Bool().Draw(t, "rgb") {
			return task.RGBColor(
				rapid.Uint8().Draw(t, "r"),
				rapid.Uint8().Draw(t, "g"),
				rapid.Uint8().Draw(t, "b"),
			)
		}
		return task.NamedColor(rapid.SampledFrom(colorNames).Draw(t, "color"))
	})
}

// LabelNameGen draws single-spaced label names.
func LabelNameGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[A-Za-z]{1,8}( [A-Za-z]{1,8}){0,2}`)
}

// DueGen draws an optional due date on whole minutes around Epoch.
func DueGen() *rapid.Generator[*time.Time] {
	return rapid.Custom(func(t *rapid.T) *time.Time {
		if !rapid.Bool().Draw(t, "has_due") {
			return nil
		}
		d := Epoch.Add(time.Duration(rapid.IntRange(-60*24*90, 60*24*90).Draw(t, "minutes")) * time.Minute)
		return &d
	})
}

// StoreGen draws a store with unique label codes and tasks that reference
// those labels.
func StoreGen() *rapid.Generator[*store.Store] {
	return rapid.Custom(func(t *rapid.T) *store.Store {
		s := store.New()
		codes := rapid.SliceOfNDistinct(CodeGen(), 0, 5, task.NormalizeCode).Draw(t, "codes")
		for _, c := range codes {
			s.AddLabel(task.NewLabel(c, LabelNameGen().Draw(t, "name"), ColorGen().Draw(t, "color")))
		}

		n := rapid.IntRange(0, 12).Draw(t, "tasks")
		for i := 0; i < n; i++ {
			tk := task.New()
			tk.Title = fmt.Sprintf("task %d", i)
			tk.Done = rapid.Bool().Draw(t, "done")
			tk.Priority = rapid.SampledFrom(task.Priorities).Draw(t, "priority")
			tk.SetDue(DueGen().Draw(t, "due"))
			if len(codes) > 0 && rapid.Bool().Draw(t, "labelled") {
				tk.LabelCode = task.NormalizeCode(rapid.SampledFrom(codes).Draw(t, "label"))
			}
			s.AddTask(tk)
		}
		return s
	})
}
