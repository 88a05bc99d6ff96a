package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/venom/internal/task"
)

func TestApplyTheme_Override(t *testing.T) {
	prev := PriorityHighColor
	t.Cleanup(func() {
		PriorityHighColor = prev
		rebuildStyles()
	})

	require.NoError(t, ApplyTheme(map[string]string{"priority.high": "#00FF00"}))
	require.Equal(t, "#00FF00", PriorityHighColor.Dark)
	require.Equal(t, "#00FF00", PriorityHighColor.Light)
}

func TestApplyTheme_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		colors  map[string]string
		wantErr string
	}{
		{"unknown token", map[string]string{"issue.status.open": "#FFFFFF"}, "unknown color token"},
		{"not hex", map[string]string{"priority.low": "green"}, "invalid hex color"},
		{"bad length", map[string]string{"priority.low": "#12345"}, "invalid hex color"},
		{"bad digits", map[string]string{"priority.low": "#GGGGGG"}, "invalid hex color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := PriorityLowColor
			err := ApplyTheme(tt.colors)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
			require.Equal(t, before, PriorityLowColor, "nothing applied on error")
		})
	}
}

func TestEveryTokenHasTarget(t *testing.T) {
	for _, tok := range AllTokens {
		require.NotNil(t, tokenTarget(tok), "token %s", tok)
	}
}

func TestLabelStyle(t *testing.T) {
	labelStyles.Flush()

	red := LabelStyle(task.NamedColor("Red"))
	require.Equal(t, lipgloss.Color("1"), red.GetForeground())

	rgb := LabelStyle(task.RGBColor(0x12, 0x34, 0x56))
	require.Equal(t, lipgloss.Color("#123456"), rgb.GetForeground())

	unknown := LabelStyle(task.NamedColor("Chartreuse"))
	require.Equal(t, lipgloss.NoColor{}, unknown.GetForeground())

	require.Equal(t, 3, labelStyles.Len())
	LabelStyle(task.NamedColor("Red"))
	require.Equal(t, 3, labelStyles.Len(), "second lookup is cached")

	none := LabelStyle(task.Color{})
	require.Equal(t, lipgloss.NoColor{}, none.GetForeground())
	require.Equal(t, 3, labelStyles.Len(), "unset colors are not cached")
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "hello", TruncateString("hello", 5))
	require.Equal(t, "hel…", TruncateString("hello", 4))
	require.Equal(t, "", TruncateString("hello", 0))
	require.LessOrEqual(t, ansi.StringWidth(TruncateString("日本語テキスト", 4)), 4)
}

func TestPadRight(t *testing.T) {
	require.Equal(t, "ab  ", PadRight("ab", 4))
	require.Equal(t, "abc…", PadRight("abcdef", 4))
}

func TestPanel(t *testing.T) {
	out := Panel{Title: "Tasks", Width: 20, Height: 4}.Render("one\ntwo\nthree")
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		require.Equal(t, 20, lipgloss.Width(l))
	}
	require.Contains(t, ansi.Strip(lines[0]), "Tasks")
	require.Contains(t, ansi.Strip(lines[1]), "one")
	require.Contains(t, ansi.Strip(lines[2]), "two")
	require.NotContains(t, out, "three", "content beyond the inner height is clipped")
}
