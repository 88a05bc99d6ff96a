package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShowAndDismiss(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())

	m, cmd := m.Show("saving tasks: disk full", StyleError, time.Millisecond)
	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	require.Contains(t, m.View(), "saving tasks: disk full")
	require.Contains(t, m.View(), "✗")
	require.Contains(t, m.View(), "╭")

	m = m.Update(cmd())
	require.False(t, m.Visible())
}

func TestStaleDismissKeepsNewerToast(t *testing.T) {
	m, first := New().Show("first", StyleInfo, time.Millisecond)
	m, _ = m.Show("second", StyleSuccess, time.Hour)

	m = m.Update(first())
	require.True(t, m.Visible())
	require.Equal(t, "second", m.Message())
}

func TestStyles(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "i"},
		{StyleWarn, "!"},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style, time.Second)
		require.Contains(t, m.View(), tt.icon+" msg")
	}
}

func TestOverlay(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)

	require.Equal(t, bg, New().Overlay(bg, 30, 10))

	m, _ := New().Show("saved", StyleSuccess, time.Second)
	out := m.Overlay(bg, 30, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	require.Contains(t, lines[7], "saved", "three line toast sits one line above the bottom")
}
