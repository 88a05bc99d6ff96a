package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	tests := []struct {
		name   string
		level  Level
		fields []any
		want   string
	}{
		{
			name:  "no fields",
			level: LevelInfo,
			want:  "2025-12-06T10:45:00 [INFO] [store] saved\n",
		},
		{
			name:   "pairs",
			level:  LevelWarn,
			fields: []any{"tasks", 3, "labels", 1},
			want:   "2025-12-06T10:45:00 [WARN] [store] saved tasks=3 labels=1\n",
		},
		{
			name:   "orphan key",
			level:  LevelDebug,
			fields: []any{"tasks", 3, "labels"},
			want:   "2025-12-06T10:45:00 [DEBUG] [store] saved tasks=3 labels=<missing>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, format(ts, tt.level, CatStore, "saved", tt.fields...))
		})
	}
}

func TestMinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	SetMinLevel(LevelWarn)
	Info(CatView, "hidden")
	ErrorErr(CatStorage, "write failed", errors.New("disk full"), "path", "/tmp/x")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[ERROR] [storage] write failed path=/tmp/x error=disk full")

	buf.Reset()
	SetEnabled(false)
	Error(CatStorage, "muted")
	require.Empty(t, buf.String())
}

func TestNoLoggerIsNoop(t *testing.T) {
	SetOutput(nil)
	require.NotPanics(t, func() {
		Debug(CatSession, "nothing")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
}
