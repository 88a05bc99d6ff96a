package shared

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	var c Clock = FixedClock{T: at}
	require.Equal(t, at, c.Now())
}

func TestMockClipboard(t *testing.T) {
	cb := &MockClipboard{}
	require.NoError(t, cb.Copy("buy milk"))
	require.Equal(t, "buy milk", cb.Last)

	cb.Err = errors.New("no display")
	require.Error(t, cb.Copy("other"))
	require.Equal(t, "buy milk", cb.Last)
}
