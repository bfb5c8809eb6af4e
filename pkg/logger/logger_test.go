package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	l, ok := New("debug").(*logrus.Logger)
	require.True(t, ok)
	require.Equal(t, logrus.DebugLevel, l.GetLevel())

	l = New("nonsense").(*logrus.Logger)
	require.Equal(t, logrus.InfoLevel, l.GetLevel())
}
