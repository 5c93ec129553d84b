package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_Level(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newLogger(WARNING, "text", buf)

	l.Infof("quest %s started", "social-1")
	require.Empty(t, buf.String())

	l.Warnf("quest %s failed verification", "social-1")
	require.Contains(t, buf.String(), "quest social-1 failed verification")
	require.Contains(t, buf.String(), "level=WARN")
}

func TestLogger_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := newLogger(DEBUG, "json", buf)

	l.Debugf("granted %d xp", 250)
	require.Contains(t, buf.String(), `"msg":"granted 250 xp"`)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("debug"))
	require.Equal(t, WARNING, ParseLevel("WARN"))
	require.Equal(t, ERROR, ParseLevel("error"))
	require.Equal(t, INFO, ParseLevel(""))
}
