package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKratosAdapter(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&CustomFormatter{})
	l.SetLevel(logrus.InfoLevel)

	logger := klog.With(NewLogger(l), "caller", "report.go:42")
	h := klog.NewHelper(logger)

	h.Infow("msg", "report saved", "owner", 3, "month", "2024-12")
	out := buf.String()
	assert.Contains(t, out, "[INFO] [report.go:42] report saved")
	assert.Contains(t, out, "month=2024-12 owner=3")

	buf.Reset()
	h.Debug("hidden")
	assert.Empty(t, buf.String())

	h.Warnf("fallback: %s", "timeout")
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "fallback: timeout")
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, cleanup, err := New("debug", path)
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	l.Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	l, cleanup, err := New("loud", "")
	require.NoError(t, err)
	defer cleanup()
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
