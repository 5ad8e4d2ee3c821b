package logger

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupParsesLevel(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	w := Setup(filepath.Join(t.TempDir(), "app.log"), "debug")
	require.NotNil(t, w)
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	Setup(filepath.Join(t.TempDir(), "app.log"), "nonsense")
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
