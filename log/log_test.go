package log_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kelly-lin/bevyml/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("levels", func(t *testing.T) {
		assert := assert.New(t)
		buf := bytes.NewBuffer(nil)
		logger := log.New(buf, false)

		logger.Infof("parsed %d roots", 2)
		logger.Warnf("unsupported style property '%s'", "float")
		logger.Errorf("boom")
		logger.Debugf("hidden")

		got := buf.String()
		assert.Contains(got, "[INFO]")
		assert.Contains(got, "parsed 2 roots")
		assert.Contains(got, "[WARN]")
		assert.Contains(got, "unsupported style property 'float'")
		assert.Contains(got, "[ERROR]")
		assert.NotContains(got, "hidden")
	})

	t.Run("debug and dump", func(t *testing.T) {
		assert := assert.New(t)
		buf := bytes.NewBuffer(nil)
		logger := log.New(buf, true)

		logger.Debugf("visible")
		logger.Dump(struct{ Name string }{Name: "div"})

		got := buf.String()
		assert.Contains(got, "visible")
		assert.Contains(got, `Name: (string) (len=3) "div"`)
	})

	t.Run("nil logger", func(t *testing.T) {
		var logger *log.Logger
		assert.NotPanics(t, func() {
			logger.Infof("nothing")
			logger.Debugf("nothing")
			logger.Dump(1)
		})
		assert.False(t, logger.DebugEnabled())
	})
}

func TestSetupFile(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		assert := assert.New(t)
		path := filepath.Join(t.TempDir(), "bevyml.log")
		logger, cleanUp, err := log.SetupFile(path, false)
		assert.NoError(err)
		defer cleanUp()
		logger.Infof("ignored")
		_, err = os.Stat(path)
		assert.True(os.IsNotExist(err))
	})

	t.Run("enabled", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bevyml.log")
		logger, cleanUp, err := log.SetupFile(path, true)
		require.NoError(t, err)
		logger.Infof("written")
		cleanUp()

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "written")
	})
}
