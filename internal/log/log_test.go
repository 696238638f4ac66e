package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "speedmap.log")
	require.NoError(t, Init(true, p))
	t.Cleanup(func() { _ = Init(false, "") })

	Infow("file loaded", "records", 3)
	Debugf("selection %d", 1)
	Sync()

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "file loaded")
	assert.Contains(t, string(b), "selection 1")
}

func TestNoopByDefault(t *testing.T) {
	require.NoError(t, Init(false, ""))
	assert.NotPanics(t, func() {
		Errorf("nothing %s", "happens")
		Warnw("nothing", "k", "v")
		Sync()
	})
}
