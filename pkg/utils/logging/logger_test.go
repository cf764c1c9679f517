package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger_WritesJSONFile(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := InitLogger("test", false)
	require.NoError(t, err)

	logger.Debug("search finished", zap.Int("steps", 14))
	_ = logger.Sync()

	files, err := filepath.Glob(filepath.Join(logsDir, "test_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "search finished", entry["msg"])
	assert.Equal(t, float64(14), entry["steps"])
	assert.Contains(t, entry, "timestamp")
}
