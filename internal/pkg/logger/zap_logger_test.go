package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		out = append(out, line)
	}
	return out
}

func TestIsolatedLogger_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notification.log")
	l := NewIsolatedLogger(path)

	l.Debug("NOTIFY", "dropped below info", nil)
	l.Info("NOTIFY", "email sent", map[string]interface{}{"event": "request.created"})
	l.Error("NOTIFY", "email failed", map[string]interface{}{"error": errors.New("dial tcp: refused")})
	require.NoError(t, l.Sync())

	lines := readLines(t, path)
	require.Len(t, lines, 2)

	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "NOTIFY", lines[0]["module"])
	assert.Equal(t, "email sent", lines[0]["message"])

	assert.Equal(t, "ERROR", lines[1]["level"])
	details, ok := lines[1]["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dial tcp: refused", details["error"])
	assert.Equal(t, "dial tcp: refused", lines[1]["error"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Warn("X", "nothing", map[string]interface{}{"k": 1})
	assert.NoError(t, l.Sync())
}
