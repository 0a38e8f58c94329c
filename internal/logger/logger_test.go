package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("info", "json", &buf)
	t.Cleanup(func() { Initialize("info", "text") })

	Debug("hidden")
	HTTPRequest("GET", "/api/events/", 200, 5*time.Millisecond)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "/api/events/", rec["path"])
	assert.EqualValues(t, 200, rec["status"])
}

func TestDatabaseResult_ErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	InitializeWithWriter("error", "text", &buf)
	t.Cleanup(func() { Initialize("info", "text") })

	DatabaseResult("insert", 0, nil)
	assert.Empty(t, buf.String())

	DatabaseResult("insert", 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("Debug").String())
	assert.Equal(t, "WARN", parseLevel("warning").String())
	assert.Equal(t, "INFO", parseLevel("nonsense").String())
}
