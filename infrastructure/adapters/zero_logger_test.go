package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologWrapperEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	wrapper := &zerologWrapper{logger: zerolog.New(&buf)}

	wrapper.InfoWithFields("Generated script variations", map[string]interface{}{
		"link_id": "link-1",
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "link-1", entry["link_id"])
	assert.Equal(t, "Generated script variations", entry["message"])
}

func TestZerologWrapperEmitsError(t *testing.T) {
	var buf bytes.Buffer
	wrapper := &zerologWrapper{logger: zerolog.New(&buf)}

	wrapper.Error(fmt.Errorf("upstream exploded"), "Synthesis failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "upstream exploded", entry["error"])
}

func TestZerologWrapperLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	wrapper := &zerologWrapper{logger: zerolog.New(&buf).Level(zerolog.InfoLevel)}

	wrapper.DebugWithFields("Saved audio artifact", map[string]interface{}{"path": "x"})
	assert.Empty(t, buf.Bytes(), "debug is below the configured level")
}
