package state

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteractionLog_Record(t *testing.T) {
	t.Run("writes one JSON line per record", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewInteractionLog(&buf)

		require.NoError(t, l.Record(InteractionRecord{
			InteractionType: "auto_answer",
			ThreadKey:       "thread-1",
			Question:        "How do I deploy?",
			Answered:        true,
			TopScore:        0.91,
			ChunkIDs:        []string{"faq.md#L1"},
		}))
		require.NoError(t, l.Record(InteractionRecord{
			InteractionType: "auto_answer",
			Question:        "What is the VPN?",
			Answered:        false,
			Reason:          "below_absolute_threshold",
		}))

		scanner := bufio.NewScanner(&buf)
		var lines []InteractionRecord
		for scanner.Scan() {
			var rec InteractionRecord
			require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
			lines = append(lines, rec)
		}
		require.Len(t, lines, 2)
		assert.Equal(t, "thread-1", lines[0].ThreadKey)
		assert.True(t, lines[0].Answered)
		assert.Equal(t, "below_absolute_threshold", lines[1].Reason)
	})

	t.Run("fills a zero timestamp", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewInteractionLog(&buf)

		require.NoError(t, l.Record(InteractionRecord{InteractionType: "auto_answer", Question: "q"}))

		var rec InteractionRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.False(t, rec.Timestamp.IsZero())
	})

	t.Run("keeps an explicit timestamp", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewInteractionLog(&buf)
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, l.Record(InteractionRecord{Timestamp: at, InteractionType: "auto_answer", Question: "q"}))

		var rec InteractionRecord
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.True(t, rec.Timestamp.Equal(at))
	})
}

func TestOpenInteractionLog(t *testing.T) {
	t.Run("appends across reopens", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "interactions.jsonl")

		l, err := OpenInteractionLog(path)
		require.NoError(t, err)
		require.NoError(t, l.Record(InteractionRecord{InteractionType: "auto_answer", Question: "first"}))
		require.NoError(t, l.Close())

		l, err = OpenInteractionLog(path)
		require.NoError(t, err)
		require.NoError(t, l.Record(InteractionRecord{InteractionType: "auto_answer", Question: "second"}))
		require.NoError(t, l.Close())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, bytes.Count(data, []byte{'\n'}))
		assert.Contains(t, string(data), "first")
		assert.Contains(t, string(data), "second")
	})
}
