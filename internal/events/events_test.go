package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	raw := Encode("req-1", TypeExportDone, ExportDone{Jobs: 3, Filename: "linkedin_jobs.csv"})

	var e Event
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	assert.Equal(t, TypeExportDone, e.Type)
	assert.Equal(t, "req-1", e.RequestID)
	assert.False(t, e.At.IsZero())

	var d ExportDone
	require.NoError(t, json.Unmarshal(e.Data, &d))
	assert.Equal(t, 3, d.Jobs)
}

func TestEncode_NoData(t *testing.T) {
	assert.NotContains(t, Encode("", TypePing, nil), `"data"`)
}

func TestHub_PublishSubscribe(t *testing.T) {
	h := NewHub()
	a, b := h.Subscribe(), h.Subscribe()
	assert.Equal(t, 2, h.Len())

	h.Publish("x")
	assert.Equal(t, "x", <-a)
	assert.Equal(t, "x", <-b)

	h.Unsubscribe(a)
	h.Unsubscribe(a)
	assert.Equal(t, 1, h.Len())
	_, open := <-a
	assert.False(t, open)
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	for i := 0; i < 100; i++ {
		h.Publish("e")
	}
	assert.Len(t, ch, cap(ch))
}
