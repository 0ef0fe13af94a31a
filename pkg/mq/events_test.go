package mq

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLikeEvent(t *testing.T) {
	a := NewLikeEvent("v1", "u1", ActionLike)
	b := NewLikeEvent("v1", "u1", ActionUnlike)

	assert.NotEmpty(t, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Equal(t, "like", a.ActionType)
	assert.Positive(t, a.Timestamp)
}

func TestCommentEventWireFormat(t *testing.T) {
	ev := NewCommentEvent("v1", "u2")
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &fields))
	for _, k := range []string{"event_id", "video_id", "user_id", "action_type", "timestamp"} {
		assert.Contains(t, fields, k)
	}
	assert.Equal(t, "create", fields["action_type"])
}
