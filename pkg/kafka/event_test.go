package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_MarshalRoundTrip(t *testing.T) {
	evt, err := NewEvent(Topic("product", "updated"), "p-1", "product", "catalog", map[string]string{"name": "iPad Air"})
	require.NoError(t, err)

	raw, err := evt.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, "catalog.product.updated", decoded.EventType)
	assert.Equal(t, "p-1", decoded.AggregateID)
	assert.Equal(t, evt.EventID, decoded.EventID)

	var data map[string]string
	require.NoError(t, decoded.UnmarshalData(&data))
	assert.Equal(t, "iPad Air", data["name"])
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("not json"))
	assert.Error(t, err)
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "catalog.product.deleted", Topic("product", "deleted"))
}
