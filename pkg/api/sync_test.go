package api

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncRequest_WireShape(t *testing.T) {
	resolveVersion := int64(5)
	req := SyncRequest{
		DeviceID:        "device-1",
		LastSyncAt:      1700000000000,
		ClientTimestamp: 1700000005000,
		ClientTimezone:  "Europe/Moscow",
		Changes: map[EntityType][]QueueItem{
			EntityGoals: {
				{
					ID:              "g1",
					Operation:       OpUpdate,
					Version:         3,
					ClientUpdatedAt: 1700000004000,
					Payload:         Entity{ID: "g1", Version: 3, Data: json.RawMessage(`{"title":"Run"}`)},
				},
			},
			EntityHabits: {
				{
					ID:                     "h1",
					Operation:              OpDelete,
					Version:                2,
					ClientUpdatedAt:        1700000004500,
					Payload:                Entity{ID: "h1", Version: 2},
					ResolveConflictVersion: &resolveVersion,
				},
			},
		},
	}

	data, err := json.MarshalIndent(req, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "sync_request", data)
}

func TestSyncResponse_DecodeMixedChanges(t *testing.T) {
	raw := `{
		"success": true,
		"conflicts": {},
		"lastSyncAt": 200,
		"serverTimestamp": 201,
		"changes": {
			"goals": [
				{"id": "g1", "_version": 4, "data": {"title": "Read"}},
				{"id": "g2", "deleted": true}
			]
		}
	}`

	var resp SyncResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, int64(200), resp.LastSyncAt)
	assert.Equal(t, 0, resp.ConflictCount())
	require.Equal(t, 2, resp.ChangeCount())

	upsert := resp.Changes[EntityGoals][0]
	assert.False(t, upsert.IsTombstone())
	e, ok := upsert.Entity()
	require.True(t, ok)
	assert.Equal(t, int64(4), e.Version)
	assert.JSONEq(t, `{"title":"Read"}`, string(e.Data))

	tomb := resp.Changes[EntityGoals][1]
	assert.True(t, tomb.IsTombstone())
	assert.Equal(t, "g2", tomb.ID())
	_, ok = tomb.Entity()
	assert.False(t, ok)
}

func TestChangeItem_TombstoneEncoding(t *testing.T) {
	data, err := json.Marshal(Tombstone("x1"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x1","deleted":true}`, string(data))

	var c ChangeItem
	err = json.Unmarshal([]byte(`{"deleted":true}`), &c)
	assert.Error(t, err)
}

func TestEntity_Stripped(t *testing.T) {
	e := Entity{ID: "g1", Version: 2, LocalUpdatedAt: 99, Data: json.RawMessage(`{"a":1}`)}

	s := e.Stripped()
	assert.Zero(t, s.LocalUpdatedAt)
	assert.Equal(t, e.Version, s.Version)

	// Копия не должна разделять буфер с оригиналом
	s.Data[2] = 'b'
	assert.Equal(t, `{"a":1}`, string(e.Data))
}

func TestQueueItem_ExpectedVersion(t *testing.T) {
	item := QueueItem{ID: "g1", Version: 3}
	assert.Equal(t, int64(3), item.ExpectedVersion())

	v := int64(7)
	item.ResolveConflictVersion = &v
	assert.Equal(t, int64(7), item.ExpectedVersion())

	clone := item.Clone()
	*clone.ResolveConflictVersion = 8
	assert.Equal(t, int64(7), *item.ResolveConflictVersion)
}

func TestParseEntityType(t *testing.T) {
	for _, et := range EntityTypes() {
		got, err := ParseEntityType(string(et))
		require.NoError(t, err)
		assert.Equal(t, et, got)
	}

	_, err := ParseEntityType("tasks")
	assert.Error(t, err)
}
