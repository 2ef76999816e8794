package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"standup-service/internal/events"
	"standup-service/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestStandupPostedEvent_Marshal(t *testing.T) {
	s := &model.Standup{ID: 100, CreatedByID: 7, CreatedAt: time.Now()}
	ev := events.NewStandupPostedEvent(s, []int64{1, 2})

	_, err := uuid.Parse(ev.EventID)
	require.NoError(t, err)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "standup.posted", decoded["event_type"])
	require.Equal(t, float64(100), decoded["standup_id"])
	require.Equal(t, float64(7), decoded["author_id"])
	require.Equal(t, []interface{}{float64(1), float64(2)}, decoded["team_ids"])
}

func TestMemberAddedEvent_Marshal(t *testing.T) {
	ev := events.NewMemberAddedEvent(3, 9, model.RoleMember)

	b, err := json.Marshal(ev)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	require.Equal(t, "team.member_added", decoded["event_type"])
	require.Equal(t, float64(3), decoded["team_id"])
	require.Equal(t, "member", decoded["role"])
	require.NotEmpty(t, decoded["event_id"])
}

func TestEventIDsAreUnique(t *testing.T) {
	a := events.NewMemberAddedEvent(1, 1, model.RoleMember)
	b := events.NewMemberAddedEvent(1, 1, model.RoleMember)
	require.NotEqual(t, a.EventID, b.EventID)
}
