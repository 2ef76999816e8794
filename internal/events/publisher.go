package events

import (
	"encoding/json"
	"log/slog"
	"time"

	"standup-service/internal/model"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectStandupPosted = "standup.posted"
	SubjectMemberAdded   = "team.member_added"
)

type EventPublisher interface {
	PublishStandupPosted(standup *model.Standup, teamIDs []int64) error
	PublishMemberAdded(teamID, userID int64, role string) error
}

type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(natsURL string) (*NatsPublisher, error) {
	nc, err := nats.Connect(natsURL, nats.Name("standup-service publisher"))

	if err != nil {
		return nil, err
	}

	return &NatsPublisher{conn: nc}, nil
}

func (p *NatsPublisher) Close() {
	p.conn.Close()
}

type StandupPostedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	StandupID int64     `json:"standup_id"`
	AuthorID  int64     `json:"author_id"`
	TeamIDs   []int64   `json:"team_ids"`
	PostedAt  time.Time `json:"posted_at"`
}

type MemberAddedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	TeamID    int64     `json:"team_id"`
	UserID    int64     `json:"user_id"`
	Role      string    `json:"role"`
	AddedAt   time.Time `json:"added_at"`
}

func NewStandupPostedEvent(standup *model.Standup, teamIDs []int64) StandupPostedEvent {
	return StandupPostedEvent{
		EventID:   uuid.NewString(),
		EventType: SubjectStandupPosted,
		StandupID: standup.ID,
		AuthorID:  standup.CreatedByID,
		TeamIDs:   teamIDs,
		PostedAt:  standup.CreatedAt,
	}
}

func NewMemberAddedEvent(teamID, userID int64, role string) MemberAddedEvent {
	return MemberAddedEvent{
		EventID:   uuid.NewString(),
		EventType: SubjectMemberAdded,
		TeamID:    teamID,
		UserID:    userID,
		Role:      role,
		AddedAt:   time.Now().UTC(),
	}
}

func (p *NatsPublisher) PublishStandupPosted(standup *model.Standup, teamIDs []int64) error {
	return p.publish(SubjectStandupPosted, NewStandupPostedEvent(standup, teamIDs))
}

func (p *NatsPublisher) PublishMemberAdded(teamID, userID int64, role string) error {
	return p.publish(SubjectMemberAdded, NewMemberAddedEvent(teamID, userID, role))
}

func (p *NatsPublisher) publish(subject string, event interface{}) error {
	eventJSON, err := json.Marshal(event)

	if err != nil {
		slog.Error("Error marshalling event JSON", "subject", subject, "error", err)
		return err
	}

	if err := p.conn.Publish(subject, eventJSON); err != nil {
		slog.Error("Error publishing to NATS", "subject", subject, "error", err)
		return err
	}

	slog.Info("Published event to NATS", "subject", subject)

	return nil
}
