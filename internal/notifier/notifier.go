// Package notifier turns standup and team events into push notifications.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"standup-service/internal/config"
	"standup-service/internal/events"

	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

type MemberLister interface {
	ListMemberIDs(ctx context.Context, teamIDs []int64) ([]int64, error)
}

type DeviceTokenLister interface {
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]string, error)
}

// Pusher is satisfied by *apns2.Client.
type Pusher interface {
	Push(n *apns2.Notification) (*apns2.Response, error)
}

type Notifier struct {
	members MemberLister
	devices DeviceTokenLister
	pusher  Pusher
	topic   string
	logger  *slog.Logger
}

// New returns a Notifier. A nil pusher runs it in mock mode, where pushes are
// only logged.
func New(members MemberLister, devices DeviceTokenLister, pusher Pusher, topic string, logger *slog.Logger) *Notifier {
	return &Notifier{
		members: members,
		devices: devices,
		pusher:  pusher,
		topic:   topic,
		logger:  logger,
	}
}

// NewAPNsClient builds a token-based APNs client, or returns nil when the
// credentials are not configured.
func NewAPNsClient(cfg config.APNsConfig) (*apns2.Client, error) {
	if cfg.MockPush() {
		return nil, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("read APNs auth key: %w", err)
	}

	authToken := &token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	}

	if cfg.Production {
		return apns2.NewTokenClient(authToken).Production(), nil
	}
	return apns2.NewTokenClient(authToken).Development(), nil
}

// HandleStandupPosted notifies every member of the standup's teams except its
// author. Lookup errors are returned so the message is retried; individual
// push failures are only logged.
func (n *Notifier) HandleStandupPosted(ctx context.Context, data []byte) error {
	var event events.StandupPostedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		n.logger.ErrorContext(ctx, "Error unmarshalling event", "subject", events.SubjectStandupPosted, "error", err)
		return nil
	}

	n.logger.InfoContext(ctx, "Event received",
		"event_id", event.EventID, "standup_id", event.StandupID, "author_id", event.AuthorID)

	memberIDs, err := n.members.ListMemberIDs(ctx, event.TeamIDs)
	if err != nil {
		return fmt.Errorf("list members of teams %v: %w", event.TeamIDs, err)
	}

	recipients := make([]int64, 0, len(memberIDs))
	for _, id := range memberIDs {
		if id != event.AuthorID {
			recipients = append(recipients, id)
		}
	}

	p := payload.NewPayload().
		AlertTitle("New standup").
		AlertBody("A teammate posted their standup.").
		Sound("default").
		Custom("standup_id", event.StandupID)

	return n.notify(ctx, recipients, p)
}

// HandleMemberAdded tells the added user about their new team.
func (n *Notifier) HandleMemberAdded(ctx context.Context, data []byte) error {
	var event events.MemberAddedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		n.logger.ErrorContext(ctx, "Error unmarshalling event", "subject", events.SubjectMemberAdded, "error", err)
		return nil
	}

	p := payload.NewPayload().
		AlertTitle("New team").
		AlertBody(fmt.Sprintf("You were added to a team as %s.", event.Role)).
		Sound("default").
		Custom("team_id", event.TeamID)

	return n.notify(ctx, []int64{event.UserID}, p)
}

func (n *Notifier) notify(ctx context.Context, userIDs []int64, p *payload.Payload) error {
	if len(userIDs) == 0 {
		n.logger.InfoContext(ctx, "No recipients, no notifications sent")
		return nil
	}

	tokens, err := n.devices.ListByUserIDs(ctx, userIDs)
	if err != nil {
		return fmt.Errorf("list device tokens: %w", err)
	}

	if len(tokens) == 0 {
		n.logger.InfoContext(ctx, "No device tokens found, no notifications sent", "recipients", len(userIDs))
		return nil
	}

	for _, deviceToken := range tokens {
		notification := &apns2.Notification{
			DeviceToken: deviceToken,
			Topic:       n.topic,
			Payload:     p,
		}

		if n.pusher == nil {
			n.logger.InfoContext(ctx, "Push notification sent (mock)", "device_token", deviceToken)
			continue
		}

		res, err := n.pusher.Push(notification)
		switch {
		case err != nil:
			n.logger.ErrorContext(ctx, "Failed to send notification", "device_token", deviceToken, "error", err)
		case res.Sent():
			n.logger.InfoContext(ctx, "Notification sent", "apns_id", res.ApnsID)
		default:
			n.logger.WarnContext(ctx, "Notification not sent", "device_token", deviceToken, "reason", res.Reason)
		}
	}

	return nil
}
