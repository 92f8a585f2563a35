package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/thirdevent/gatekeeper/ports"
)

const (
	LoginTopic         = "gatekeeper.login"
	LogoutTopic        = "gatekeeper.logout"
	AuthorizationTopic = "gatekeeper.authorization"
)

// LoginEvent is published after every successful login.
type LoginEvent struct {
	Address string    `json:"address"`
	UserID  string    `json:"user_id"`
	At      time.Time `json:"at"`
}

// LogoutEvent is published when a session is signed out.
type LogoutEvent struct {
	Address string    `json:"address"`
	TokenID string    `json:"token_id"`
	At      time.Time `json:"at"`
}

// AuthorizationEvent is published for every issued mint/claim signature, so
// repeat issuance of the same scope digest is observable across instances.
type AuthorizationEvent struct {
	Address string    `json:"address"`
	Digest  string    `json:"digest"`
	At      time.Time `json:"at"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{publisher: publisher}
}

func (p *WatermillPublisher) PublishLogin(ctx context.Context, address, userID string) error {
	return p.publish(LoginTopic, LoginEvent{Address: address, UserID: userID, At: time.Now()})
}

func (p *WatermillPublisher) PublishLogout(ctx context.Context, address, tokenID string) error {
	return p.publish(LogoutTopic, LogoutEvent{Address: address, TokenID: tokenID, At: time.Now()})
}

func (p *WatermillPublisher) PublishAuthorization(ctx context.Context, address, digest string) error {
	return p.publish(AuthorizationTopic, AuthorizationEvent{Address: address, Digest: digest, At: time.Now()})
}

func (p *WatermillPublisher) publish(topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
