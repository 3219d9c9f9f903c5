package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lockuplabs/token-lockup-service/internal/config"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	ClaimSettledEventType    = "claim_settled"
	ScheduleUpdatedEventType = "schedule_updated"

	publishTimeout = 5 * time.Second
)

// AssetAmount is the released amount of one asset inside a settlement event.
type AssetAmount struct {
	Asset  string `json:"asset"`
	Amount string `json:"amount"`
}

type ClaimSettledEvent struct {
	EventID  string        `json:"event_id"`
	LockupID string        `json:"lockup_id"`
	Variant  string        `json:"variant"`
	Owner    string        `json:"owner"`
	Amounts  []AssetAmount `json:"amounts"`
}

type ScheduleUpdatedEvent struct {
	EventID  string `json:"event_id"`
	LockupID string `json:"lockup_id"`
	Unlocks  int    `json:"unlocks"`
}

// QueueManager publishes settlement events to a RabbitMQ topic exchange.
// Events are observability, not correctness: publish failures are reported to
// the caller for logging but never abort a settlement.
type QueueManager struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	amqpURI := fmt.Sprintf("amqp://%s:%s@%s", cfg.User, cfg.Password, cfg.Url)
	conn, err := amqp.Dial(amqpURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	if err := channel.ExchangeDeclare(
		cfg.Exchange, "topic", true, false, false, false, nil,
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &QueueManager{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
	}, nil
}

func (qm *QueueManager) PublishClaimSettled(ctx context.Context, event *ClaimSettledEvent) error {
	event.EventID = uuid.New().String()
	return qm.publish(ctx, ClaimSettledEventType, event)
}

func (qm *QueueManager) PublishScheduleUpdated(ctx context.Context, event *ScheduleUpdatedEvent) error {
	event.EventID = uuid.New().String()
	return qm.publish(ctx, ScheduleUpdatedEventType, event)
}

func (qm *QueueManager) publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", routingKey, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return qm.channel.PublishWithContext(ctx, qm.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.New().String(),
		Timestamp:    time.Now(),
		Body:         body,
	})
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")
	if err := qm.channel.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close rabbitmq channel")
	}
	if err := qm.conn.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close rabbitmq connection")
	}
}
