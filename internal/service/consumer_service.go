package service

import (
	"context"
	"encoding/json"

	"task-tracking-be/internal/dto"
	"task-tracking-be/internal/entity"
	"task-tracking-be/internal/pkg/logger"
	"task-tracking-be/internal/repository/unitofwork"
	"task-tracking-be/pkg/events"
	pkgNats "task-tracking-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the lifecycle topic, persists each event as an
// audit row and forwards it to NATS when a publisher is configured.
// Everything here is best-effort: a failed audit write or forward is
// logged and the message is acked regardless, since the primary
// operation already committed.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	natsPub    *pkgNats.Publisher
	logger     logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	natsPub *pkgNats.Publisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		natsPub:    natsPub,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// Ack unconditionally: retrying cannot make a malformed message
	// valid, and audit persistence failures are non-fatal.
	defer msg.Ack()

	var envelope dto.LifecycleEventMessage
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal lifecycle message", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	payload, err := json.Marshal(envelope.Data)
	if err != nil {
		cs.logger.Error("Consumer", "Failed to marshal event payload", map[string]interface{}{
			"error": err.Error(),
			"type":  envelope.Type,
		})
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	event := &entity.LifecycleEvent{
		Id:         uuid.New(),
		UserId:     envelope.UserId,
		EntityType: envelope.EntityType,
		EntityId:   envelope.EntityId,
		EventType:  envelope.Type,
		Payload:    payload,
		CreatedAt:  envelope.OccurredAt,
	}
	if err := uow.LifecycleEventRepository().Create(ctx, event); err != nil {
		cs.logger.Error("Consumer", "Failed to persist lifecycle event", map[string]interface{}{
			"error": err.Error(),
			"type":  envelope.Type,
		})
	}

	if cs.natsPub != nil {
		fwd := events.LifecycleEvent{
			Type:       envelope.Type,
			UserId:     envelope.UserId,
			EntityType: envelope.EntityType,
			EntityId:   envelope.EntityId,
			Data:       envelope.Data,
			OccurredAt: envelope.OccurredAt,
		}
		if err := cs.natsPub.Publish(ctx, fwd); err != nil {
			cs.logger.Warn("Consumer", "Failed to forward event to NATS", map[string]interface{}{
				"error": err.Error(),
				"type":  envelope.Type,
			})
		}
	}
}
