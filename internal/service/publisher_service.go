package service

import (
	"context"
	"encoding/json"

	"task-tracking-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, msg *dto.LifecycleEventMessage) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (s *publisherService) Publish(ctx context.Context, msg *dto.LifecycleEventMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), payload))
}
