package services

import (
	"encoding/json"

	"passkey_auth_ms/dtos/request"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// IEventService publishes authentication audit events. Publishing is best
// effort; a broker failure never fails the ceremony that triggered it.
type IEventService interface {
	PublishUserRegistered(event *request.UserRegisteredEvent) error
	PublishPasskeyRegistered(event *request.PasskeyRegisteredEvent) error
	PublishPasskeyLogin(event *request.PasskeyLoginEvent) error
}

type EventService struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

func NewEventService(producer sarama.SyncProducer, topic string, logger *zap.Logger) IEventService {
	return &EventService{producer: producer, topic: topic, logger: logger}
}

func (s *EventService) PublishUserRegistered(event *request.UserRegisteredEvent) error {
	return s.publish("UserRegisteredEvent", event)
}

func (s *EventService) PublishPasskeyRegistered(event *request.PasskeyRegisteredEvent) error {
	return s.publish("PasskeyRegisteredEvent", event)
}

func (s *EventService) PublishPasskeyLogin(event *request.PasskeyLoginEvent) error {
	return s.publish("PasskeyLoginEvent", event)
}

func (s *EventService) publish(key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return err
	}
	s.logger.Debug("audit event published",
		zap.String("key", key),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset))
	return nil
}
