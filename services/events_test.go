package services

import (
	"testing"
	"time"

	"passkey_auth_ms/dtos/request"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestPublishPasskeyLogin(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndSucceed()

	events := NewEventService(producer, "auth-events", zap.NewNop())
	err := events.PublishPasskeyLogin(&request.PasskeyLoginEvent{
		UserId:       "u1",
		CredentialId: "cred",
		SignCount:    7,
		At:           time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, producer.Close())
}

func TestPublishBrokerFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	events := NewEventService(producer, "auth-events", zap.NewNop())
	err := events.PublishUserRegistered(&request.UserRegisteredEvent{
		UserId: "u1",
		Email:  "alice@example.com",
		Method: "password",
		At:     time.Now(),
	})

	assert.Error(t, err)
	assert.NoError(t, producer.Close())
}
