package config

import (
	"github.com/IBM/sarama"
	"github.com/gofiber/fiber/v2/log"
)

func InitKafkaProducer() sarama.SyncProducer {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(Conf.Application.Kafka.Brokers, cfg)
	if err != nil {
		log.Panic("failed to create kafka producer: ", err)
	}
	log.Info("kafka producer successfully configured")
	return producer
}
