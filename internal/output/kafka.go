package output

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"

	"github.com/vivek2589/bangalore-graph-package/internal/export"
)

// KafkaSink publishes each edge row as a JSON message.
type KafkaSink struct {
	producer sarama.SyncProducer
	topic    string
}

func NewKafkaSink(brokerList, topic string) (*KafkaSink, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(strings.Split(brokerList, ","), config)
	if err != nil {
		return nil, fmt.Errorf("create Kafka producer: %w", err)
	}
	return &KafkaSink{producer: producer, topic: topic}, nil
}

func (k *KafkaSink) Publish(_ context.Context, rows []export.EdgeRow) error {
	for _, row := range rows {
		msg, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal edge row: %w", err)
		}
		if _, _, err := k.producer.SendMessage(&sarama.ProducerMessage{
			Topic: k.topic,
			Value: sarama.ByteEncoder(msg),
		}); err != nil {
			return fmt.Errorf("send edge row: %w", err)
		}
	}
	return nil
}

func (k *KafkaSink) Close() error {
	return k.producer.Close()
}
