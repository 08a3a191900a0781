package kafka

import (
	"github.com/segmentio/kafka-go"
)

// NewWriter returns the producer the outbox relay dispatches through. Topics
// are set per message; keys are order ids so one order's events stay on one
// partition.
func NewWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}
