package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes roster events to a single topic, keyed by activity
// name so one activity's events stay ordered within a partition.
type KafkaPublisher struct {
	log    *zap.SugaredLogger
	writer messageWriter
}

// NewKafkaPublisher creates a KafkaPublisher for topic on brokers.
func NewKafkaPublisher(log *zap.SugaredLogger, brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		log: log.Named("events.kafka"),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
		},
	}
}

// Publish implements Publisher.
func (p *KafkaPublisher) Publish(ctx context.Context, evt RosterChanged) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal roster event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Activity),
		Value: payload,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write roster event: %w", err)
	}
	p.log.Debugw("roster event published", "type", evt.Type, "activity", evt.Activity)
	return nil
}

// Close flushes and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
