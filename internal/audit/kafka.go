package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink forwards audit events to a Kafka topic. It consumes from the
// publisher's sink channel so slow brokers never back-pressure request
// handling.
type KafkaSink struct {
	client *kgo.Client
	topic  string
	inbox  <-chan Event
	logger *slog.Logger
}

// NewKafkaSink connects to the given brokers (comma-separated).
func NewKafkaSink(brokers, topic string, inbox <-chan Event, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(brokers, ",")...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaSink{client: client, topic: topic, inbox: inbox, logger: logger}, nil
}

// Run drains the inbox until ctx is cancelled. Produce failures are logged,
// not fatal; the store copy of every event already exists.
func (s *KafkaSink) Run(ctx context.Context) error {
	defer s.client.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-s.inbox:
			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.ErrorContext(ctx, "marshal audit event", "error", err)
				continue
			}
			record := &kgo.Record{
				Topic: s.topic,
				Key:   []byte(event.JobID.String()),
				Value: payload,
			}
			s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
				if err != nil {
					s.logger.Error("produce audit event", "error", err, "action", event.Action)
				}
			})
		}
	}
}
