// Package kafka publishes assessed city results to a sink topic for
// downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/guaibalabs/weather-risk/internal/domain"
)

// Publisher produces one message per assessed city.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishBatch serializes and publishes all city results of one batch in a
// single WriteMessages call.
func (p *Publisher) PublishBatch(ctx context.Context, results []domain.CityResult) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(results))
	for i := range results {
		msg, err := serializeToMessage(results[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	p.logger.Info("batch published", "topic", p.writer.Topic, "messages", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a CityResult into a Kafka message keyed by
// city name. Cities whose fetch failed carry the risk_level header "NONE".
func serializeToMessage(result domain.CityResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize city result: %w", err)
	}

	riskLevel := "NONE"
	if result.Stats != nil {
		riskLevel = string(result.Stats.RiskLevel)
	}

	return kafkago.Message{
		Key:   []byte(result.City),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(riskLevel)},
			{Key: "assessed_at", Value: []byte(result.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}
