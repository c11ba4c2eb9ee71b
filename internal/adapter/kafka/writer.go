package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/spotter-report-loader/internal/config"
	"github.com/couchcryptid/spotter-report-loader/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes events to the sink Kafka topic.
// It implements pipeline.EventStore.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PutEvent stamps the event's ingest time, serializes it, and publishes a
// single message to the sink topic.
func (w *Writer) PutEvent(ctx context.Context, event *domain.Event) error {
	msg, err := serializeToMessage(event.Stamped())
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

// Close flushes pending messages and releases the producer's connections.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an event into a Kafka message. The key is
// derived from the event time and point so re-parses of the same report
// land on the same partition.
func serializeToMessage(event domain.Event) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize event: %w", err)
	}

	key := fmt.Sprintf("%d", event.EventTS)
	if event.Location != nil && event.Location.Point != nil {
		key = fmt.Sprintf("%d:%.6f,%.6f", event.EventTS, event.Location.Point.Lat, event.Location.Point.Lon)
	}

	return kafkago.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "ingested_at", Value: []byte(time.UnixMicro(event.IngestTS).UTC().Format(time.RFC3339))},
		},
	}, nil
}
