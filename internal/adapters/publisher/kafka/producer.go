package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"blood-ledger/internal/domain/audit"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AuditPublisher manda cada entrada commiteada del historial al topic de
// auditoría. La key es la instalación, así el orden por instalación se
// mantiene dentro de la partición.
type AuditPublisher struct {
	writer messageWriter
	topic  string
}

func NewAuditPublisher(brokers []string, topic string) *AuditPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &AuditPublisher{writer: writer, topic: topic}
}

// AuditEvent es el payload publicado.
type AuditEvent struct {
	FacilityID  string    `json:"facility_id"`
	Seq         int64     `json:"seq"`
	EventType   string    `json:"event_type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ReferenceID string    `json:"reference_id,omitempty"`
}

func (p *AuditPublisher) Publish(ctx context.Context, e audit.Entry) error {
	data, err := json.Marshal(AuditEvent{
		FacilityID:  e.FacilityID,
		Seq:         e.Seq,
		EventType:   string(e.EventType),
		Description: e.Description,
		Date:        e.Date.UTC(),
		ReferenceID: e.ReferenceID,
	})
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.FacilityID),
		Value: data,
		Time:  e.Date,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.EventType)},
		},
	}); err != nil {
		return fmt.Errorf("publish audit %s/%d to %s: %w", e.FacilityID, e.Seq, p.topic, err)
	}
	return nil
}

func (p *AuditPublisher) Close() error {
	return p.writer.Close()
}
