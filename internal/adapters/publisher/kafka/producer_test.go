package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"blood-ledger/internal/domain/audit"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestAuditPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &AuditPublisher{writer: w, topic: "audit"}
	date := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), audit.Entry{
		FacilityID:  "labX",
		Seq:         7,
		EventType:   audit.EventRequestAccepted,
		Description: "sent",
		Date:        date,
		ReferenceID: "req-1",
	})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "labX", string(w.msgs[0].Key))

	var ev AuditEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, int64(7), ev.Seq)
	assert.Equal(t, "Request Accepted", ev.EventType)
	assert.Equal(t, "req-1", ev.ReferenceID)
	assert.True(t, date.Equal(ev.Date))
}

func TestAuditPublisher_WrapsWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &AuditPublisher{writer: &fakeWriter{err: boom}, topic: "audit"}

	err := p.Publish(context.Background(), audit.Entry{FacilityID: "f", Seq: 1, EventType: audit.EventDonation})
	assert.ErrorIs(t, err, boom)
}
