package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

const streamName = "QA_EVENTS"

// jetStream is the subset of nats.JetStreamContext the publisher needs.
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// NATSPublisher publishes events to JetStream on the qa.> subjects.
type NATSPublisher struct {
	nc  *nats.Conn
	js  jetStream
	log *zap.Logger
}

// Connect returns a JetStream publisher for url, or Nop when url is empty.
func Connect(url string, log *zap.Logger) (Publisher, error) {
	if url == "" {
		log.Warn("NATS_URL not set, events will not be published")
		return Nop{}, nil
	}

	nc, err := nats.Connect(url,
		nats.Name("qa-backend"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("events: connecting to nats: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("events: opening jetstream: %w", err)
	}

	if _, err := js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"qa.>"},
		Storage:  nats.FileStorage,
		MaxAge:   7 * 24 * time.Hour,
	}); err != nil {
		log.Warn("failed to create NATS stream (may already exist)", zap.Error(err))
	}

	log.Info("NATS publisher initialised", zap.String("stream", streamName))
	return &NATSPublisher{nc: nc, js: js, log: log}, nil
}

// Publish sends evt on the subject named by its EventName.
func (p *NATSPublisher) Publish(_ context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("events: encoding %s: %w", evt.EventName, err)
	}

	ack, err := p.js.Publish(evt.EventName, data, nats.MsgId(evt.EventID))
	if err != nil {
		return fmt.Errorf("events: publishing %s: %w", evt.EventName, err)
	}

	p.log.Debug("event published",
		zap.String("subject", evt.EventName),
		zap.String("event_id", evt.EventID),
		zap.Uint64("seq", ack.Sequence),
	)
	return nil
}

// Close drains pending publishes and closes the connection.
func (p *NATSPublisher) Close() {
	if p.nc == nil {
		return
	}
	if err := p.nc.Drain(); err != nil {
		p.log.Warn("draining nats connection", zap.Error(err))
	}
}
