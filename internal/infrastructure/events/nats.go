// Package events publishes song activity to NATS subjects of the form
// <prefix>.<kind>, one JSON message per event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/zanith/zanith-api/internal/core/ports"
)

const (
	DefaultSubjectPrefix = "zanith.activity"
	connectTimeout       = 5 * time.Second
)

// Connect dials the NATS server at url and keeps reconnecting for the life
// of the process.
func Connect(url string, log zerolog.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("zanith-api"),
		nats.Timeout(connectTimeout),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("nats disconnected")
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info().Str("url", c.ConnectedUrl()).Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return nc, nil
}

// Healthy reports an error unless nc is currently connected.
func Healthy(nc *nats.Conn) error {
	if status := nc.Status(); status != nats.CONNECTED {
		return errors.New("nats " + status.String())
	}
	return nil
}

// conn is the subset of *nats.Conn the publisher needs.
type conn interface {
	Publish(subject string, data []byte) error
}

type Publisher struct {
	nc     conn
	prefix string
}

func NewPublisher(nc conn, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &Publisher{nc: nc, prefix: prefix}
}

type message struct {
	Kind     string    `json:"kind"`
	Username string    `json:"username"`
	Song     string    `json:"song"`
	At       time.Time `json:"at"`
}

func (p *Publisher) Subject(kind string) string {
	return p.prefix + "." + kind
}

// Publish hands the event to the NATS client buffer; it does not wait for
// the server.
func (p *Publisher) Publish(_ context.Context, ev ports.ActivityEvent) error {
	data, err := json.Marshal(message{
		Kind:     ev.Kind,
		Username: ev.Username,
		Song:     ev.AudioID,
		At:       ev.At.UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	if err := p.nc.Publish(p.Subject(ev.Kind), data); err != nil {
		return fmt.Errorf("publish activity: %w", err)
	}
	return nil
}

// Nop discards every event. Used when no NATS server is configured.
type Nop struct{}

func (Nop) Publish(context.Context, ports.ActivityEvent) error { return nil }
