// Package kafkapush implements the push channel as a Kafka consumer. The
// consumer owns the socket exclusively: it is started when a credential is
// acquired, torn down on logout, and never reconnects without one. Valid
// events are forwarded to the synchronization store; malformed records are
// logged and dropped without disturbing the stream.
package kafkapush

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"ordersync/internal/core/ports"
)

const reconnectBackoff = 5 * time.Second

// Config carries the broker connection settings.
type Config struct {
	Brokers []string
	Topic   string
	Group   string
}

// Consumer reads push events from the order-changes topic and forwards them
// to the event sink. It also drives the sink's connectivity flag: connected
// while the poll loop is healthy, disconnected on stream failure or stop.
type Consumer struct {
	cfg    Config
	sink   ports.PushEventSink
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewConsumer creates a push channel consumer. Start must be called once a
// credential is available.
func NewConsumer(cfg Config, sink ports.PushEventSink, logger *slog.Logger) *Consumer {
	return &Consumer{
		cfg:    cfg,
		sink:   sink,
		logger: logger.With("component", "push"),
	}
}

// Start opens the channel and begins forwarding events. Returns an error when
// the consumer is already running or the client cannot be built.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return errors.New("push consumer is already running")
	}

	client, err := c.newClient()
	if err != nil {
		return fmt.Errorf("connecting push channel: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(runCtx, client)
	return nil
}

// Stop tears the channel down. Blocks until the poll loop has exited and the
// sink has been flipped to disconnected.
func (c *Consumer) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel = nil
	c.done = nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (c *Consumer) newClient() (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(c.cfg.Brokers...),
		kgo.ConsumerGroup(c.cfg.Group),
		kgo.ConsumeTopics(c.cfg.Topic),
		kgo.BlockRebalanceOnPoll(),
	)
}

// run is the poll loop. Stream errors flip the connectivity flag and retry
// with a fixed backoff; the loop exits only on Stop.
func (c *Consumer) run(ctx context.Context, client *kgo.Client) {
	defer close(c.done)
	defer c.sink.SetConnected(false)
	defer client.Close()

	c.sink.SetConnected(true)
	c.logger.Info("Push channel connected", "topic", c.cfg.Topic)

	for {
		fetches := client.PollFetches(ctx)
		if ctx.Err() != nil || fetches.IsClientClosed() {
			c.logger.Info("Push channel stopped")
			return
		}

		if errs := fetches.Errors(); len(errs) > 0 {
			c.sink.SetConnected(false)
			for _, fetchErr := range errs {
				c.logger.Warn("Push channel stream error",
					"topic", fetchErr.Topic, "error", fetchErr.Err)
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(reconnectBackoff):
			}
			c.sink.SetConnected(true)
			continue
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			c.handleRecord(iter.Next())
		}
	}
}

func (c *Consumer) handleRecord(record *kgo.Record) {
	event, err := decodeEvent(record.Value)
	if err != nil {
		// Malformed events must never crash the loop.
		c.logger.Warn("Dropping malformed push record", "error", err)
		return
	}
	c.sink.OnPushEvent(event)
}

// eventEnvelope is the wire shape of one push record.
type eventEnvelope struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// decodeEvent parses a push record. Kind validity is checked downstream by
// the sink, which counts and drops unknown kinds.
func decodeEvent(value []byte) (ports.PushEvent, error) {
	var envelope eventEnvelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		return ports.PushEvent{}, fmt.Errorf("decoding push record: %w", err)
	}
	if envelope.Kind == "" {
		return ports.PushEvent{}, errors.New("push record has no kind")
	}

	return ports.PushEvent{
		Kind:    ports.PushEventKind(envelope.Kind),
		Payload: envelope.Payload,
	}, nil
}
