package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Config struct {
	URL             string
	Exchange        string
	ExchangeType    string
	ExchangeDurable bool
	ConnectRetries  int
	ConnectInterval time.Duration
	PublishRetries  int
	PublishDelay    time.Duration
	BackoffMult     float64
}

// channel is the publishing half of *amqp.Channel.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends persistent messages to one exchange, retrying with
// exponential backoff.
type Publisher struct {
	cfg     *Config
	log     *slog.Logger
	channel channel
	closer  func() error
}

func NewPublisher(cfg *Config, log *slog.Logger) (*Publisher, error) {
	conn, err := dial(cfg, log)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,        // name
		cfg.ExchangeType,    // type
		cfg.ExchangeDurable, // durable
		false,               // auto-deleted
		false,               // internal
		false,               // no-wait
		nil,                 // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	log.Info("rabbitmq publisher ready", slog.String("exchange", cfg.Exchange))

	return &Publisher{
		cfg:     cfg,
		log:     log,
		channel: ch,
		closer: func() error {
			return errors.Join(ch.Close(), conn.Close())
		},
	}, nil
}

func dial(cfg *Config, log *slog.Logger) (*amqp.Connection, error) {
	attempts := max(cfg.ConnectRetries, 1)

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		var conn *amqp.Connection
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			return conn, nil
		}

		log.Error("failed to connect to rabbitmq", slog.Int("attempt", attempt), slog.Any("error", err))
		if attempt < attempts {
			time.Sleep(cfg.ConnectInterval)
		}
	}

	return nil, fmt.Errorf("failed to connect to rabbitmq after %d attempts: %w", attempts, err)
}

// Publish sends body under routingKey. It gives up after the configured
// retries or when ctx is done.
func (p *Publisher) Publish(ctx context.Context, routingKey, messageId string, body []byte) error {
	retries := p.cfg.PublishRetries
	if retries <= 0 {
		retries = 3
	}
	delay := p.cfg.PublishDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	mult := p.cfg.BackoffMult
	if mult < 1 {
		mult = 2
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		MessageId:    messageId,
		Type:         routingKey,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		lastErr = p.channel.PublishWithContext(ctx, p.cfg.Exchange, routingKey, false, false, msg)
		if lastErr == nil {
			if attempt > 0 {
				p.log.Info("published after retry", slog.String("routing_key", routingKey), slog.Int("attempt", attempt+1))
			}
			return nil
		}
		if attempt == retries {
			break
		}

		p.log.Warn("publish failed, retrying",
			slog.String("routing_key", routingKey),
			slog.Int("attempt", attempt+1),
			slog.Duration("retry_after", delay),
			slog.Any("error", lastErr),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * mult)
	}

	return fmt.Errorf("failed to publish %s after %d attempts: %w", routingKey, retries+1, lastErr)
}

func (p *Publisher) Close() error {
	if p.closer == nil {
		return nil
	}

	return p.closer()
}
