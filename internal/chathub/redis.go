package chathub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const DefaultChannel = "loadboard:chat"

// RedisBroker relays envelopes over a Redis pub/sub channel.
type RedisBroker struct {
	rdb     *redis.Client
	channel string
}

func NewRedisBroker(addr, password string) *RedisBroker {
	return &RedisBroker{
		rdb:     redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		channel: DefaultChannel,
	}
}

func (b *RedisBroker) Ping(ctx context.Context) error {
	if err := b.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func (b *RedisBroker) Publish(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	return b.rdb.Publish(ctx, b.channel, data).Err()
}

func (b *RedisBroker) Run(ctx context.Context, deliver func(Envelope)) {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				logrus.WithError(err).Warn("discarding malformed chat envelope")
				continue
			}
			deliver(env)
		}
	}
}

func (b *RedisBroker) Close() error { return b.rdb.Close() }
