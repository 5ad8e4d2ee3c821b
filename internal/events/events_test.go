package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithoutBrokersIsNop(t *testing.T) {
	p := New(nil)
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), TopicOrderCreated, "1", map[string]int{"id": 1}))
	assert.NoError(t, p.Close())
}

func TestNewWithBrokersIsKafka(t *testing.T) {
	p := New([]string{"localhost:9092"})
	k, ok := p.(*Kafka)
	assert.True(t, ok)
	assert.True(t, k.w.Async)
	assert.Equal(t, "localhost:9092", k.w.Addr.String())
}
