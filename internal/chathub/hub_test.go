package chathub

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	writes []string
	fail   bool
	closed bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.writes = append(f.writes, string(b))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type recordingBroker struct {
	published []Envelope
}

func (b *recordingBroker) Publish(_ context.Context, env Envelope) error {
	b.published = append(b.published, env)
	return nil
}
func (b *recordingBroker) Run(context.Context, func(Envelope)) {}
func (b *recordingBroker) Close() error { return nil }

func TestBroadcastReachesBothParticipants(t *testing.T) {
	h := NewHub(nil)
	alice, bob, carol := &fakeConn{}, &fakeConn{}, &fakeConn{}
	h.Register(1, alice)
	h.Register(2, bob)
	h.Register(3, carol)

	require.NoError(t, h.Broadcast(context.Background(), map[string]string{"content": "hi"}, 1, 2))

	assert.Equal(t, []string{`{"content":"hi"}`}, alice.writes)
	assert.Equal(t, []string{`{"content":"hi"}`}, bob.writes)
	assert.Empty(t, carol.writes)
}

func TestBroadcastToSelfDeliversOnce(t *testing.T) {
	h := NewHub(nil)
	c := &fakeConn{}
	h.Register(5, c)

	require.NoError(t, h.Broadcast(context.Background(), "note", 5, 5))
	assert.Len(t, c.writes, 1)
}

func TestFailedWriteUnregisters(t *testing.T) {
	h := NewHub(nil)
	bad := &fakeConn{fail: true}
	h.Register(9, bad)

	require.NoError(t, h.Broadcast(context.Background(), "x", 9))
	assert.Equal(t, 0, h.Connections(9))
	assert.True(t, bad.closed)
}

func TestBroadcastGoesThroughBroker(t *testing.T) {
	b := &recordingBroker{}
	h := NewHub(b)
	c := &fakeConn{}
	h.Register(1, c)

	require.NoError(t, h.Broadcast(context.Background(), "x", 1, 2))
	require.Len(t, b.published, 1)
	assert.Equal(t, []uint{1, 2}, b.published[0].Recipients)
	assert.Empty(t, c.writes, "delivery waits for the broker")

	h.deliver(b.published[0])
	assert.Len(t, c.writes, 1)
}
