package producer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestNew_RequiresBrokers(t *testing.T) {
	_, err := New(Config{Brokers: " , "}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brokers not configured")
}

func TestSplitBrokers(t *testing.T) {
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitBrokers(" a:9092,,b:9092 "))
	assert.Empty(t, splitBrokers(""))
}

func TestParseAcks(t *testing.T) {
	assert.Equal(t, kgo.NoAck(), parseAcks("0"))
	assert.Equal(t, kgo.LeaderAck(), parseAcks("1"))
	assert.Equal(t, kgo.AllISRAcks(), parseAcks("all"))
	assert.Equal(t, kgo.AllISRAcks(), parseAcks(""))
}

func TestToRecord(t *testing.T) {
	rec := toRecord(&Message{
		Topic:   "t",
		Key:     []byte("k"),
		Value:   []byte("v"),
		Headers: map[string]string{"h": "1"},
	})
	assert.Equal(t, "t", rec.Topic)
	assert.Equal(t, []byte("k"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, "h", rec.Headers[0].Key)
}

func TestProduceAfterCloseFails(t *testing.T) {
	// The client connects lazily, so constructing against an unroutable broker is fine.
	p, err := New(DefaultConfig("127.0.0.1:1"), nil)
	require.NoError(t, err)
	p.closed = true
	p.client.Close()

	assert.ErrorIs(t, p.Produce(context.Background(), &Message{Topic: "t"}), ErrClosed)
	assert.ErrorIs(t, p.Health(context.Background()), ErrClosed)
	assert.NoError(t, p.Close())
}
