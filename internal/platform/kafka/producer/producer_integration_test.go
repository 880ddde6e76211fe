//go:build integration

package producer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"leetcoach/internal/platform/kafka/producer"
	"leetcoach/pkg/testutil/containers"
)

type ProducerIntegrationSuite struct {
	suite.Suite
	kafka    *containers.KafkaContainer
	producer *producer.Producer
}

func TestProducerIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerIntegrationSuite))
}

func (s *ProducerIntegrationSuite) SetupSuite() {
	s.kafka = containers.GetManager().GetKafka(s.T())

	cfg := producer.DefaultConfig(strings.Join(s.kafka.Brokers, ","))
	cfg.DeliveryTimeout = 10 * time.Second
	prod, err := producer.New(cfg, nil)
	s.Require().NoError(err)
	s.producer = prod
}

func (s *ProducerIntegrationSuite) TearDownSuite() {
	if s.producer != nil {
		_ = s.producer.Close()
	}
}

func (s *ProducerIntegrationSuite) TestProduceDeliversKeyValueAndHeaders() {
	ctx := context.Background()
	topic := "security-events-test"
	s.Require().NoError(s.kafka.EnsureTopic(ctx, topic))

	err := s.producer.Produce(ctx, &producer.Message{
		Topic:   topic,
		Key:     []byte("203.0.113.7"),
		Value:   []byte(`{"action":"rate_limit_exceeded"}`),
		Headers: map[string]string{"event_type": "rate_limit_exceeded"},
	})
	s.Require().NoError(err)

	record, err := s.kafka.FindRecord(ctx, topic, 10*time.Second, func(r *kgo.Record) bool {
		return string(r.Key) == "203.0.113.7"
	})
	s.Require().NoError(err)
	s.Require().NotNil(record, "message should be consumable")
	s.JSONEq(`{"action":"rate_limit_exceeded"}`, string(record.Value))
	s.Require().Len(record.Headers, 1)
	s.Equal("event_type", record.Headers[0].Key)
	s.Equal("rate_limit_exceeded", string(record.Headers[0].Value))
}

func (s *ProducerIntegrationSuite) TestHealth() {
	s.NoError(s.producer.Health(context.Background()))
}
