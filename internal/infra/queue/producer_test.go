package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func TestPublishLeadEvent(t *testing.T) {
	ch := new(MockChannel)
	p := NewProducer(ch)

	ev := entity.LeadEvent{
		EventID:    "evt-1",
		Type:       entity.LeadCreated,
		DealID:     "5001",
		Stage:      "Prequal-Started",
		Email:      "jane@example.com",
		Source:     "1111",
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	var published amqp.Publishing
	ch.On("PublishWithContext", mock.Anything, "ex.leads", "lead.created", false, false, mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(5).(amqp.Publishing) }).
		Return(nil)

	require.NoError(t, p.PublishLeadEvent(context.Background(), ev))

	assert.Equal(t, "application/json", published.ContentType)
	assert.Equal(t, amqp.Persistent, published.DeliveryMode)
	assert.Equal(t, "evt-1", published.MessageId)

	var body map[string]any
	require.NoError(t, json.Unmarshal(published.Body, &body))
	for _, key := range []string{"event_id", "type", "deal_id", "stage", "email", "source", "occurred_at"} {
		assert.Contains(t, body, key)
	}
}

func TestPublishLeadEventError(t *testing.T) {
	ch := new(MockChannel)
	p := NewProducer(ch)
	ch.On("PublishWithContext", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(amqp.ErrClosed)

	err := p.PublishLeadEvent(context.Background(), entity.LeadEvent{Type: entity.LeadUpdated})

	assert.True(t, errors.Is(err, amqp.ErrClosed))
}

func TestNilRabbitMQIsClosed(t *testing.T) {
	var r *RabbitMQ
	assert.True(t, r.IsClosed())
	assert.NoError(t, r.Close())
	assert.NoError(t, NoopProducer{}.PublishLeadEvent(context.Background(), entity.LeadEvent{}))
}
