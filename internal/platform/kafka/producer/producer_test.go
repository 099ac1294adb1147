package producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"kycgate/internal/platform/config"
)

func TestNewRequiresBrokers(t *testing.T) {
	p, err := New(config.KafkaConfig{}, nil)
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestToRecord(t *testing.T) {
	rec := toRecord(&Message{
		Topic:   "kycgate.identity.audit",
		Key:     []byte("CUST001"),
		Value:   []byte(`{}`),
		Headers: map[string]string{"event": "identity_verified"},
	})

	assert.Equal(t, "kycgate.identity.audit", rec.Topic)
	assert.Equal(t, []byte("CUST001"), rec.Key)
	require.Len(t, rec.Headers, 1)
	assert.Equal(t, kgo.RecordHeader{Key: "event", Value: []byte("identity_verified")}, rec.Headers[0])
}
