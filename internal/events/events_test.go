package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeJetStream struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeJetStream) Publish(subj string, data []byte, _ ...nats.PubOpt) (*nats.PubAck, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.subjects = append(f.subjects, subj)
	f.payloads = append(f.payloads, data)
	return &nats.PubAck{Stream: streamName, Sequence: uint64(len(f.subjects))}, nil
}

func TestNew_StampsEnvelope(t *testing.T) {
	before := time.Now().UTC()
	evt := New(SubjectQuestionDeleted, 10, map[string]any{"removed": 3})

	assert.Len(t, evt.EventID, 36)
	assert.Equal(t, SubjectQuestionDeleted, evt.EventName)
	assert.EqualValues(t, 10, evt.EntityID)
	assert.False(t, evt.OccurredAt.Before(before))
	assert.NotEqual(t, evt.EventID, New(SubjectQuestionDeleted, 10, nil).EventID)
}

func TestNATSPublisher_Publish(t *testing.T) {
	js := &fakeJetStream{}
	p := &NATSPublisher{js: js, log: zap.NewNop()}

	evt := New(SubjectUserDeleted, 2, map[string]any{"name": "bob"})
	require.NoError(t, p.Publish(context.Background(), evt))

	require.Equal(t, []string{SubjectUserDeleted}, js.subjects)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(js.payloads[0], &wire))
	assert.Equal(t, evt.EventID, wire["event_id"])
	assert.Equal(t, "qa.user.deleted", wire["event_name"])
	assert.EqualValues(t, 2, wire["entity_id"])
	assert.Equal(t, map[string]any{"name": "bob"}, wire["properties"])
}

func TestNATSPublisher_PublishError(t *testing.T) {
	boom := errors.New("no responders")
	p := &NATSPublisher{js: &fakeJetStream{err: boom}, log: zap.NewNop()}

	err := p.Publish(context.Background(), New(SubjectCommentDeleted, 1, nil))
	assert.ErrorIs(t, err, boom)

	p.Close() // no connection; must not panic
}

func TestConnect_EmptyURLIsNop(t *testing.T) {
	p, err := Connect("", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), New(SubjectUserRegistered, 1, nil)))
	p.Close()
}
