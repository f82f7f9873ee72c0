package kinesis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwtcode/tcubeAdapter/models"
)

// queueDriver отдает сообщения из среза, затем блокируется до отмены ctx.
type queueDriver struct {
	Driver
	messages []models.Message
	err      error
	reads    int
}

func (q *queueDriver) WaitForMessage(ctx context.Context, serial string) (models.Message, error) {
	q.reads++
	if q.err != nil {
		return models.Message{}, q.err
	}
	if len(q.messages) == 0 {
		<-ctx.Done()
		return models.Message{}, ctx.Err()
	}
	m := q.messages[0]
	q.messages = q.messages[1:]
	return m, nil
}

func TestWaitForSkipsOtherMessages(t *testing.T) {
	q := &queueDriver{messages: []models.Message{
		{Type: 2, ID: 1},
		{Type: 0, ID: 0},
		{Type: 2, ID: 0, Data: 42},
		{Type: 2, ID: 1},
	}}

	msg, err := WaitFor(context.Background(), q, "27000001", HomedMessage, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), msg.Data)
	assert.Equal(t, 3, q.reads)
	assert.Len(t, q.messages, 1)
}

func TestWaitForTimeout(t *testing.T) {
	q := &queueDriver{messages: []models.Message{{Type: 2, ID: 0}}}

	start := time.Now()
	_, err := WaitFor(context.Background(), q, "27000001", MovedMessage, 30*time.Millisecond)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	var werr *WaitError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, "27000001", werr.Serial)
	assert.Equal(t, MovedMessage, werr.Want)
}

func TestWaitForCancel(t *testing.T) {
	q := &queueDriver{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WaitFor(ctx, q, "27000001", MovedMessage, time.Second)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsTimeout(err))
}

func TestWaitForDriverError(t *testing.T) {
	boom := errors.New("queue broken")
	q := &queueDriver{err: boom}

	_, err := WaitFor(context.Background(), q, "27000001", HomedMessage, 0)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, q.reads)
}
