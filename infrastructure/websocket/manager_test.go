package websocket

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingConn struct {
	mu   sync.Mutex
	sent []interface{}
	err  error
}

func (c *recordingConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, v)
	return nil
}

func (c *recordingConn) messages() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]interface{}{}, c.sent...)
}

func TestRegisterAndUnregister(t *testing.T) {
	m := NewManager()
	conn := &recordingConn{}
	id := uuid.New()

	client := m.RegisterClient(conn, id)
	assert.Equal(t, id, client.SessionID)
	assert.Equal(t, 1, m.ClientCount())

	require.NoError(t, m.Send(conn, "hello"))
	assert.Equal(t, []interface{}{"hello"}, conn.messages())

	m.UnregisterClient(conn)
	m.UnregisterClient(conn)
	assert.Zero(t, m.ClientCount())
}

func TestBroadcastViews(t *testing.T) {
	m := NewManager()
	actor, other, broken := uuid.New(), uuid.New(), uuid.New()

	actorConn := &recordingConn{}
	otherConn := &recordingConn{}
	brokenConn := &recordingConn{err: errors.New("closed")}
	m.RegisterClient(actorConn, actor)
	m.RegisterClient(otherConn, other)
	m.RegisterClient(brokenConn, broken)

	sent := m.BroadcastViews(actor, func(sessionID uuid.UUID) (interface{}, error) {
		return sessionID.String(), nil
	})

	assert.Equal(t, 1, sent)
	assert.Empty(t, actorConn.messages())
	assert.Equal(t, []interface{}{other.String()}, otherConn.messages())
}

func TestBroadcastViews_SkipsFailedBuild(t *testing.T) {
	m := NewManager()
	conn := &recordingConn{}
	m.RegisterClient(conn, uuid.New())

	sent := m.BroadcastViews(uuid.Nil, func(uuid.UUID) (interface{}, error) {
		return nil, errors.New("session gone")
	})

	assert.Zero(t, sent)
	assert.Empty(t, conn.messages())
}

func TestClientSendIsSerialized(t *testing.T) {
	conn := &recordingConn{}
	client := &Client{Conn: conn}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = client.Send(i)
		}(i)
	}
	wg.Wait()
	assert.Len(t, conn.messages(), 50)
}
