package socketio_types

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestSocketServerConnections(t *testing.T) {
	t.Run("Counts sockets per user", func(t *testing.T) {
		s := NewSocketServer()
		assert.False(t, s.IsConnected("alice"))

		assert.Equal(t, 1, s.AddConnection("alice", socket.SocketId("a1"), nil))
		assert.Equal(t, 2, s.AddConnection("alice", socket.SocketId("a2"), nil))
		assert.Equal(t, 1, s.AddConnection("bob", socket.SocketId("b1"), nil))
		assert.True(t, s.IsConnected("alice"))

		assert.Equal(t, 1, s.RemoveConnection("alice", socket.SocketId("a1")))
		assert.True(t, s.IsConnected("alice"))
		assert.Equal(t, 0, s.RemoveConnection("alice", socket.SocketId("a2")))
		assert.False(t, s.IsConnected("alice"))
		assert.NotContains(t, s.UserConnections, "alice")
		assert.True(t, s.IsConnected("bob"))
	})

	t.Run("Same socket twice counts once", func(t *testing.T) {
		s := NewSocketServer()
		s.AddConnection("alice", socket.SocketId("a1"), nil)
		assert.Equal(t, 1, s.AddConnection("alice", socket.SocketId("a1"), nil))
	})

	t.Run("Removing unknown sockets is harmless", func(t *testing.T) {
		s := NewSocketServer()
		assert.Equal(t, 0, s.RemoveConnection("ghost", socket.SocketId("x")))
		s.AddConnection("alice", socket.SocketId("a1"), nil)
		assert.Equal(t, 1, s.RemoveConnection("alice", socket.SocketId("other")))
	})

	t.Run("Zero value is usable", func(t *testing.T) {
		var s SocketServer
		assert.Equal(t, 1, s.AddConnection("alice", socket.SocketId("a1"), nil))
		assert.True(t, s.IsConnected("alice"))
	})

	t.Run("Concurrent connects and disconnects", func(t *testing.T) {
		s := NewSocketServer()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(id socket.SocketId) {
				defer wg.Done()
				s.AddConnection("alice", id, nil)
				s.IsConnected("alice")
				s.RemoveConnection("alice", id)
			}(socket.SocketId(string(rune('A' + i))))
		}
		wg.Wait()
		assert.False(t, s.IsConnected("alice"))
	})
}
