package socket_io

import (
	socketio_types "SteamProfile/services/socket_io/types"
	socketio_utils "SteamProfile/services/socket_io/utils"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/zishang520/socket.io/v2/socket"
)

func TestNotify(t *testing.T) {
	t.Run("Without a running server", func(t *testing.T) {
		sio := NewSocketServer()
		(*socketio_types.SocketServer)(sio).AddConnection("alice", socket.SocketId("a1"), nil)
		assert.NotPanics(t, func() {
			sio.Notify("alice", "friend_request", gin.H{"from": "bob"})
		})
		assert.NotPanics(t, sio.Close)
	})

	t.Run("Offline user is skipped", func(t *testing.T) {
		sio := NewSocketServer()
		sio.Sio_server = socket.NewServer(nil, nil)
		defer sio.Close()
		assert.NotPanics(t, func() {
			sio.Notify("nobody", "friend_request", gin.H{"from": "bob"})
		})
	})

	t.Run("Connected user gets a room broadcast", func(t *testing.T) {
		sio := NewSocketServer()
		sio.Sio_server = socket.NewServer(nil, nil)
		defer sio.Close()
		(*socketio_types.SocketServer)(sio).AddConnection("alice", socket.SocketId("a1"), nil)
		assert.NotPanics(t, func() {
			sio.Notify("alice", "friend_accepted", gin.H{"by": "bob"})
		})
	})
}

func TestUserRoom(t *testing.T) {
	assert.Equal(t, socket.Room("user:alice"), socketio_utils.UserRoom("alice"))
	assert.NotEqual(t, socketio_utils.UserRoom("alice"), socketio_utils.UserRoom("bob"))
}
