package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and the open
// connections per user. A user may have several tabs or devices connected.
type SocketServer struct {
	Sio_server *socket.Server
	// username -> socket id -> socket
	UserConnections map[string]map[socket.SocketId]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]map[socket.SocketId]*socket.Socket),
	}
}

// AddConnection registers a socket under id and returns how many the user now has
func (s *SocketServer) AddConnection(username string, id socket.SocketId, client *socket.Socket) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.UserConnections == nil {
		s.UserConnections = make(map[string]map[socket.SocketId]*socket.Socket)
	}
	conns, ok := s.UserConnections[username]
	if !ok {
		conns = make(map[socket.SocketId]*socket.Socket)
		s.UserConnections[username] = conns
	}
	conns[id] = client
	return len(conns)
}

// RemoveConnection forgets a socket and returns how many the user has left
func (s *SocketServer) RemoveConnection(username string, id socket.SocketId) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	conns, ok := s.UserConnections[username]
	if !ok {
		return 0
	}
	delete(conns, id)
	if len(conns) == 0 {
		delete(s.UserConnections, username)
	}
	return len(conns)
}

func (s *SocketServer) IsConnected(username string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.UserConnections[username]) > 0
}
