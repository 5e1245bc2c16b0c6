package socket_io

import (
	"SteamProfile/services"
	"SteamProfile/services/redis"
	socketio_types "SteamProfile/services/socket_io/types"
	socketio_utils "SteamProfile/services/socket_io/utils"
	"SteamProfile/utils"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

// presenceTimeout bounds the Redis presence writes done on connect/disconnect
const presenceTimeout = 3 * time.Second

// MySocketServer pushes friendship events to connected users. It implements
// services.Notifier.
type MySocketServer socketio_types.SocketServer

var _ services.Notifier = (*MySocketServer)(nil)

func NewSocketServer() *MySocketServer {
	return (*MySocketServer)(socketio_types.NewSocketServer())
}

// Start mounts the socket.io endpoint on router. Clients authenticate with
// the same bearer token as the REST API.
func (sio *MySocketServer) Start(router *gin.Engine, jwtManager *utils.JWTManager,
	sessions services.SessionService, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(25 * time.Second)
	c.SetPingTimeout(20 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	server := (*socketio_types.SocketServer)(sio)
	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
		success, username := socketio_utils.VerifyUserConnection(ctx, client, jwtManager, sessions)
		cancel()
		if !success {
			client.Disconnect(true)
			return
		}

		client.Join(socketio_utils.UserRoom(username))
		if server.AddConnection(username, client.Id(), client) == 1 {
			sio.setPresence(redisClient, username, true)
		}
		utils.GetLogger().Debug("socket connected", zap.String("username", username))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", func(...interface{}) {
			if server.RemoveConnection(username, client.Id()) == 0 {
				sio.setPresence(redisClient, username, false)
			}
		})
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	utils.GetLogger().Info("Socket server started")
}

func (sio *MySocketServer) setPresence(redisClient *redis.RedisClient, username string, online bool) {
	if redisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), presenceTimeout)
	defer cancel()
	if err := redisClient.SetPresence(ctx, username, online); err != nil {
		utils.GetLogger().Warn("could not update presence", zap.String("username", username), zap.Error(err))
	}
}

// Notify emits event to every socket of username. Users without a connection
// simply miss the event; the REST API stays the source of truth.
func (sio *MySocketServer) Notify(username, event string, payload interface{}) {
	if sio.Sio_server == nil || !(*socketio_types.SocketServer)(sio).IsConnected(username) {
		return
	}
	if err := sio.Sio_server.To(socketio_utils.UserRoom(username)).Emit(event, payload); err != nil {
		utils.GetLogger().Warn("could not emit event",
			zap.String("username", username), zap.String("event", event), zap.Error(err))
	}
}

// Close disconnects every client
func (sio *MySocketServer) Close() {
	if sio.Sio_server != nil {
		sio.Sio_server.Close(nil)
	}
}
