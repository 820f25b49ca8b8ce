package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"bazaar-orders/internal/broadcast"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser clients connect cross-origin during development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and registers it with the hub. The read
// loop exists only to notice the peer going away; observers never send
// anything the server acts on.
func ServeWS(hub *broadcast.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		hub.Add(conn)

		go func() {
			defer func() {
				hub.Remove(conn)
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
