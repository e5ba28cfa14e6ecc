package websockets

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Message types
const (
	MsgTypeSubscribe    = "subscribe"
	MsgTypeNotification = "notification"
)

// Client represents a connected WebSocket user
type Client struct {
	Conn   *websocket.Conn
	UserID string
}

type WebSocketManager struct {
	clients    map[*websocket.Conn]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *websocket.Conn
	send       chan DirectMessage
	mu         sync.Mutex
}

// DirectMessage struct for 1-on-1 messages
type DirectMessage struct {
	ReceiverID string `json:"receiver_id"`
	Message    []byte `json:"message"`
}

// Message is the inbound frame a client sends after connecting.
type Message struct {
	Type   string `json:"type"`
	UserID string `json:"user_id"`
}
