package network

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"snakes_server/logic"
)

var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one connected frontend: it receives the event feed and may send key presses.
type Client struct {
	Hub       *Room
	Conn      *websocket.Conn
	Send      chan []byte
	SessionID string
	Codec     Codec
}

// ServeWs upgrades the request and registers the client. ?codec=msgpack switches to binary frames.
func ServeWs(room *Room, w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{
		Hub:       room,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		SessionID: uuid.NewString(),
		Codec:     CodecByName(r.URL.Query().Get("codec")),
	}
	select {
	case client.Hub.Register <- client:
	case <-room.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.Hub.Unregister <- c:
		case <-c.Hub.done:
		}
		c.Conn.Close()
	}()
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var req inbound
		if err := c.Codec.Unmarshal(message, &req); err != nil {
			continue
		}
		if req.Type != MsgInput {
			continue
		}
		key, ok := logic.ParseKey(req.Payload.Key)
		if !ok {
			log.Printf("client %s: unknown key %q", c.SessionID, req.Payload.Key)
			continue
		}
		c.Hub.Input(logic.Input{Slot: req.Payload.Slot, Key: key})
	}
}

func (c *Client) writePump() {
	defer func() {
		c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(c.Codec.FrameType(), message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// SendMessage encodes v for this client and queues it; a full queue drops the frame.
func (c *Client) SendMessage(msgType string, payload interface{}) {
	b, err := c.Codec.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		log.Printf("client %s: encode %s: %v", c.SessionID, msgType, err)
		return
	}
	select {
	case c.Send <- b:
	default:
	}
}
