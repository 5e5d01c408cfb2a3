package network

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Message type codes
const (
	MsgWelcome  = "welcome"
	MsgSnapshot = "snapshot"
	MsgEvents   = "events"
	MsgInput    = "input"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Type    string      `json:"type" msgpack:"type"`
	Payload interface{} `json:"payload" msgpack:"payload"`
}

// InputPayload is what a frontend sends for one key press.
type InputPayload struct {
	Slot int    `json:"slot" msgpack:"slot"`
	Key  string `json:"key" msgpack:"key"`
}

type inbound struct {
	Type    string       `json:"type" msgpack:"type"`
	Payload InputPayload `json:"payload" msgpack:"payload"`
}

// Codec frames messages for one client.
type Codec interface {
	Name() string
	FrameType() int
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

type jsonCodec struct{}

func (jsonCodec) Name() string                               { return "json" }
func (jsonCodec) FrameType() int                             { return websocket.TextMessage }
func (jsonCodec) Marshal(v interface{}) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v interface{}) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() string                               { return "msgpack" }
func (msgpackCodec) FrameType() int                             { return websocket.BinaryMessage }
func (msgpackCodec) Marshal(v interface{}) ([]byte, error)      { return msgpack.Marshal(v) }
func (msgpackCodec) Unmarshal(data []byte, v interface{}) error { return msgpack.Unmarshal(data, v) }

var (
	JSON    Codec = jsonCodec{}
	MsgPack Codec = msgpackCodec{}
)

// CodecByName picks a codec from a query parameter; anything unknown means JSON.
func CodecByName(name string) Codec {
	if name == MsgPack.Name() {
		return MsgPack
	}
	return JSON
}
