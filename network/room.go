package network

import (
	"log"
	"sync"

	"snakes_server/logic"
)

// Room fans the game's event feed out to connected frontends and forwards their key presses to the loop.
type Room struct {
	ID         string
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	GameLoop   *logic.GameLoop
	Config     *logic.GameConfig
	Mutex      sync.RWMutex

	done chan struct{}
}

func NewRoom(id string, cfg *logic.GameConfig, loop *logic.GameLoop) *Room {
	return &Room{
		ID:         id,
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		GameLoop:   loop,
		Config:     cfg,
		done:       make(chan struct{}),
	}
}

// Input forwards one key press to the game loop.
func (r *Room) Input(in logic.Input) {
	select {
	case r.GameLoop.InputChan <- in:
	case <-r.done:
	}
}

// ClientCount is the number of connected frontends.
func (r *Room) ClientCount() int {
	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	return len(r.Clients)
}

// Run starts the game loop and serves clients until the loop ends. A fatal engine error is returned.
func (r *Room) Run() error {
	errc := make(chan error, 1)
	go func() { errc <- r.GameLoop.Run() }()
	log.Printf("Room %s started. Tick: %dms", r.ID, r.Config.Server.TickRateMs)

	defer close(r.done)
	defer r.closeClients()

	for {
		select {
		case client := <-r.Register:
			r.Mutex.Lock()
			r.Clients[client] = true
			r.Mutex.Unlock()

			client.SendMessage(MsgWelcome, map[string]interface{}{
				"session_id": client.SessionID,
				"codec":      client.Codec.Name(),
				"config":     r.Config,
			})
			// late joiners get the full picture, then deltas
			if snap, ok := r.GameLoop.Snapshot(); ok {
				client.SendMessage(MsgSnapshot, snap)
			}
			log.Printf("Room %s: client %s connected (%s)", r.ID, client.SessionID, client.Codec.Name())

		case client := <-r.Unregister:
			r.Mutex.Lock()
			if _, ok := r.Clients[client]; ok {
				delete(r.Clients, client)
				close(client.Send)
			}
			r.Mutex.Unlock()

		case events := <-r.GameLoop.EventChan:
			r.broadcast(events)

		case err := <-errc:
			return err
		}
	}
}

// broadcast encodes the batch once per codec and queues it on every client.
func (r *Room) broadcast(events []logic.Event) {
	frames := make(map[string][]byte, 2)

	r.Mutex.RLock()
	defer r.Mutex.RUnlock()
	for client := range r.Clients {
		name := client.Codec.Name()
		b, ok := frames[name]
		if !ok {
			var err error
			b, err = client.Codec.Marshal(Message{Type: MsgEvents, Payload: events})
			if err != nil {
				log.Printf("Room %s: encode events: %v", r.ID, err)
				continue
			}
			frames[name] = b
		}
		select {
		case client.Send <- b:
		default:
		}
	}
}

func (r *Room) closeClients() {
	r.Mutex.Lock()
	defer r.Mutex.Unlock()
	for client := range r.Clients {
		delete(r.Clients, client)
		close(client.Send)
	}
}
