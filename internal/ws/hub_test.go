package ws

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.rooms == nil {
		t.Error("NewHub() rooms map is nil")
	}
}

func TestHub_Online_UnknownRoom(t *testing.T) {
	hub := NewHub()
	if online := hub.Online(uuid.New()); online != 0 {
		t.Errorf("Online() for unknown room = %d, want 0", online)
	}
}

func TestHub_GetRoom_Lazy(t *testing.T) {
	hub := NewHub()
	roomID := uuid.New()

	rh := hub.GetRoom(roomID)
	if rh == nil {
		t.Fatal("GetRoom() returned nil")
	}
	if again := hub.GetRoom(roomID); again != rh {
		t.Error("GetRoom() should return the same RoomHub for the same ID")
	}
}

func TestRoomHub_RegisterUnregister(t *testing.T) {
	rh := NewRoomHub(uuid.New())
	client := &Client{room: rh, userID: uuid.New(), send: make(chan []byte, 256)}

	go rh.run()

	rh.register <- client
	time.Sleep(10 * time.Millisecond)

	if rh.Online() != 1 {
		t.Errorf("Online() after register = %d, want 1", rh.Online())
	}

	rh.unregister <- client
	time.Sleep(10 * time.Millisecond)

	if rh.Online() != 0 {
		t.Errorf("Online() after unregister = %d, want 0", rh.Online())
	}
}

func TestRoomHub_Broadcast(t *testing.T) {
	rh := NewRoomHub(uuid.New())

	clients := make([]*Client, 3)
	for i := range clients {
		clients[i] = &Client{room: rh, userID: uuid.New(), send: make(chan []byte, 256)}
	}

	go rh.run()

	for _, c := range clients {
		rh.register <- c
	}
	time.Sleep(20 * time.Millisecond)

	// drain join events so the broadcast frame is easy to find
	for _, c := range clients {
		for len(c.send) > 0 {
			<-c.send
		}
	}

	testMsg := []byte(`{"type":"message","message":"hello"}`)
	rh.broadcast <- testMsg

	var wg sync.WaitGroup
	received := make([]bool, len(clients))
	for i, c := range clients {
		wg.Add(1)
		go func(idx int, client *Client) {
			defer wg.Done()
			select {
			case msg := <-client.send:
				if string(msg) == string(testMsg) {
					received[idx] = true
				}
			case <-time.After(100 * time.Millisecond):
			}
		}(i, c)
	}
	wg.Wait()

	for i, r := range received {
		if !r {
			t.Errorf("Client %d did not receive broadcast message", i)
		}
	}
}

func TestHub_Publish(t *testing.T) {
	hub := NewHub()
	roomID := uuid.New()

	rh := hub.GetRoom(roomID)
	client := &Client{room: rh, userID: uuid.New(), send: make(chan []byte, 256)}
	rh.register <- client
	time.Sleep(10 * time.Millisecond)
	for len(client.send) > 0 {
		<-client.send
	}

	hub.Publish(roomID, map[string]any{"type": "message", "message": "published"})

	select {
	case frame := <-client.send:
		var evt map[string]any
		if err := json.Unmarshal(frame, &evt); err != nil {
			t.Fatalf("published frame is not JSON: %v", err)
		}
		if evt["type"] != "message" {
			t.Errorf("event type = %v, want message", evt["type"])
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("subscriber did not receive published event")
	}
}

func TestHub_MultipleRooms(t *testing.T) {
	hub := NewHub()
	roomA := uuid.New()
	roomB := uuid.New()

	rhA := hub.GetRoom(roomA)
	rhB := hub.GetRoom(roomB)

	rhA.register <- &Client{room: rhA, userID: uuid.New(), send: make(chan []byte, 256)}
	rhB.register <- &Client{room: rhB, userID: uuid.New(), send: make(chan []byte, 256)}
	time.Sleep(20 * time.Millisecond)

	if hub.Online(roomA) != 1 {
		t.Errorf("Online(roomA) = %d, want 1", hub.Online(roomA))
	}
	if hub.Online(roomB) != 1 {
		t.Errorf("Online(roomB) = %d, want 1", hub.Online(roomB))
	}
}

func TestRoomHub_ConcurrentRegister(t *testing.T) {
	rh := NewRoomHub(uuid.New())
	go rh.run()

	var wg sync.WaitGroup
	numClients := 10
	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rh.register <- &Client{room: rh, userID: uuid.New(), send: make(chan []byte, 256)}
		}()
	}
	wg.Wait()
	time.Sleep(50 * time.Millisecond)

	if rh.Online() != numClients {
		t.Errorf("Online() after concurrent register = %d, want %d", rh.Online(), numClients)
	}
}
