package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(hub *Hub) *Client {
	return &Client{hub: hub, send: make(chan []byte, 16)}
}

func TestHub_ClientCountTracksRegistrations(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(hub)
	b := newTestClient(hub)

	hub.register <- a
	hub.register <- b
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 5*time.Millisecond)

	hub.unregister <- a
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestHub_ClientCountSafeWhileHubMutates(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			c := newTestClient(hub)
			hub.register <- c
			hub.Publish("catalog.tick", i)
			hub.unregister <- c
		}
	}()

	// hammer the counter from this goroutine while the hub churns; the race
	// detector flags any unsynchronized read of the client map
	for {
		select {
		case <-done:
			assert.Eventually(t, func() bool { return hub.ClientCount() == 0 },
				time.Second, 5*time.Millisecond)
			return
		default:
			_ = hub.ClientCount()
		}
	}
}

func TestHub_BroadcastReachesEveryClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient(hub)
	b := newTestClient(hub)
	hub.register <- a
	hub.register <- b
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 5*time.Millisecond)

	hub.Publish("brand.created", map[string]string{"slug": "acme"})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.send:
			assert.Contains(t, string(msg), `"event":"brand.created"`)
		case <-time.After(time.Second):
			t.Fatal("client never received the broadcast")
		}
	}
}
