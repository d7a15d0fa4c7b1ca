package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, 4)}
}

// TestHubPublishDispatchesToSubscribers covers spec §6's push-channel read
// surface: a client only receives events on channels it has subscribed to.
func TestHubPublishDispatchesToSubscribers(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := newTestClient()
	h.Register(c)
	h.Subscribe(c, ChannelOrderSubmitted)

	h.Publish(ChannelOrderSubmitted, map[string]interface{}{"order_id": "abc"})

	select {
	case msg := <-c.send:
		require.Contains(t, string(msg), ChannelOrderSubmitted)
		require.Contains(t, string(msg), "abc")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published event")
	}
}

func TestHubPublishSkipsUnsubscribedChannels(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := newTestClient()
	h.Register(c)
	h.Subscribe(c, ChannelOrderSubmitted)

	h.Publish(ChannelBatchFinalized, map[string]interface{}{"batch_id": 1})

	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message on unsubscribed channel: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := newTestClient()
	h.Register(c)
	h.Subscribe(c, ChannelOrderSubmitted)
	h.Unregister(c)

	// Give the dispatch loop a moment to process the unregister before
	// asserting the channel is closed.
	require.Eventually(t, func() bool {
		_, ok := <-c.send
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestHubUnsubscribeRemovesChannel(t *testing.T) {
	h := NewHub()
	go h.Run()
	defer h.Stop()

	c := newTestClient()
	h.Register(c)
	h.Subscribe(c, ChannelOrderSubmitted)
	h.Unsubscribe(c, ChannelOrderSubmitted)

	h.Publish(ChannelOrderSubmitted, map[string]interface{}{"order_id": "xyz"})

	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message after unsubscribe: %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
