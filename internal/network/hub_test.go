package network

import (
	"os"
	"testing"

	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcaster_SendTo(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("s1")

	if !b.SendTo("s1", api.ServerMessage{Type: api.MessageSnapshot}) {
		t.Fatal("SendTo registered session returned false")
	}
	if got := <-ch; got.Type != api.MessageSnapshot {
		t.Errorf("got %q, want %q", got.Type, api.MessageSnapshot)
	}
	if b.SendTo("missing", api.ServerMessage{}) {
		t.Error("SendTo unknown session returned true")
	}
}

func TestBroadcaster_Register(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("s1")
	fresh := b.Register("s1")

	if _, ok := <-old; ok {
		t.Error("old channel must be closed on re-register")
	}
	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount = %d, want 1", b.SubscriberCount())
	}

	b.Unregister("s1")
	if _, ok := <-fresh; ok {
		t.Error("channel must be closed on unregister")
	}
	if b.HasSubscriber("s1") {
		t.Error("s1 still subscribed")
	}
	// Повторный Unregister не паникует
	b.Unregister("s1")
}

func TestBroadcaster_FullChannel(t *testing.T) {
	b := NewBroadcaster()
	b.Register("s1")

	for i := 0; i < subscriberBuffer; i++ {
		if !b.SendTo("s1", api.ServerMessage{Type: api.MessageSnapshot}) {
			t.Fatalf("message %d dropped before buffer is full", i)
		}
	}
	if b.SendTo("s1", api.ServerMessage{Type: api.MessageSnapshot}) {
		t.Error("SendTo into full channel returned true")
	}
}
