package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestComponentRegistry(t *testing.T) {
	registry := newComponentRegistry()

	called := false
	registry.Register("my_button", func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		called = true
	})

	handler, ok := registry.Get("my_button")
	if !ok {
		t.Fatal("registered handler not found")
	}
	handler(nil, nil)
	if !called {
		t.Error("handler was not invoked")
	}

	if _, ok := registry.Get("unknown"); ok {
		t.Error("lookup of unregistered id succeeded")
	}
}

func TestRelayRegistry(t *testing.T) {
	registry := newRelayRegistry()

	relay := &pendingRelay{userID: "u1", channelID: "c1"}
	registry.Add(relay)

	// Wrong user or channel does not match
	if got := registry.Take("u2", "c1"); got != nil {
		t.Error("Take matched the wrong user")
	}
	if got := registry.Take("u1", "c2"); got != nil {
		t.Error("Take matched the wrong channel")
	}

	if got := registry.Take("u1", "c1"); got != relay {
		t.Fatalf("Take = %v, want the registered relay", got)
	}

	// Taken relays are gone
	if got := registry.Take("u1", "c1"); got != nil {
		t.Error("relay still present after Take")
	}
	if registry.Drop(relay) {
		t.Error("Drop succeeded on an already-taken relay")
	}

	other := &pendingRelay{userID: "u1", channelID: "c1"}
	registry.Add(other)
	if !registry.Drop(other) {
		t.Error("Drop failed on a pending relay")
	}
}
