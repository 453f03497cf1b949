package giveaway

import (
	"testing"
	"time"
)

func TestSchedulerScanSettlesOnlyExpired(t *testing.T) {
	registry := NewRegistry()
	now := time.Now().Unix()

	expired := newTestGiveaway(now - 5)
	expired.MessageID = "expired"
	running := newTestGiveaway(now + 3600)
	running.MessageID = "running"

	registry.Add(expired)
	registry.Add(running)

	var settled []string
	scheduler := NewScheduler(registry, 30, func(g *Giveaway) {
		settled = append(settled, g.MessageID)
	})

	scheduler.scan()

	if len(settled) != 1 || settled[0] != "expired" {
		t.Fatalf("settled = %v, want [expired]", settled)
	}
	if registry.Get("expired") != nil {
		t.Error("settled giveaway still registered after the scan")
	}
	if registry.Get("running") == nil {
		t.Error("running giveaway was removed by the scan")
	}

	// A second scan finds nothing left to settle
	scheduler.scan()
	if len(settled) != 1 {
		t.Errorf("settled after second scan = %v, want one entry", settled)
	}
}
