package trackerudp

import (
	"context"
	"net"
	"testing"

	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
)

func TestServiceAnnounceExcludesCaller(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewService(s, 1800, 3600)
	ctx := context.Background()
	ih := store.InfoHash{1}

	caller := AnnounceRequest{
		InfoHash: ih, PeerID: store.PeerID{1}, Port: 6881, Left: 0,
	}
	if _, err := svc.Announce(ctx, caller, net.ParseIP("127.0.0.1")); err != nil {
		t.Fatalf("Announce (caller): %v", err)
	}

	other := AnnounceRequest{
		InfoHash: ih, PeerID: store.PeerID{2}, Port: 6882, Left: 50,
	}
	resp, err := svc.Announce(ctx, other, net.ParseIP("10.0.0.2"))
	if err != nil {
		t.Fatalf("Announce (other): %v", err)
	}

	if len(resp.Peers) != 1 {
		t.Fatalf("got %d peers, want 1 (caller excluded)", len(resp.Peers))
	}
	if resp.Peers[0].Port != 6881 {
		t.Errorf("Port = %d, want 6881", resp.Peers[0].Port)
	}
}

func TestServiceScrapePreservesRequestOrder(t *testing.T) {
	s := store.NewMemoryStore()
	svc := NewService(s, 1800, 3600)
	ctx := context.Background()

	ihA, ihB := store.InfoHash{0xA}, store.InfoHash{0xB}
	if err := s.UpdatePeerAnnounce(ctx, store.Announce{InfoHash: ihA, PeerID: store.PeerID{1}, IP: net.ParseIP("1.1.1.1"), Left: 0}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resp, err := svc.Scrape(ctx, ScrapeRequest{InfoHashes: []store.InfoHash{ihB, ihA}})
	if err != nil {
		t.Fatalf("Scrape: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("got %d entries, want 2", len(resp.Data))
	}
	if resp.Data[0].Seeders != 0 {
		t.Errorf("Data[0] (ihB, empty swarm) Seeders = %d, want 0", resp.Data[0].Seeders)
	}
	if resp.Data[1].Seeders != 1 {
		t.Errorf("Data[1] (ihA) Seeders = %d, want 1", resp.Data[1].Seeders)
	}
}
