package trackerhttp

import (
	"context"
	"net"
	"time"

	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
)

// Service implements the BEP 3/48 announce and scrape operations. Grounded
// on original_source/hanekawa/src/http_tracker/service.rs's
// HttpTrackerService, dropping the info-hash allow/deny check (the admin
// subsystem it depends on is out of this rewrite's tracker-boundary scope).
type Service struct {
	peers               store.PeerStore
	announceInterval    uint32
	peerActivityTimeout uint32
}

// NewService builds a Service over peers, announcing announceInterval
// seconds to clients and considering a peer stale after
// peerActivityTimeout seconds of silence.
func NewService(peers store.PeerStore, announceInterval, peerActivityTimeout uint32) *Service {
	return &Service{peers: peers, announceInterval: announceInterval, peerActivityTimeout: peerActivityTimeout}
}

// AnnounceResult is what an announce call reports back to the wire
// encoder: the advertised interval plus the peer list, already split by IP
// family (separate peers/peers6 keys, per BEP 7).
type AnnounceResult struct {
	Interval uint32
	Peers    []store.Peer
	Peers6   []store.Peer
}

// Announce records the caller's state and returns the swarm's other
// members, excluding the caller itself.
func (s *Service) Announce(ctx context.Context, req AnnounceRequest, senderIP net.IP) (AnnounceResult, error) {
	now := time.Now()

	err := s.peers.UpdatePeerAnnounce(ctx, store.Announce{
		InfoHash:   req.InfoHash,
		PeerID:     req.PeerID,
		IP:         senderIP,
		Port:       req.Port,
		Uploaded:   req.Uploaded,
		Downloaded: req.Downloaded,
		Left:       req.Left,
		Event:      req.Event,
		Timestamp:  now,
	})
	if err != nil {
		return AnnounceResult{}, err
	}

	activeSince := now.Add(-time.Duration(s.peerActivityTimeout) * time.Second)
	peers, err := s.peers.GetPeers(ctx, req.InfoHash, activeSince)
	if err != nil {
		return AnnounceResult{}, err
	}

	result := AnnounceResult{Interval: s.announceInterval}
	for _, p := range peers {
		if p.IP.Equal(senderIP) {
			continue
		}
		if v4 := p.IP.To4(); v4 != nil {
			result.Peers = append(result.Peers, p)
		} else {
			result.Peers6 = append(result.Peers6, p)
		}
	}
	return result, nil
}

// Scrape reports swarm statistics for each requested info-hash.
func (s *Service) Scrape(ctx context.Context, req ScrapeRequest) (map[store.InfoHash]store.Statistics, error) {
	return s.peers.GetStatistics(ctx, req.InfoHashes)
}
