package store

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	peer       Peer
	uploaded   uint64
	downloaded uint64
	left       uint64
	event      Event
	updatedAt  time.Time
}

// MemoryStore is an in-process PeerStore, useful for tests and for running
// the tracker without a Postgres instance handy.
type MemoryStore struct {
	mu sync.RWMutex
	// keyed by info hash, then by peer id.
	swarms map[InfoHash]map[PeerID]memoryRecord
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{swarms: make(map[InfoHash]map[PeerID]memoryRecord)}
}

func (s *MemoryStore) UpdatePeerAnnounce(_ context.Context, a Announce) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	swarm, ok := s.swarms[a.InfoHash]
	if !ok {
		swarm = make(map[PeerID]memoryRecord)
		s.swarms[a.InfoHash] = swarm
	}

	if a.Event == EventStopped {
		delete(swarm, a.PeerID)
		return nil
	}

	swarm[a.PeerID] = memoryRecord{
		peer:       Peer{PeerID: a.PeerID, IP: a.IP, Port: a.Port},
		uploaded:   a.Uploaded,
		downloaded: a.Downloaded,
		left:       a.Left,
		event:      a.Event,
		updatedAt:  a.Timestamp,
	}
	return nil
}

func (s *MemoryStore) GetPeers(_ context.Context, infoHash InfoHash, activeSince time.Time) ([]Peer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	swarm := s.swarms[infoHash]
	peers := make([]Peer, 0, len(swarm))
	for _, rec := range swarm {
		if rec.updatedAt.Before(activeSince) {
			continue
		}
		peers = append(peers, rec.peer)
	}
	return peers, nil
}

func (s *MemoryStore) GetStatistics(_ context.Context, infoHashes []InfoHash) (map[InfoHash]Statistics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[InfoHash]Statistics, len(infoHashes))
	for _, ih := range infoHashes {
		var stats Statistics
		for _, rec := range s.swarms[ih] {
			if rec.left == 0 {
				stats.Complete++
			} else {
				stats.Incomplete++
			}
			if rec.event == EventCompleted {
				stats.Downloaded++
			}
		}
		out[ih] = stats
	}
	return out, nil
}
