// Package store is the tracker's peer repository: it records each swarm
// member's latest announce and answers the queries the HTTP and UDP
// front-ends need to build announce/scrape responses.
//
// Grounded on original_source/hanekawa-storage/src/peer.rs's sqlx-backed
// PeerRepository and the trait it implements
// (original_source/hanekawa-common/src/repository/peer.rs): the three
// operations here (UpdatePeerAnnounce, GetPeers, GetStatistics) are the
// same shape, generalized from a Rust trait object to a Go interface.
package store

import (
	"context"
	"net"
	"time"
)

// Event is the BitTorrent announce event a client reports.
type Event int

const (
	EventNone Event = iota
	EventStarted
	EventCompleted
	EventStopped
)

// InfoHash is the 20-byte SHA-1 digest identifying a swarm.
type InfoHash [20]byte

// PeerID is the 20-byte client-chosen peer identifier.
type PeerID [20]byte

// Peer is one swarm member, as returned to other peers in an announce
// response.
type Peer struct {
	PeerID PeerID
	IP     net.IP
	Port   uint16
}

// Announce is the data a client's announce request contributes, bound into
// the store's update call. It mirrors UpdatePeerAnnounce in
// hanekawa-common/src/repository/peer.rs field for field.
type Announce struct {
	InfoHash  InfoHash
	PeerID    PeerID
	IP        net.IP
	Port      uint16
	Uploaded  uint64
	Downloaded uint64
	Left      uint64
	Event     Event
	Timestamp time.Time
}

// Statistics is the aggregate swarm data a scrape response reports for one
// info-hash.
type Statistics struct {
	Complete   uint32
	Downloaded uint32
	Incomplete uint32
}

// PeerStore is the tracker's peer repository. ActiveSince on GetPeers bounds
// the query to peers whose last announce is at or after that time,
// mirroring the original's "active_after" window
// (peer_activity_timeout, computed by the caller).
type PeerStore interface {
	UpdatePeerAnnounce(ctx context.Context, a Announce) error
	GetPeers(ctx context.Context, infoHash InfoHash, activeSince time.Time) ([]Peer, error)
	GetStatistics(ctx context.Context, infoHashes []InfoHash) (map[InfoHash]Statistics, error)
}
