package store

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a PeerStore backed by a "peer_announces" table, the same
// shape the original queries against (see the SQL in
// original_source/hanekawa-storage/src/peer.rs: an upsert keyed on
// (info_hash, peer_id), a windowed SELECT for GetPeers, and a
// FILTER-aggregated SELECT for GetStatistics).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and returns a ready PostgresStore.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) UpdatePeerAnnounce(ctx context.Context, a Announce) error {
	const query = `
INSERT INTO peer_announces(
  info_hash, peer_id, ip, port, uploaded, downloaded, remaining, event, last_update_ts
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (info_hash, peer_id) DO UPDATE
  SET ip = $3, port = $4, uploaded = $5, downloaded = $6, remaining = $7,
      event = $8, last_update_ts = $9
`
	_, err := s.pool.Exec(ctx, query,
		a.InfoHash[:], a.PeerID[:], a.IP.String(), int32(a.Port),
		int64(a.Uploaded), int64(a.Downloaded), int64(a.Left),
		eventName(a.Event), a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("store: update peer announce: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetPeers(ctx context.Context, infoHash InfoHash, activeSince time.Time) ([]Peer, error) {
	const query = `
SELECT peer_id, ip, port
FROM peer_announces
WHERE info_hash = $1 AND last_update_ts >= $2
`
	rows, err := s.pool.Query(ctx, query, infoHash[:], activeSince)
	if err != nil {
		return nil, fmt.Errorf("store: get peers: %w", err)
	}
	defer rows.Close()

	var peers []Peer
	for rows.Next() {
		var peerID []byte
		var ip string
		var port int32
		if err := rows.Scan(&peerID, &ip, &port); err != nil {
			return nil, fmt.Errorf("store: scan peer: %w", err)
		}
		var pid PeerID
		copy(pid[:], peerID)
		peers = append(peers, Peer{PeerID: pid, IP: net.ParseIP(ip), Port: uint16(port)})
	}
	return peers, rows.Err()
}

func (s *PostgresStore) GetStatistics(ctx context.Context, infoHashes []InfoHash) (map[InfoHash]Statistics, error) {
	const query = `
SELECT
  info_hash,
  COUNT(*) FILTER (WHERE remaining = 0) AS complete,
  COUNT(*) FILTER (WHERE remaining <> 0) AS incomplete,
  COUNT(*) FILTER (WHERE event = 'completed') AS downloaded
FROM peer_announces
WHERE info_hash = ANY($1)
GROUP BY info_hash
`
	ihBytes := make([][]byte, len(infoHashes))
	for i, ih := range infoHashes {
		ihBytes[i] = ih[:]
	}

	rows, err := s.pool.Query(ctx, query, ihBytes)
	if err != nil {
		return nil, fmt.Errorf("store: get statistics: %w", err)
	}
	defer rows.Close()

	out := make(map[InfoHash]Statistics, len(infoHashes))
	for rows.Next() {
		var infoHash []byte
		var stats Statistics
		if err := rows.Scan(&infoHash, &stats.Complete, &stats.Incomplete, &stats.Downloaded); err != nil {
			return nil, fmt.Errorf("store: scan statistics: %w", err)
		}
		var ih InfoHash
		copy(ih[:], infoHash)
		out[ih] = stats
	}
	return out, rows.Err()
}

func eventName(e Event) string {
	switch e {
	case EventStarted:
		return "started"
	case EventCompleted:
		return "completed"
	case EventStopped:
		return "stopped"
	default:
		return "none"
	}
}

