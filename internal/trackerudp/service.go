package trackerudp

import (
	"context"
	"encoding/binary"
	"net"
	"time"

	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
)

// Service answers BEP 15 requests against a store.PeerStore, the UDP
// sibling of trackerhttp.Service. BEP 15 has no IPv6 peer encoding, so
// non-IPv4 peers are simply omitted from announce responses.
type Service struct {
	peers               store.PeerStore
	announceInterval    uint32
	peerActivityTimeout uint32
}

// NewService builds a Service over peers.
func NewService(peers store.PeerStore, announceInterval, peerActivityTimeout uint32) *Service {
	return &Service{peers: peers, announceInterval: announceInterval, peerActivityTimeout: peerActivityTimeout}
}

// Announce records req's state (attributing it to senderIP when req carries
// no explicit override, per BEP 15's ip_address=0 meaning "use the packet
// source") and returns the swarm's other IPv4 members.
func (s *Service) Announce(ctx context.Context, req AnnounceRequest, senderIP net.IP) (AnnounceResponse, error) {
	ip := senderIP
	if req.IPAddress != nil {
		ip = ipFromInt32(*req.IPAddress)
	}

	now := time.Now()
	err := s.peers.UpdatePeerAnnounce(ctx, store.Announce{
		InfoHash:   req.InfoHash,
		PeerID:     req.PeerID,
		IP:         ip,
		Port:       uint16(req.Port),
		Uploaded:   uint64(req.Uploaded),
		Downloaded: uint64(req.Downloaded),
		Left:       uint64(req.Left),
		Event:      req.Event,
		Timestamp:  now,
	})
	if err != nil {
		return AnnounceResponse{}, err
	}

	activeSince := now.Add(-time.Duration(s.peerActivityTimeout) * time.Second)
	peers, err := s.peers.GetPeers(ctx, req.InfoHash, activeSince)
	if err != nil {
		return AnnounceResponse{}, err
	}

	stats, err := s.peers.GetStatistics(ctx, []store.InfoHash{req.InfoHash})
	if err != nil {
		return AnnounceResponse{}, err
	}
	st := stats[req.InfoHash]

	resp := AnnounceResponse{
		TransactionID: req.TransactionID,
		Interval:      int32(s.announceInterval),
		Leechers:      int32(st.Incomplete),
		Seeders:       int32(st.Complete),
	}
	for _, p := range peers {
		if p.IP.Equal(ip) {
			continue
		}
		v4 := p.IP.To4()
		if v4 == nil {
			continue
		}
		resp.Peers = append(resp.Peers, AnnouncePeer{IP: int32(binary.BigEndian.Uint32(v4)), Port: int16(p.Port)})
	}
	return resp, nil
}

// Scrape reports swarm statistics for req's info-hashes, in the same order
// they were requested, matching BEP 15's positional (not dict-keyed)
// response layout.
func (s *Service) Scrape(ctx context.Context, req ScrapeRequest) (ScrapeResponse, error) {
	stats, err := s.peers.GetStatistics(ctx, req.InfoHashes)
	if err != nil {
		return ScrapeResponse{}, err
	}

	resp := ScrapeResponse{TransactionID: req.TransactionID}
	for _, ih := range req.InfoHashes {
		st := stats[ih]
		resp.Data = append(resp.Data, ScrapeData{
			Seeders:   int32(st.Complete),
			Completed: int32(st.Downloaded),
			Leechers:  int32(st.Incomplete),
		})
	}
	return resp, nil
}

func ipFromInt32(v int32) net.IP {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, uint32(v))
	return net.IP(b)
}
