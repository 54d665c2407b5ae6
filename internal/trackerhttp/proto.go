package trackerhttp

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
)

// AnnounceRequest is a parsed BEP 3 announce query. Grounded on
// original_source/hanekawa/src/http_tracker/proto.rs's AnnounceRequest,
// with info_hash/peer_id kept as raw bytes (the wire form, url-decoded by
// net/url already) rather than the original's String, since Go has no
// concept of treating arbitrary bytes as a UTF-8 string for free.
type AnnounceRequest struct {
	InfoHash   store.InfoHash
	PeerID     store.PeerID
	Port       uint16
	Uploaded   uint64
	Downloaded uint64
	Left       uint64
	Event      store.Event
	Compact    bool
}

// ScrapeRequest is a parsed BEP 48 scrape query: one or more info_hash
// parameters.
type ScrapeRequest struct {
	InfoHashes []store.InfoHash
}

func parseAnnounceRequest(q url.Values) (AnnounceRequest, error) {
	var req AnnounceRequest
	req.Compact = true // BEP 23 default, matching the original's compact.unwrap_or(1) == 1

	ih, err := parseInfoHashParam(q, "info_hash")
	if err != nil {
		return req, err
	}
	req.InfoHash = ih

	pid := q.Get("peer_id")
	if len(pid) != 20 {
		return req, fmt.Errorf("trackerhttp: peer_id must be 20 bytes, got %d", len(pid))
	}
	copy(req.PeerID[:], pid)

	port, err := strconv.ParseUint(q.Get("port"), 10, 16)
	if err != nil {
		return req, fmt.Errorf("trackerhttp: invalid port: %w", err)
	}
	req.Port = uint16(port)

	req.Uploaded, _ = strconv.ParseUint(q.Get("uploaded"), 10, 64)
	req.Downloaded, _ = strconv.ParseUint(q.Get("downloaded"), 10, 64)
	req.Left, _ = strconv.ParseUint(q.Get("left"), 10, 64)

	switch q.Get("event") {
	case "started":
		req.Event = store.EventStarted
	case "completed":
		req.Event = store.EventCompleted
	case "stopped":
		req.Event = store.EventStopped
	}

	if c := q.Get("compact"); c != "" {
		req.Compact = c == "1"
	}

	return req, nil
}

func parseScrapeRequest(q url.Values) (ScrapeRequest, error) {
	raw := q["info_hash"]
	if len(raw) == 0 {
		return ScrapeRequest{}, fmt.Errorf("trackerhttp: at least one info_hash is required")
	}

	hashes := make([]store.InfoHash, 0, len(raw))
	for _, s := range raw {
		if len(s) != 20 {
			return ScrapeRequest{}, fmt.Errorf("trackerhttp: info_hash must be 20 bytes, got %d", len(s))
		}
		var ih store.InfoHash
		copy(ih[:], s)
		hashes = append(hashes, ih)
	}
	return ScrapeRequest{InfoHashes: hashes}, nil
}

func parseInfoHashParam(q url.Values, name string) (store.InfoHash, error) {
	s := q.Get(name)
	if len(s) != 20 {
		return store.InfoHash{}, fmt.Errorf("trackerhttp: %s must be 20 bytes, got %d", name, len(s))
	}
	var ih store.InfoHash
	copy(ih[:], s)
	return ih, nil
}

// remoteIP extracts the caller's address from an http.Request's RemoteAddr,
// the same "true source IP, ignoring proxies" shortcut the original takes
// (see the TODO above ConnectInfo's use in hanekawa-server/src/http_tracker/
// mod.rs).
func remoteIP(remoteAddr string) net.IP {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return net.ParseIP(remoteAddr)
	}
	return net.ParseIP(host)
}
