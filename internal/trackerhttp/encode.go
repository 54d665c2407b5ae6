package trackerhttp

import (
	"encoding/binary"

	"github.com/hanekawa-tracker/hanekawa-go"
	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
)

// encodeAnnounceResponse builds the bencode dict a BEP 3 announce call
// returns, choosing the compact (BEP 23) or explicit peer list encoding.
// Built directly against the bencode.Value/Map API rather than through the
// reflect-based Marshal, mirroring the original's hand-written
// AnnounceResponse/PeerData "untagged enum" serialization in
// http_tracker/proto.rs, which Go's struct tags cannot express directly.
func encodeAnnounceResponse(result AnnounceResult, compact bool) bencode.Value {
	d := bencode.NewMap[bencode.Value]()
	d.Insert(bencode.Bytes("interval"), bencode.IntValue(int64(result.Interval)))
	d.Insert(bencode.Bytes("peers"), encodePeerData(result.Peers, compact))
	d.Insert(bencode.Bytes("peers6"), encodePeerData(result.Peers6, compact))
	return bencode.DictValue(d)
}

func encodePeerData(peers []store.Peer, compact bool) bencode.Value {
	if compact {
		buf := make([]byte, 0, len(peers)*18)
		for _, p := range peers {
			ip := p.IP.To4()
			if ip == nil {
				ip = p.IP.To16()
			}
			buf = append(buf, ip...)
			buf = binary.BigEndian.AppendUint16(buf, p.Port)
		}
		return bencode.BytesValue(bencode.Bytes(buf))
	}

	list := make([]bencode.Value, len(peers))
	for i, p := range peers {
		d := bencode.NewMap[bencode.Value]()
		d.Insert(bencode.Bytes("peer id"), bencode.BytesValue(bencode.Bytes(p.PeerID[:])))
		d.Insert(bencode.Bytes("ip"), bencode.BytesValue(bencode.Bytes(p.IP.String())))
		d.Insert(bencode.Bytes("port"), bencode.IntValue(int64(p.Port)))
		list[i] = bencode.DictValue(d)
	}
	return bencode.ListValue(list)
}

// encodeScrapeResponse builds the bencode dict a BEP 48 scrape call
// returns: a "files" dict keyed by the raw 20-byte info-hash.
func encodeScrapeResponse(stats map[store.InfoHash]store.Statistics) bencode.Value {
	files := bencode.NewMap[bencode.Value]()
	for ih, s := range stats {
		fd := bencode.NewMap[bencode.Value]()
		fd.Insert(bencode.Bytes("complete"), bencode.IntValue(int64(s.Complete)))
		fd.Insert(bencode.Bytes("downloaded"), bencode.IntValue(int64(s.Downloaded)))
		fd.Insert(bencode.Bytes("incomplete"), bencode.IntValue(int64(s.Incomplete)))
		files.Insert(bencode.Bytes(ih[:]), bencode.DictValue(fd))
	}
	d := bencode.NewMap[bencode.Value]()
	d.Insert(bencode.Bytes("files"), bencode.DictValue(files))
	return bencode.DictValue(d)
}

// encodeFailure builds the "failure reason" dict BEP 3 specifies for
// reporting an error to the client, mirroring response.rs's Failure
// wrapper.
func encodeFailure(reason string) bencode.Value {
	d := bencode.NewMap[bencode.Value]()
	d.Insert(bencode.Bytes("failure reason"), bencode.BytesValue(bencode.Bytes(reason)))
	return bencode.DictValue(d)
}
