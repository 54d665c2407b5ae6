package trackerudp

import (
	"encoding/binary"
	"fmt"

	"github.com/hanekawa-tracker/hanekawa-go/internal/store"
)

// ParseRequest dispatches on packet length and the fixed action field to
// decode one of the three request shapes. Grounded on
// hanekawa-udp/src/lib.rs's parse_request, which tries connect, then
// announce, then scrape via an alt() combinator; here the action integer
// (present in all three layouts at the same offset once the protocol id or
// connection id prefix is accounted for) picks the branch directly instead
// of backtracking.
func ParseRequest(data []byte) (Request, error) {
	if len(data) < 16 {
		return nil, fmt.Errorf("trackerudp: packet too short (%d bytes)", len(data))
	}

	// The action integer sits at the same offset (bytes 8-12) in all three
	// request shapes, whether the preceding 8 bytes are the connect
	// protocol-id constant or an arbitrary connection_id.
	action := int32(binary.BigEndian.Uint32(data[8:12]))

	switch action {
	case actionConnect:
		if pid := binary.BigEndian.Uint64(data[0:8]); pid != ProtocolID {
			return nil, fmt.Errorf("trackerudp: bad protocol id %#x", pid)
		}
		return ConnectRequest{TransactionID: int32(binary.BigEndian.Uint32(data[12:16]))}, nil
	case actionAnnounce:
		return parseAnnounceRequest(data)
	case actionScrape:
		return parseScrapeRequest(data)
	default:
		return nil, fmt.Errorf("trackerudp: unrecognized action %d", action)
	}
}

const announceRequestFixedLen = 8 + 4 + 4 + 20 + 20 + 8 + 8 + 8 + 4 + 4 + 4 + 4 + 2

func parseAnnounceRequest(data []byte) (AnnounceRequest, error) {
	if len(data) < announceRequestFixedLen {
		return AnnounceRequest{}, fmt.Errorf("trackerudp: announce request too short (%d bytes)", len(data))
	}

	var req AnnounceRequest
	req.ConnectionID = int64(binary.BigEndian.Uint64(data[0:8]))
	req.TransactionID = int32(binary.BigEndian.Uint32(data[12:16]))
	copy(req.InfoHash[:], data[16:36])
	copy(req.PeerID[:], data[36:56])
	req.Downloaded = int64(binary.BigEndian.Uint64(data[56:64]))
	req.Left = int64(binary.BigEndian.Uint64(data[64:72]))
	req.Uploaded = int64(binary.BigEndian.Uint64(data[72:80]))

	switch binary.BigEndian.Uint32(data[80:84]) {
	case 1:
		req.Event = store.EventCompleted
	case 2:
		req.Event = store.EventStarted
	case 3:
		req.Event = store.EventStopped
	default:
		req.Event = store.EventNone
	}

	if ip := int32(binary.BigEndian.Uint32(data[84:88])); ip != 0 {
		req.IPAddress = &ip
	}
	req.Key = int32(binary.BigEndian.Uint32(data[88:92]))
	if nw := int32(binary.BigEndian.Uint32(data[92:96])); nw != -1 {
		req.NumWant = &nw
	}
	req.Port = int16(binary.BigEndian.Uint16(data[96:98]))

	ext, err := parseExtensions(data[98:])
	if err != nil {
		return AnnounceRequest{}, err
	}
	req.Extensions = ext

	return req, nil
}

func parseScrapeRequest(data []byte) (ScrapeRequest, error) {
	rest := data[16:]
	if len(rest) == 0 || len(rest)%20 != 0 {
		return ScrapeRequest{}, fmt.Errorf("trackerudp: scrape request info-hash block is not a multiple of 20 bytes")
	}

	hashes := make([]store.InfoHash, 0, len(rest)/20)
	for i := 0; i < len(rest); i += 20 {
		var ih store.InfoHash
		copy(ih[:], rest[i:i+20])
		hashes = append(hashes, ih)
	}

	return ScrapeRequest{
		ConnectionID:  int64(binary.BigEndian.Uint64(data[0:8])),
		TransactionID: int32(binary.BigEndian.Uint32(data[12:16])),
		InfoHashes:    hashes,
	}, nil
}

// parseExtensions reads BEP 41 trailing options: a NOP byte (0x01), a
// three-part (id, length, data) option, repeated, optionally terminated by
// a single End-of-Options byte (0x00). Unlike the bencode parser, trailing
// unparsed bytes are not an error here: BEP 41 options are themselves the
// tail of the packet, so "nothing left" and "hit the terminator" both mean
// "done".
func parseExtensions(data []byte) ([]Extension, error) {
	var exts []Extension
	i := 0
	for i < len(data) {
		switch data[i] {
		case 0x00:
			return exts, nil
		case 0x01:
			exts = append(exts, Extension{Kind: ExtensionNop})
			i++
		default:
			if i+2 > len(data) {
				return nil, fmt.Errorf("trackerudp: truncated extension option")
			}
			id := data[i]
			length := int(data[i+1])
			i += 2
			if i+length > len(data) {
				return nil, fmt.Errorf("trackerudp: extension option length exceeds packet")
			}
			payload := string(data[i : i+length])
			i += length
			if id == 2 {
				exts = append(exts, Extension{Kind: ExtensionURLData, Data: payload})
			} else {
				exts = append(exts, Extension{Kind: ExtensionUnknown, ID: id, Data: payload})
			}
		}
	}
	return exts, nil
}

// EncodeResponse appends the wire encoding of resp to buf and returns the
// result, mirroring hanekawa-udp/src/lib.rs's encode_response.
func EncodeResponse(resp Response, buf []byte) []byte {
	switch r := resp.(type) {
	case ConnectResponse:
		buf = binary.BigEndian.AppendUint32(buf, uint32(actionConnect))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.TransactionID))
		buf = binary.BigEndian.AppendUint64(buf, uint64(r.ConnectionID))
	case AnnounceResponse:
		buf = binary.BigEndian.AppendUint32(buf, uint32(actionAnnounce))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.TransactionID))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.Interval))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.Leechers))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.Seeders))
		for _, p := range r.Peers {
			buf = binary.BigEndian.AppendUint32(buf, uint32(p.IP))
			buf = binary.BigEndian.AppendUint16(buf, uint16(p.Port))
		}
	case ScrapeResponse:
		buf = binary.BigEndian.AppendUint32(buf, uint32(actionScrape))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.TransactionID))
		for _, d := range r.Data {
			buf = binary.BigEndian.AppendUint32(buf, uint32(d.Seeders))
			buf = binary.BigEndian.AppendUint32(buf, uint32(d.Completed))
			buf = binary.BigEndian.AppendUint32(buf, uint32(d.Leechers))
		}
	case ErrorResponse:
		buf = binary.BigEndian.AppendUint32(buf, uint32(actionError))
		buf = binary.BigEndian.AppendUint32(buf, uint32(r.TransactionID))
		buf = append(buf, r.Message...)
	}
	return buf
}
