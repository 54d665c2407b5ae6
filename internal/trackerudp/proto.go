// Package trackerudp is the BEP 15 UDP tracker front-end: a fixed-width,
// big-endian binary protocol wholly independent of the bencode codec (the
// original's hanekawa-udp crate has its own nom-based parser, with no
// dependency on hanekawa-bencode; this package mirrors that independence
// with encoding/binary in place of a parser-combinator library, since none
// appears in the example pack).
//
// Grounded on original_source/hanekawa-udp/src/lib.rs (parse_request/
// encode_response), original_source/hanekawa-udp/src/extensions.rs (BEP 41),
// and original_source/hanekawa/src/udp_tracker/proto.rs (the request/
// response types).
package trackerudp

import "github.com/hanekawa-tracker/hanekawa-go/internal/store"

// ProtocolID is the BEP 15 magic constant a ConnectRequest must carry.
const ProtocolID uint64 = 0x41727101980

const (
	actionConnect  int32 = 0
	actionAnnounce int32 = 1
	actionScrape   int32 = 2
	actionError    int32 = 3
)

// ExtensionKind selects how an announce request's trailing BEP 41
// extension entry is interpreted.
type ExtensionKind int

const (
	ExtensionNop ExtensionKind = iota
	ExtensionURLData
	ExtensionUnknown
)

// Extension is one parsed BEP 41 option.
type Extension struct {
	Kind ExtensionKind
	ID   byte   // set when Kind == ExtensionUnknown
	Data string // set when Kind == ExtensionURLData or ExtensionUnknown
}

// ConnectRequest asks for a connection_id to use in subsequent requests.
type ConnectRequest struct {
	TransactionID int32
}

// ConnectResponse answers a ConnectRequest.
type ConnectResponse struct {
	TransactionID int32
	ConnectionID  int64
}

// AnnounceRequest is a BEP 15 announce, the binary-protocol sibling of
// trackerhttp's AnnounceRequest.
type AnnounceRequest struct {
	ConnectionID  int64
	TransactionID int32
	InfoHash      store.InfoHash
	PeerID        store.PeerID
	Downloaded    int64
	Left          int64
	Uploaded      int64
	Event         store.Event
	IPAddress     *int32 // nil means "use the packet's source address"
	Key           int32
	NumWant       *int32 // nil means "tracker default"
	Port          int16
	Extensions    []Extension
}

// AnnounceResponse answers an AnnounceRequest with the interval and a
// compact peer list (4-byte IPv4 address + 2-byte port each; BEP 15 has no
// IPv6 variant).
type AnnounceResponse struct {
	TransactionID int32
	Interval      int32
	Leechers      int32
	Seeders       int32
	Peers         []AnnouncePeer
}

// AnnouncePeer is one compact peer entry in an AnnounceResponse.
type AnnouncePeer struct {
	IP   int32
	Port int16
}

// ScrapeRequest asks for swarm statistics across one or more info-hashes.
type ScrapeRequest struct {
	ConnectionID  int64
	TransactionID int32
	InfoHashes    []store.InfoHash
}

// ScrapeResponse answers a ScrapeRequest, one entry per requested
// info-hash, in the same order.
type ScrapeResponse struct {
	TransactionID int32
	Data          []ScrapeData
}

// ScrapeData is one info-hash's swarm statistics.
type ScrapeData struct {
	Seeders   int32
	Completed int32
	Leechers  int32
}

// ErrorResponse reports a malformed or rejected request back to the
// client, echoing its transaction id where known.
type ErrorResponse struct {
	TransactionID int32
	Message       string
}

// Request is any one of the three request shapes this protocol accepts.
type Request interface {
	isRequest()
}

func (ConnectRequest) isRequest()  {}
func (AnnounceRequest) isRequest() {}
func (ScrapeRequest) isRequest()   {}

// Response is any one of the four response shapes this protocol can send.
type Response interface {
	isResponse()
}

func (ConnectResponse) isResponse()  {}
func (AnnounceResponse) isResponse() {}
func (ScrapeResponse) isResponse()   {}
func (ErrorResponse) isResponse()    {}
