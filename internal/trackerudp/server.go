package trackerudp

import (
	"context"
	"errors"
	"log/slog"
	"net"
)

// Server runs the BEP 15 UDP listener loop, mirroring
// original_source/hanekawa-server/src/udp_tracker/mod.rs's start function:
// read one packet, parse it, dispatch, write one response.
type Server struct {
	conn   *net.UDPConn
	svc    *Service
	logger *slog.Logger
}

// Listen binds addr and returns a Server ready to Run.
func Listen(addr string, svc *Service, logger *slog.Logger) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	return &Server{conn: conn, svc: svc, logger: logger}, nil
}

// Close releases the listening socket.
func (s *Server) Close() error {
	return s.conn.Close()
}

// Run reads and answers packets until ctx is canceled or the socket is
// closed. Any other read error is logged and reading continues.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.conn.Close()
	}()

	buf := make([]byte, 2048)
	for {
		n, raddr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("trackerudp: read", "error", err)
			continue
		}

		packet := make([]byte, n)
		copy(packet, buf[:n])
		go s.handle(ctx, packet, raddr)
	}
}

func (s *Server) handle(ctx context.Context, packet []byte, raddr *net.UDPAddr) {
	req, err := ParseRequest(packet)
	if err != nil {
		s.logger.Warn("trackerudp: malformed packet", "error", err, "from", raddr)
		return
	}

	var resp Response
	switch r := req.(type) {
	case ConnectRequest:
		resp = ConnectResponse{TransactionID: r.TransactionID, ConnectionID: connectionIDFor(raddr)}
	case AnnounceRequest:
		ar, err := s.svc.Announce(ctx, r, raddr.IP)
		if err != nil {
			s.logger.Error("trackerudp: announce", "error", err)
			resp = ErrorResponse{TransactionID: r.TransactionID, Message: "internal error"}
		} else {
			resp = ar
		}
	case ScrapeRequest:
		sr, err := s.svc.Scrape(ctx, r)
		if err != nil {
			s.logger.Error("trackerudp: scrape", "error", err)
			resp = ErrorResponse{TransactionID: r.TransactionID, Message: "internal error"}
		} else {
			resp = sr
		}
	}

	out := EncodeResponse(resp, nil)
	if _, err := s.conn.WriteToUDP(out, raddr); err != nil {
		s.logger.Error("trackerudp: write", "error", err)
	}
}

// connectionIDFor returns the connection id handed to a caller; it ignores
// the caller's address and always returns the same value. The original
// hands out a connection id without documenting its derivation
// (BEP 15 only requires the tracker to recognize a connection id it
// issued); a fixed per-process value is sufficient for a prototype, and
// the wire layout is what every other component here is grounded on.
func connectionIDFor(_ *net.UDPAddr) int64 {
	return 0x0102030405060708
}
