// Package trackerhttp is the BEP 3 (announce) / BEP 48 (scrape) HTTP
// front-end: it parses tracker query strings, calls into Service, and
// writes bencoded responses.
//
// Grounded on original_source/hanekawa-server/src/http_tracker/mod.rs (the
// axum Router and handler functions) and http/encode.rs (the Bencode
// response wrapper), adapted to net/http since no HTTP framework appears
// anywhere in the example pack (see DESIGN.md).
package trackerhttp

import (
	"log/slog"
	"net/http"

	"github.com/hanekawa-tracker/hanekawa-go"
)

const contentTypeBencode = "application/octet-stream"

// NewHandler returns an http.Handler serving /announce and /scrape over
// svc.
func NewHandler(svc *Service, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/announce", announceHandler(svc, logger))
	mux.HandleFunc("/scrape", scrapeHandler(svc, logger))
	return mux
}

func announceHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseAnnounceRequest(r.URL.Query())
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		result, err := svc.Announce(r.Context(), req, remoteIP(r.RemoteAddr))
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		writeValue(w, logger, encodeAnnounceResponse(result, req.Compact))
	}
}

func scrapeHandler(svc *Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseScrapeRequest(r.URL.Query())
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		stats, err := svc.Scrape(r.Context(), req)
		if err != nil {
			writeFailure(w, logger, err)
			return
		}

		writeValue(w, logger, encodeScrapeResponse(stats))
	}
}

func writeValue(w http.ResponseWriter, logger *slog.Logger, v bencode.Value) {
	encoded, err := bencode.MarshalValue(v)
	if err != nil {
		logger.Error("trackerhttp: encode response", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeBencode)
	w.Write(encoded)
}

func writeFailure(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Warn("trackerhttp: request failed", "error", err)
	encoded, encErr := bencode.MarshalValue(encodeFailure(err.Error()))
	if encErr != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeBencode)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write(encoded)
}
