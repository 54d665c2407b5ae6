// Package metainfo binds bencoded .torrent files to typed Go structs and
// computes their info-hash.
//
// This is the data-binding layer the core bencode package's generic
// adapter exists to support, made concrete for the one document shape a
// BitTorrent tracker actually needs to understand: you cannot announce
// or scrape against a swarm without an info-hash. Parse decodes the "info"
// dictionary into a bencode.Value, re-emits that Value in the key order it
// was read in (no canonicalization) for hashing, and binds the typed Info
// struct from those bytes.
package metainfo

import (
	"crypto/sha1"
	"fmt"

	"github.com/hanekawa-tracker/hanekawa-go"
)

// Info is the BEP 3 "info" dictionary of a .torrent file: the part whose
// SHA-1 digest is the swarm's info-hash.
type Info struct {
	Name        string `bencode:"name"`
	PieceLength int64  `bencode:"piece length"`
	Pieces      []byte `bencode:"pieces"`
	Length      int64  `bencode:"length,omitempty"`
	Files       []File `bencode:"files,omitempty"`
	Private     int    `bencode:"private,omitempty"`
}

// File describes one file of a multi-file torrent.
type File struct {
	Length int64    `bencode:"length"`
	Path   []string `bencode:"path"`
}

// MetaInfo is a parsed .torrent file.
type MetaInfo struct {
	Announce     string   `bencode:"announce"`
	AnnounceList [][]string `bencode:"announce-list,omitempty"`
	Comment      string   `bencode:"comment,omitempty"`
	CreatedBy    string   `bencode:"created by,omitempty"`
	Info         Info     `bencode:"info"`

	// rawInfo holds the exact bytes the "info" dict decoded from, so
	// InfoHash can hash precisely what the publisher signed rather than a
	// Go re-encoding of it (field order, or the absence of a key this
	// struct doesn't know about, would otherwise change the hash).
	rawInfo []byte
}

// Parse decodes a .torrent file.
func Parse(data []byte) (*MetaInfo, error) {
	var raw struct {
		Announce     string     `bencode:"announce"`
		AnnounceList [][]string `bencode:"announce-list,omitempty"`
		Comment      string     `bencode:"comment,omitempty"`
		CreatedBy    string     `bencode:"created by,omitempty"`
		Info         bencode.Value `bencode:"info"`
	}
	if err := bencode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("metainfo: parse: %w", err)
	}

	infoBytes, err := bencode.MarshalValue(raw.Info)
	if err != nil {
		return nil, fmt.Errorf("metainfo: re-encode info dict: %w", err)
	}

	var info Info
	if err := bencode.Unmarshal(infoBytes, &info); err != nil {
		return nil, fmt.Errorf("metainfo: bind info dict: %w", err)
	}

	return &MetaInfo{
		Announce:     raw.Announce,
		AnnounceList: raw.AnnounceList,
		Comment:      raw.Comment,
		CreatedBy:    raw.CreatedBy,
		Info:         info,
		rawInfo:      infoBytes,
	}, nil
}

// InfoHash returns the SHA-1 digest of the exact bencoded "info"
// dictionary this MetaInfo was parsed from.
func (m *MetaInfo) InfoHash() [20]byte {
	return sha1.Sum(m.rawInfo)
}
