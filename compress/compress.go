// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package compress shrinks proof byte-images for storage and transport.
// Every compressed blob carries a trailing checksum digest that Decompress
// verifies in constant time before touching the frame.
package compress

import (
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/luxfi/zkmtd/hashing"
)

// Error reports a compression or decompression failure.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "compress: " + e.Reason
}

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
)

func codecs() (*zstd.Encoder, *zstd.Decoder) {
	codecOnce.Do(func() {
		encoder, _ = zstd.NewWriter(nil)
		decoder, _ = zstd.NewReader(nil)
	})
	return encoder, decoder
}

// checksum digests a compressed frame. Both directions go through here so
// the checksum domain has a single hashing site.
func checksum(frame []byte) hashing.Digest {
	return hashing.Hash(frame, hashing.DomainCompressionChecksum)
}

// Compress frames data with zstd and appends the checksum digest.
func Compress(data []byte) ([]byte, error) {
	enc, _ := codecs()
	if enc == nil {
		return nil, &Error{Reason: "encoder unavailable"}
	}
	frame := enc.EncodeAll(data, make([]byte, 0, len(data)/2+64))
	sum := checksum(frame)
	return append(frame, sum[:]...), nil
}

// Decompress verifies the trailing checksum and decodes the frame.
func Decompress(blob []byte) ([]byte, error) {
	if len(blob) < hashing.DigestSize {
		return nil, &Error{Reason: "blob too short"}
	}
	frame := blob[:len(blob)-hashing.DigestSize]
	var stored hashing.Digest
	copy(stored[:], blob[len(blob)-hashing.DigestSize:])
	if !hashing.CtEq32(checksum(frame), stored) {
		return nil, &Error{Reason: "checksum mismatch"}
	}
	_, dec := codecs()
	if dec == nil {
		return nil, &Error{Reason: "decoder unavailable"}
	}
	out, err := dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, &Error{Reason: "corrupt frame"}
	}
	return out, nil
}
