package model

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"
)

// Frame is the one binary envelope shared by persistence (world/game
// snapshots) and the network (internal/protocol messages): a
// fixed-width header, an LZ4-compressed payload, and a BLAKE3
// fingerprint trailer that catches truncation and corruption (not a
// cryptographic signature — message authenticity is out of scope).
type Frame struct {
	Kind     uint16
	Origin   PeerID
	SendTick uint64
	Payload  []byte // uncompressed; EncodeFrame compresses it, DecodeFrame restores it
}

// frameFingerprintSize is len(blake3.Sum256(...)).
const frameFingerprintSize = 32

// EncodeFrame lays out f as kind(2) + origin(16) + tick(8) +
// payloadLen(4) + lz4(payload), then appends a BLAKE3 fingerprint of
// everything before it.
func EncodeFrame(f Frame) ([]byte, error) {
	compressed, err := compressLZ4(f.Payload)
	if err != nil {
		return nil, fmt.Errorf("compress frame payload: %w", err)
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.BigEndian, f.Kind); err != nil {
		return nil, err
	}
	if _, err := buf.Write(f.Origin[:]); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, f.SendTick); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(compressed))); err != nil {
		return nil, err
	}
	if _, err := buf.Write(compressed); err != nil {
		return nil, err
	}

	sum := blake3.Sum256(buf.Bytes())
	buf.Write(sum[:])
	return buf.Bytes(), nil
}

// DecodeFrame verifies the trailing fingerprint before trusting
// anything else in data, then reverses EncodeFrame.
func DecodeFrame(data []byte) (Frame, error) {
	if len(data) < frameFingerprintSize {
		return Frame{}, fmt.Errorf("frame too short: %d bytes", len(data))
	}
	body := data[:len(data)-frameFingerprintSize]
	trailer := data[len(data)-frameFingerprintSize:]

	want := blake3.Sum256(body)
	if !bytes.Equal(want[:], trailer) {
		return Frame{}, fmt.Errorf("frame fingerprint mismatch")
	}

	r := bytes.NewReader(body)
	var f Frame
	if err := binary.Read(r, binary.BigEndian, &f.Kind); err != nil {
		return Frame{}, err
	}
	if _, err := io.ReadFull(r, f.Origin[:]); err != nil {
		return Frame{}, err
	}
	if err := binary.Read(r, binary.BigEndian, &f.SendTick); err != nil {
		return Frame{}, err
	}
	var payloadLen uint32
	if err := binary.Read(r, binary.BigEndian, &payloadLen); err != nil {
		return Frame{}, err
	}
	compressed := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return Frame{}, err
	}
	payload, err := decompressLZ4(compressed)
	if err != nil {
		return Frame{}, fmt.Errorf("decompress frame payload: %w", err)
	}
	f.Payload = payload
	return f, nil
}

func compressLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressLZ4(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zr := lz4.NewReader(bytes.NewReader(src))
	if _, err := io.Copy(&buf, zr); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
