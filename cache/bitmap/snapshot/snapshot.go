// Package snapshot wraps serialized sets in a checksummed, optionally compressed
// envelope and caches decoded sets by envelope hash.
package snapshot

import (
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/zeebo/xxh3"
)

var (
	ErrInvalidSnapshot    = errors.New("snapshot: invalid snapshot")
	ErrChecksumMismatch   = errors.New("snapshot: checksum mismatch")
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

// Envelope layout, little endian:
//
//	[0:4]   magic
//	[4]     compression
//	[5:8]   reserved
//	[8:12]  raw payload length
//	[12:16] stored payload length
//	[16:24] xxh3 of the raw payload
const (
	magic      = uint32(0x4e534252) // "RBSN"
	headerSize = 24
)

// Encode marshals m and wraps it in an envelope. The payload is stored
// uncompressed when c does not make it smaller.
func Encode(m encoding.BinaryMarshaler, c Compression) ([]byte, error) {
	raw, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("snapshot: payload of %d bytes too large", len(raw))
	}

	stored, err := compress(raw, c)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored, c = raw, CompressionNone
	}

	out := make([]byte, headerSize+len(stored))
	binary.LittleEndian.PutUint32(out[0:], magic)
	out[4] = byte(c)
	binary.LittleEndian.PutUint32(out[8:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(stored)))
	binary.LittleEndian.PutUint64(out[16:], xxh3.Hash(raw))
	copy(out[headerSize:], stored)
	return out, nil
}

// Decode validates the envelope in data and unmarshals its payload into u.
func Decode(data []byte, u encoding.BinaryUnmarshaler) error {
	raw, err := open(data)
	if err != nil {
		return err
	}
	return u.UnmarshalBinary(raw)
}

// Info describes an envelope without decoding the payload.
type Info struct {
	Compression Compression
	RawSize     int
	StoredSize  int
	Checksum    uint64
}

func Inspect(data []byte) (Info, error) {
	if len(data) < headerSize {
		return Info{}, fmt.Errorf("%w: %d bytes is shorter than the header", ErrInvalidSnapshot, len(data))
	}
	if binary.LittleEndian.Uint32(data[0:]) != magic {
		return Info{}, fmt.Errorf("%w: bad magic", ErrInvalidSnapshot)
	}
	info := Info{
		Compression: Compression(data[4]),
		RawSize:     int(binary.LittleEndian.Uint32(data[8:])),
		StoredSize:  int(binary.LittleEndian.Uint32(data[12:])),
		Checksum:    binary.LittleEndian.Uint64(data[16:]),
	}
	if info.StoredSize != len(data)-headerSize {
		return Info{}, fmt.Errorf("%w: stored length %d, have %d bytes", ErrInvalidSnapshot, info.StoredSize, len(data)-headerSize)
	}
	return info, nil
}

func open(data []byte) ([]byte, error) {
	info, err := Inspect(data)
	if err != nil {
		return nil, err
	}
	raw, err := decompress(data[headerSize:], info.Compression, info.RawSize)
	if err != nil {
		return nil, err
	}
	if len(raw) != info.RawSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", ErrInvalidSnapshot, len(raw), info.RawSize)
	}
	if xxh3.Hash(raw) != info.Checksum {
		return nil, ErrChecksumMismatch
	}
	return raw, nil
}
