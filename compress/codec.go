// Package compress provides the payload codecs used by linfit fixture
// archives.
//
// Fixture CSV payloads are highly repetitive (fixed-width %.18e columns),
// so even fast codecs reach useful ratios. Zstd gives the best ratio, S2
// and LZ4 trade ratio for speed, and the no-op codec keeps archives
// inspectable with a text editor.
package compress

import (
	"fmt"

	"github.com/arloliu/linfit/errs"
)

// Type identifies a compression codec in archive frames. The byte values
// are part of the on-disk format and must not be renumbered.
type Type byte

const (
	// TypeNone stores payloads uncompressed.
	TypeNone Type = 0
	// TypeZstd selects Zstandard compression.
	TypeZstd Type = 1
	// TypeS2 selects S2 (Snappy-compatible) compression.
	TypeS2 Type = 2
	// TypeLZ4 selects LZ4 block compression.
	TypeLZ4 Type = 3
)

// String returns the codec name.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZstd:
		return "zstd"
	case TypeS2:
		return "s2"
	case TypeLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", byte(t))
	}
}

// Codec compresses and decompresses byte payloads.
//
// Implementations are stateless or internally pooled and safe for
// concurrent use. Returned slices are newly allocated and owned by the
// caller; inputs are never modified.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// New returns the codec for the given type identifier.
func New(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return NoOpCodec{}, nil
	case TypeZstd:
		return ZstdCodec{}, nil
	case TypeS2:
		return S2Codec{}, nil
	case TypeLZ4:
		return LZ4Codec{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", errs.ErrUnknownCodec, byte(t))
	}
}
