//go:build gozstd

package compress

import "github.com/valyala/gozstd"

// ZstdCodec compresses payloads with Zstandard through the cgo libzstd
// bindings. Selected with the gozstd build tag; the pure-Go variant in
// zstd.go is the default.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// Compress compresses the input at the default libzstd level.
func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses a zstd frame.
func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
