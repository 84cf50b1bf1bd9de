package compress

// NoOpCodec passes payloads through untouched. Useful for debugging archive
// contents and for baseline benchmarks.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// Compress returns the input slice as-is, without copying.
func (NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input slice as-is, without copying.
func (NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
