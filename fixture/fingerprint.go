package fixture

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the dataset's name, dimensions and the exact bit
// patterns of every design and response value. Two datasets fingerprint
// equal exactly when a fit over them is guaranteed bit-identical.
func Fingerprint(d *Dataset) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(d.Name)

	n, p := d.X.Dims()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(p))
	_, _ = h.Write(buf[:])

	for _, v := range d.X.RawData() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	for _, v := range d.Y {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
