package compress

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/linfit/errs"
)

// csvLikePayload mimics fixture CSV content: fixed-width scientific notation
// with repeated structure, the shape all archive payloads have.
func csvLikePayload(rows int) []byte {
	rng := rand.New(rand.NewSource(42))
	var sb strings.Builder
	sb.WriteString("x0,x1,x2,y\n")
	for i := 0; i < rows; i++ {
		for j := 0; j < 4; j++ {
			if j > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString("1.234567890123456789e+0")
			sb.WriteByte(byte('0' + rng.Intn(10)))
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

func TestCodecRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"csv":    csvLikePayload(200),
		"short":  []byte("n=100,p=3"),
		"binary": {0x00, 0xff, 0x00, 0xff, 0x01, 0x02, 0x03},
	}

	for _, ct := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := New(ct)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(payload, decompressed),
					"round trip mismatch: got %d bytes, want %d", len(decompressed), len(payload))
			})
		}
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for _, ct := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := New(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCodecCompressesRepetitiveData(t *testing.T) {
	payload := csvLikePayload(1000)

	for _, ct := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := New(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload),
				"repetitive CSV payload should shrink under %s", ct)
		})
	}
}

func TestNewUnknownCodec(t *testing.T) {
	_, err := New(Type(0xAA))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "none", TypeNone.String())
	require.Equal(t, "zstd", TypeZstd.String())
	require.Equal(t, "s2", TypeS2.String())
	require.Equal(t, "lz4", TypeLZ4.String())
	require.Equal(t, "unknown(170)", Type(0xAA).String())
}

func TestZstdDecompressCorruptInput(t *testing.T) {
	codec := ZstdCodec{}
	_, err := codec.Decompress([]byte("not a zstd frame"))
	require.Error(t, err)
}
