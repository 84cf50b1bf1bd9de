package fixture

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/arloliu/linfit/compress"
	"github.com/arloliu/linfit/errs"
)

// Archive format, all integers little endian:
//
//	[0:4]  magic "LFX1"
//	[4]    codec type byte
//	[5]    reserved, must be zero
//	then two frames, CSV payload first, metadata JSON second:
//	  uint32 compressed length, followed by that many payload bytes
var archiveMagic = [4]byte{'L', 'F', 'X', '1'}

const maxFramePayload = 1 << 30

// WriteArchive serializes the dataset into a single compressed archive.
// The CSV payload preserves full float64 precision, so reading the archive
// back yields a bit-identical dataset.
func WriteArchive(w io.Writer, d *Dataset, codecType compress.Type) error {
	codec, err := compress.New(codecType)
	if err != nil {
		return err
	}

	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, d.X, d.Y); err != nil {
		return fmt.Errorf("encode csv payload: %w", err)
	}

	metaBytes, err := json.Marshal(d.Meta)
	if err != nil {
		return fmt.Errorf("encode metadata payload: %w", err)
	}

	header := [6]byte{archiveMagic[0], archiveMagic[1], archiveMagic[2], archiveMagic[3], byte(codecType), 0}
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	if err := writeFrame(w, codec, csvBuf.Bytes()); err != nil {
		return fmt.Errorf("write csv frame: %w", err)
	}
	if err := writeFrame(w, codec, metaBytes); err != nil {
		return fmt.Errorf("write metadata frame: %w", err)
	}

	return nil
}

// ReadArchive parses an archive written by WriteArchive.
func ReadArchive(r io.Reader) (*Dataset, error) {
	var header [6]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header: %v", errs.ErrInvalidArchiveFormat, err)
	}
	if !bytes.Equal(header[:4], archiveMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidArchiveFormat, header[:4])
	}
	if header[5] != 0 {
		return nil, fmt.Errorf("%w: nonzero reserved byte %d", errs.ErrInvalidArchiveFormat, header[5])
	}

	codec, err := compress.New(compress.Type(header[4]))
	if err != nil {
		return nil, err
	}

	csvBytes, err := readFrame(r, codec)
	if err != nil {
		return nil, fmt.Errorf("read csv frame: %w", err)
	}
	metaBytes, err := readFrame(r, codec)
	if err != nil {
		return nil, fmt.Errorf("read metadata frame: %w", err)
	}

	x, y, err := ReadCSV(bytes.NewReader(csvBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArchiveFormat, err)
	}

	var meta Metadata
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("%w: bad metadata: %v", errs.ErrInvalidArchiveFormat, err)
	}

	return &Dataset{Name: meta.Name, X: x, Y: y, Meta: meta}, nil
}

func writeFrame(w io.Writer, codec compress.Codec, payload []byte) error {
	compressed, err := codec.Compress(payload)
	if err != nil {
		return err
	}
	if uint64(len(compressed)) > maxFramePayload {
		return fmt.Errorf("frame payload %d exceeds limit", len(compressed))
	}

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(compressed)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(compressed)

	return err
}

func readFrame(r io.Reader, codec compress.Codec) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: short frame length: %v", errs.ErrInvalidArchiveFormat, err)
	}
	size := binary.LittleEndian.Uint32(lenBuf[:])
	if size > maxFramePayload {
		return nil, fmt.Errorf("%w: frame length %d exceeds limit", errs.ErrInvalidArchiveFormat, size)
	}

	compressed := make([]byte, size)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("%w: short frame payload: %v", errs.ErrInvalidArchiveFormat, err)
	}

	payload, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidArchiveFormat, err)
	}

	return payload, nil
}
