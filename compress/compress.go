// Package compress implements the handful of block-compression schemes a
// PAK archive payload may be framed with. It mirrors the shape of a
// typical compression-backend registry: a small Kind enum, one
// Compressor/Decompressor per scheme, and a byte-slice-in/byte-slice-out
// call convention so callers never need to know which library backs a
// given Kind.
package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Kind identifies a compression scheme. It is distinct from pak.Compression
// so this package has no dependency on the archive codec; the pak package
// converts between the two at its boundary.
type Kind int

const (
	None Kind = iota
	Zlib
	Gzip
	Zstd
	LZ4
	Oodle
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Zlib:
		return "Zlib"
	case Gzip:
		return "Gzip"
	case Zstd:
		return "Zstd"
	case LZ4:
		return "LZ4"
	case Oodle:
		return "Oodle"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Decompress inflates src, which is known to expand to exactly dstLen
// bytes, per kind.
func Decompress(kind Kind, src []byte, dstLen int) ([]byte, error) {
	switch kind {
	case None:
		return src, nil
	case Zlib:
		return decompressZlib(src, dstLen)
	case Gzip:
		return decompressGzip(src, dstLen)
	case Zstd:
		return decompressZstd(src, dstLen)
	case LZ4:
		return decompressLZ4(src, dstLen)
	case Oodle:
		return decompressOodle(src, dstLen)
	default:
		return nil, fmt.Errorf("compress: unknown kind %s", kind)
	}
}

// Compress deflates src per kind. Used only by writers; readers only ever
// call Decompress.
func Compress(kind Kind, src []byte) ([]byte, error) {
	switch kind {
	case None:
		return src, nil
	case Zlib:
		return compressZlib(src)
	case Gzip:
		return compressGzip(src)
	case Zstd:
		return compressZstd(src)
	case LZ4:
		return compressLZ4(src)
	case Oodle:
		return nil, fmt.Errorf("compress: writing Oodle payloads is not supported")
	default:
		return nil, fmt.Errorf("compress: unknown kind %s", kind)
	}
}

func decompressZlib(src []byte, dstLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out := make([]byte, 0, dstLen)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressZlib(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressGzip(src []byte, dstLen int) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	out := make([]byte, 0, dstLen)
	buf := bytes.NewBuffer(out)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressGzip(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

func getZstdDecoder() (*zstd.Decoder, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil)
	})
	return zstdDecoder, zstdDecoderErr
}

func decompressZstd(src []byte, dstLen int) ([]byte, error) {
	dec, err := getZstdDecoder()
	if err != nil {
		return nil, err
	}
	return dec.DecodeAll(src, make([]byte, 0, dstLen))
}

func compressZstd(src []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}

// lz4BufferGrowLimit bounds the retry loop in compressLZ4, which doubles
// the destination buffer after each failed CompressBlock call; once the
// buffer reaches this size the error is returned. decompressLZ4 makes a
// single attempt into a buffer of the expected length.
const lz4BufferGrowLimit = 128 << 20

func decompressLZ4(src []byte, dstLen int) ([]byte, error) {
	dst := make([]byte, dstLen)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

func compressLZ4(src []byte) ([]byte, error) {
	var c lz4.Compressor
	size := lz4.CompressBlockBound(len(src))
	for {
		dst := make([]byte, size)
		n, err := c.CompressBlock(src, dst)
		if err == nil {
			if n == 0 && len(src) > 0 {
				// incompressible input: lz4 signals this by returning n=0
				return nil, fmt.Errorf("compress: lz4 block incompressible")
			}
			return dst[:n], nil
		}
		if size >= lz4BufferGrowLimit {
			return nil, err
		}
		size *= 2
	}
}

var (
	oodleMu      sync.Mutex
	oodleDecode  OodleFunc
	oodleInitErr error
)

// OodleFunc matches the shape of Oodle's native decompress entry point:
// given a compressed buffer and a scratch buffer sized to the known
// uncompressed length, it fills the scratch buffer and returns the
// number of bytes written.
type OodleFunc func(compressed, scratch []byte) (int, error)

// SetOodleDecompressor registers the function used to service Oodle
// payloads. Oodle is not redistributable, so this package never links it
// directly; a caller that has obtained the library elsewhere plugs it in
// here before opening any archive containing Oodle-compressed entries.
// With no function registered, every Oodle decompress call fails. A
// failure is sticky: once the registered function returns an error, every
// later Oodle decompress call returns that same error without calling it
// again, until SetOodleDecompressor is called again.
func SetOodleDecompressor(f OodleFunc) {
	oodleMu.Lock()
	defer oodleMu.Unlock()
	oodleDecode = f
	oodleInitErr = nil
}

func decompressOodle(src []byte, dstLen int) ([]byte, error) {
	oodleMu.Lock()
	f := oodleDecode
	initErr := oodleInitErr
	oodleMu.Unlock()

	if initErr != nil {
		return nil, initErr
	}
	if f == nil {
		return nil, fmt.Errorf("compress: no Oodle decompressor registered")
	}

	dst := make([]byte, dstLen)
	n, err := f(src, dst)
	if err != nil {
		oodleMu.Lock()
		oodleInitErr = err
		oodleMu.Unlock()
		return nil, err
	}
	return dst[:n], nil
}
