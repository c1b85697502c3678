package pak

import (
	"bytes"
	"crypto/sha1"
	"io"

	"github.com/google/uuid"

	"github.com/korvie/gopak/compress"
)

// compressionBlockSize is the chunk size a Writer splits a compressed
// entry's payload into. UnrealPak fixes this at 64KiB; values must fit in
// the entry flag word's 6-bit block-size field (spec'd as blockSize/2048),
// so this is not configurable.
const compressionBlockSize = 0x10000

// Writer builds a new archive from scratch, writing each file's entry
// header immediately followed by its payload, then a final index and
// footer once every file has been added.
type Writer struct {
	w          io.WriteSeeker
	version    Version
	mountPoint string
	key        *Key
	variant    PakVariant

	index            *index
	compressionSlots []Compression
}

// Option configures a Writer at construction time.
type Option func(*Writer)

// WithKey enables encryption: every file written afterward (and, for
// versions that support it, the index itself) is encrypted under key.
func WithKey(key *Key) Option {
	return func(wr *Writer) { wr.key = key }
}

// WithVariant selects the vendor-specific encrypted-extent policy. The
// default is VariantStandard (encrypt the whole payload).
func WithVariant(variant PakVariant) Option {
	return func(wr *Writer) { wr.variant = variant }
}

// NewWriter begins a new archive of the given Version. Files are added
// with WriteFile and the archive is sealed with Finish.
func NewWriter(w io.WriteSeeker, version Version, mountPoint string, opts ...Option) *Writer {
	wr := &Writer{
		w:          w,
		version:    version,
		mountPoint: mountPoint,
		index:      newIndexV1(),
	}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// WriteFile compresses (if requested), encrypts (if a key is set), and
// appends data as a new entry at the writer's current stream position,
// then records it in the index under path.
func (wr *Writer) WriteFile(path string, data []byte, compression Compression) error {
	offset, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return ioErr(err)
	}

	e, payload, err := wr.buildEntry(path, data, compression, uint64(offset))
	if err != nil {
		return err
	}
	e.Offset = uint64(offset)

	if err := writeEntry(wr.w, wr.version, LocationData, e, wr.compressionSlots); err != nil {
		return err
	}
	if _, err := wr.w.Write(payload); err != nil {
		return ioErr(err)
	}

	if err := wr.index.addEntry(path, e); err != nil {
		return err
	}
	return nil
}

// buildEntry compresses data in compressionBlockSize chunks (when
// compression is not CompressionNone), hashes the result, encrypts the
// variant's leading extent of it when a key is set, and returns the
// populated Entry together with its final on-disk payload bytes.
func (wr *Writer) buildEntry(path string, data []byte, compression Compression, fileOffset uint64) (*Entry, []byte, error) {
	uncompressedSize := uint64(len(data))
	encrypted := wr.key != nil

	hasher := sha1.New()

	var payload []byte
	var blockSizes []int
	var blockCompressionSize uint32

	if compression != CompressionNone && uncompressedSize > 0 {
		blockCompressionSize = compressionBlockSize
		kind, err := toCompressKind(compression)
		if err != nil {
			return nil, nil, err
		}
		for off := uint64(0); off < uncompressedSize; off += compressionBlockSize {
			end := off + compressionBlockSize
			if end > uncompressedSize {
				end = uncompressedSize
			}
			chunk, err := compress.Compress(kind, data[off:end])
			if err != nil {
				return nil, nil, compressionFailedErr(KindCompressionFailed, compression, err)
			}
			if encrypted {
				chunk = padZeros16(chunk)
			}
			hasher.Write(chunk)
			blockSizes = append(blockSizes, len(chunk))
			payload = append(payload, chunk...)
		}
	} else {
		compression = CompressionNone
		hasher.Write(data)
		payload = append(payload, data...)
	}

	if encrypted {
		extent := wr.variant.EncryptedExtent(path, uint64(len(payload)))
		if extent >= uint64(len(payload)) {
			payload = padZeros16(payload)
			extent = uint64(len(payload))
		}
		if err := wr.key.encryptECB(payload[:extent]); err != nil {
			return nil, nil, err
		}
	}

	var hash [20]byte
	copy(hash[:], hasher.Sum(nil))

	e := &Entry{
		Compressed:           uint64(len(payload)),
		Uncompressed:         uncompressedSize,
		Compression:          compression,
		Hash:                 hash,
		Encrypted:            encrypted,
		CompressionBlockSize: blockCompressionSize,
	}

	if compression != CompressionNone {
		if _, err := wr.assignCompressionSlot(compression); err != nil {
			return nil, nil, err
		}
	}

	if len(blockSizes) > 0 {
		blockCount := uint32(len(blockSizes))
		pos := entrySerializedSize(wr.version, compression, blockCount)
		if wr.version.Major() < RelativeChunkOffsets {
			pos += fileOffset
		}
		blocks := make([]Block, 0, blockCount)
		for _, sz := range blockSizes {
			start := pos
			pos += uint64(sz)
			blocks = append(blocks, Block{Start: start, End: pos})
		}
		e.Blocks = blocks
	}

	return e, payload, nil
}

// assignCompressionSlot finds c's existing footer compression-name slot or
// appends a new one, growing wr.compressionSlots. It refuses to add a slot
// for versions that predate FNameBasedCompression, where no such table
// exists on disk.
func (wr *Writer) assignCompressionSlot(c Compression) (uint32, error) {
	for i, s := range wr.compressionSlots {
		if s == c {
			return uint32(i), nil
		}
	}
	if wr.version.Major() < FNameBasedCompression {
		if c == CompressionZlib {
			return 0, nil
		}
		return 0, unsupportedErr("this version only supports Zlib compression")
	}
	wr.compressionSlots = append(wr.compressionSlots, c)
	return uint32(len(wr.compressionSlots) - 1), nil
}

// padZeros16 returns data padded with trailing zero bytes to the next
// multiple of 16, copying only when padding is actually needed.
func padZeros16(data []byte) []byte {
	padded := int(align16(uint64(len(data))))
	if padded == len(data) {
		return data
	}
	out := make([]byte, padded)
	copy(out, data)
	return out
}

// Finish writes the index and footer, sealing the archive. The Writer
// must not be used afterward.
func (wr *Writer) Finish() error {
	indexOffset, err := wr.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return ioErr(err)
	}

	var idxBuf bytes.Buffer
	if err := writeIndex(&idxBuf, wr.version, wr.mountPoint, wr.index, wr.compressionSlots); err != nil {
		return err
	}
	indexBytes := idxBuf.Bytes()

	hasher := sha1.New()
	hasher.Write(indexBytes)
	var indexHash [20]byte
	copy(indexHash[:], hasher.Sum(nil))

	footer := &Footer{
		Magic:        pakMagic,
		Version:      wr.version,
		VersionMajor: wr.version.Major(),
		IndexOffset:  uint64(indexOffset),
		Hash:         indexHash,
		Compression:  wr.compressionSlots,
	}

	encryptIndex := wr.key != nil && wr.version.Major() >= IndexEncryption
	if encryptIndex {
		indexBytes = padZeros16(indexBytes)
		if err := wr.key.encryptECB(indexBytes); err != nil {
			return err
		}
		footer.Encrypted = true
		id, err := uuid.NewRandom()
		if err != nil {
			return ioErr(err)
		}
		footer.EncryptionUUID = &id
	}
	footer.IndexSize = uint64(len(indexBytes))

	if _, err := wr.w.Write(indexBytes); err != nil {
		return ioErr(err)
	}
	return writeFooter(wr.w, footer)
}
