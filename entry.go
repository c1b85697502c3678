package pak

import (
	"bytes"
	"io"

	"github.com/korvie/gopak/compress"
)

// EntryLocation tells Entry.write whether it is writing the full record
// that sits inline before a file's payload (Data) or the record stored in
// the index (Index). Before V10 only the offset field's on-disk value
// differs: inline entries write 0 for offset since their own position in
// the stream already supplies it. From V10 on, the Index form is the
// bit-packed encoded entry (writeEncodedEntry).
type EntryLocation int

const (
	LocationData EntryLocation = iota
	LocationIndex
)

// Entry is the metadata record for one archived file: its location,
// size, compression, optional block framing, and content hash.
type Entry struct {
	Offset               uint64
	Compressed           uint64
	Uncompressed         uint64
	Compression          Compression
	Timestamp            *uint64
	Hash                 [20]byte
	Blocks               []Block
	Encrypted            bool
	CompressionBlockSize uint32
}

// entrySerializedSize returns the on-disk byte length of a full (non-encoded)
// entry record for the given version, compression, and block count. Used
// by the writer to pre-compute block offsets before any bytes are
// written, and by readEncodedEntry to recover the offset of the payload
// immediately following a V2 encoded entry.
func entrySerializedSize(version Version, compression Compression, blockCount uint32) uint64 {
	var size uint64
	size += 8 // offset
	size += 8 // compressed
	size += 8 // uncompressed
	if version != V8A {
		size += 4
	} else {
		size += 1
	}
	if version.Major() == Initial {
		size += 8
	}
	size += 20 // hash
	if compression != CompressionNone {
		size += 4 + (8+8)*uint64(blockCount)
	}
	size += 1 // encrypted
	if version.Major() >= CompressionEncryption {
		size += 4
	}
	return size
}

// resolveCompressionCode turns the raw on-disk compression code into a
// symbolic Compression. Versions older than FNameBasedCompression wrote
// a handful of hard-coded Zlib strength presets with no other scheme
// available (legacyCompressionFromCode); from FNameBasedCompression on,
// the archive instead carries a footer compression-name table and the
// code is a 1-based index into it (0 meaning uncompressed).
func resolveCompressionCode(code uint32, slots []Compression) (Compression, error) {
	if slots == nil {
		return legacyCompressionFromCode(code), nil
	}
	if code == 0 {
		return CompressionNone, nil
	}
	i := int(code) - 1
	if i < 0 || i >= len(slots) {
		return CompressionNone, &Error{Kind: KindMalformedEntry}
	}
	return slots[i], nil
}

// compressionCode is resolveCompressionCode's inverse, used by the writer.
func compressionCode(c Compression, slots []Compression) (uint32, error) {
	if c == CompressionNone {
		return 0, nil
	}
	if slots == nil {
		if c == CompressionZlib {
			return 1, nil
		}
		return 0, unsupportedErr("legacy entry encoding only supports None/Zlib compression")
	}
	for i, s := range slots {
		if s == c {
			return uint32(i) + 1, nil
		}
	}
	return 0, unsupportedErr("compression kind has no footer slot assigned")
}

func readEntry(r io.Reader, version Version, slots []Compression) (*Entry, error) {
	offset, err := readU64(r)
	if err != nil {
		return nil, err
	}
	compressed, err := readU64(r)
	if err != nil {
		return nil, err
	}
	uncompressed, err := readU64(r)
	if err != nil {
		return nil, err
	}

	var code uint32
	if version == V8A {
		b, err := readU8(r)
		if err != nil {
			return nil, err
		}
		code = uint32(b)
	} else {
		code, err = readU32(r)
		if err != nil {
			return nil, err
		}
	}
	if version.Major() < FNameBasedCompression {
		slots = nil
	}
	compressionKind, err := resolveCompressionCode(code, slots)
	if err != nil {
		return nil, err
	}

	e := &Entry{
		Offset:       offset,
		Compressed:   compressed,
		Uncompressed: uncompressed,
		Compression:  compressionKind,
	}

	if version.Major() == Initial {
		ts, err := readU64(r)
		if err != nil {
			return nil, err
		}
		e.Timestamp = &ts
	}

	hash, err := readLen(r, 20)
	if err != nil {
		return nil, err
	}
	copy(e.Hash[:], hash)

	if version.Major() >= CompressionEncryption && compressionKind != CompressionNone {
		blocks, err := readArray(r, readBlock)
		if err != nil {
			return nil, err
		}
		e.Blocks = blocks
	}

	if version.Major() >= CompressionEncryption {
		encrypted, err := readBool(r)
		if err != nil {
			return nil, err
		}
		e.Encrypted = encrypted

		blockSize, err := readU32(r)
		if err != nil {
			return nil, err
		}
		e.CompressionBlockSize = blockSize
	}

	return e, nil
}

func writeEntry(w io.Writer, version Version, location EntryLocation, e *Entry, slots []Compression) error {
	if version >= V10 && location == LocationIndex {
		return writeEncodedEntry(w, e, slots)
	}

	var offsetField uint64
	if location == LocationIndex {
		offsetField = e.Offset
	}
	if err := writeU64(w, offsetField); err != nil {
		return err
	}
	if err := writeU64(w, e.Compressed); err != nil {
		return err
	}
	if err := writeU64(w, e.Uncompressed); err != nil {
		return err
	}

	if version.Major() < FNameBasedCompression {
		slots = nil
	}
	code, err := compressionCode(e.Compression, slots)
	if err != nil {
		return err
	}
	if version == V8A {
		if err := writeU8(w, uint8(code)); err != nil {
			return err
		}
	} else {
		if err := writeU32(w, code); err != nil {
			return err
		}
	}

	if version.Major() == Initial {
		var ts uint64
		if e.Timestamp != nil {
			ts = *e.Timestamp
		}
		if err := writeU64(w, ts); err != nil {
			return err
		}
	}

	if _, err := w.Write(e.Hash[:]); err != nil {
		return ioErr(err)
	}

	if version.Major() >= CompressionEncryption {
		if e.Blocks != nil {
			if err := writeU32(w, uint32(len(e.Blocks))); err != nil {
				return err
			}
			for _, b := range e.Blocks {
				if err := writeBlock(w, b); err != nil {
					return err
				}
			}
		}
		if err := writeBool(w, e.Encrypted); err != nil {
			return err
		}
		if err := writeU32(w, e.CompressionBlockSize); err != nil {
			return err
		}
	}

	return nil
}

// writeEncodedEntry writes the bit-packed V10+ index entry format.
func writeEncodedEntry(w io.Writer, e *Entry, slots []Compression) error {
	compressionBlockSize := (e.CompressionBlockSize >> 11) & 0x3f
	if (compressionBlockSize << 11) != e.CompressionBlockSize {
		compressionBlockSize = 0x3f
	}

	var blockCount uint32
	if e.Compression != CompressionNone {
		blockCount = uint32(len(e.Blocks))
	}

	sizeFits := e.Compressed <= 0xFFFFFFFF
	uncompressedFits := e.Uncompressed <= 0xFFFFFFFF
	offsetFits := e.Offset <= 0xFFFFFFFF

	compressionBits, err := compressionCode(e.Compression, slots)
	if err != nil {
		return err
	}

	flags := compressionBlockSize |
		(blockCount << 6) |
		(b2u32(e.Encrypted) << 22) |
		(compressionBits << 23) |
		(b2u32(sizeFits) << 29) |
		(b2u32(uncompressedFits) << 30) |
		(b2u32(offsetFits) << 31)

	if err := writeU32(w, flags); err != nil {
		return err
	}

	if compressionBlockSize == 0x3f {
		if err := writeU32(w, e.CompressionBlockSize); err != nil {
			return err
		}
	}

	if offsetFits {
		if err := writeU32(w, uint32(e.Offset)); err != nil {
			return err
		}
	} else if err := writeU64(w, e.Offset); err != nil {
		return err
	}

	if uncompressedFits {
		if err := writeU32(w, uint32(e.Uncompressed)); err != nil {
			return err
		}
	} else if err := writeU64(w, e.Uncompressed); err != nil {
		return err
	}

	if e.Compression != CompressionNone {
		if sizeFits {
			if err := writeU32(w, uint32(e.Compressed)); err != nil {
				return err
			}
		} else if err := writeU64(w, e.Compressed); err != nil {
			return err
		}

		if len(e.Blocks) != 1 || e.Encrypted {
			for _, b := range e.Blocks {
				if err := writeU32(w, uint32(b.End-b.Start)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// readEncodedEntry reads the bit-packed V10+ index entry format,
// reconstructing Blocks from the running offset the bit-packing omits.
func readEncodedEntry(r io.Reader, version Version, slots []Compression) (*Entry, error) {
	bits, err := readU32(r)
	if err != nil {
		return nil, err
	}

	rawCompressionCode := (bits >> 23) & 0x3f
	compressionKind, err := resolveCompressionCode(rawCompressionCode, slots)
	if err != nil {
		return nil, err
	}

	encrypted := bits&(1<<22) != 0
	blockCount := (bits >> 6) & 0xffff
	blockSize := bits & 0x3f

	if blockSize == 0x3f {
		blockSize, err = readU32(r)
		if err != nil {
			return nil, err
		}
	} else {
		blockSize <<= 11
	}

	readVarInt := func(bit uint) (uint64, error) {
		if bits&(1<<bit) != 0 {
			v, err := readU32(r)
			return uint64(v), err
		}
		return readU64(r)
	}

	offset, err := readVarInt(31)
	if err != nil {
		return nil, err
	}
	uncompressed, err := readVarInt(30)
	if err != nil {
		return nil, err
	}
	var compressed uint64
	if compressionKind == CompressionNone {
		compressed = uncompressed
	} else {
		compressed, err = readVarInt(29)
		if err != nil {
			return nil, err
		}
	}

	var offsetBase uint64
	if version.Major() < RelativeChunkOffsets {
		offsetBase = offset
	}
	offsetBase += entrySerializedSize(version, compressionKind, blockCount)

	var blocks []Block
	switch {
	case blockCount == 1 && !encrypted:
		blocks = []Block{{Start: offsetBase, End: offsetBase + compressed}}
	case blockCount > 0:
		index := offsetBase
		blocks = make([]Block, 0, blockCount)
		for i := uint32(0); i < blockCount; i++ {
			sz, err := readU32(r)
			if err != nil {
				return nil, err
			}
			blockLen := uint64(sz)
			blocks = append(blocks, Block{Start: index, End: index + blockLen})
			if encrypted {
				blockLen = align16(blockLen)
			}
			index += blockLen
		}
	}

	return &Entry{
		Offset:               offset,
		Compressed:           compressed,
		Uncompressed:         uncompressed,
		Compression:          compressionKind,
		Blocks:               blocks,
		Encrypted:            encrypted,
		CompressionBlockSize: blockSize,
	}, nil
}

// readFile extracts and decompresses an entry's payload: it seeks to the
// entry's offset, reparses the inline header (to locate the true start
// of the payload), reads the (possibly still-AES-padded) compressed
// bytes, decrypts them if needed, and decompresses per-block or as a
// single buffer depending on whether block framing is present.
func (e *Entry) readFile(r io.ReadSeeker, version Version, key *Key, slots []Compression) ([]byte, error) {
	if _, err := r.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return nil, ioErr(err)
	}
	if _, err := readEntry(r, version, slots); err != nil {
		return nil, err
	}
	dataOffset, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, ioErr(err)
	}

	readLength := e.Compressed
	if e.Encrypted {
		readLength = align16(readLength)
	}
	data, err := readLen(r, int(readLength))
	if err != nil {
		return nil, err
	}

	if e.Encrypted {
		if key == nil {
			return nil, &Error{Kind: KindEncrypted}
		}
		if err := key.decryptECB(data); err != nil {
			return nil, err
		}
		data = data[:e.Compressed]
	}

	kind, err := toCompressKind(e.Compression)
	if err != nil {
		return nil, err
	}

	if kind == compress.None {
		return data, nil
	}

	if e.Blocks == nil {
		out, err := compress.Decompress(kind, data, int(e.Uncompressed))
		if err != nil {
			return nil, compressionFailedErr(KindDecompressionFailed, e.Compression, err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	buf.Grow(int(e.Uncompressed))
	for _, block := range e.Blocks {
		var start, end uint64
		if version.Major() >= RelativeChunkOffsets {
			start = block.Start - (uint64(dataOffset) - e.Offset)
			end = block.End - (uint64(dataOffset) - e.Offset)
		} else {
			start = block.Start - uint64(dataOffset)
			end = block.End - uint64(dataOffset)
		}
		if end > uint64(len(data)) || start > end {
			return nil, &Error{Kind: KindMalformedEntry}
		}
		chunk, err := compress.Decompress(kind, data[start:end], int(e.CompressionBlockSize))
		if err != nil {
			return nil, compressionFailedErr(KindDecompressionFailed, e.Compression, err)
		}
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

func toCompressKind(c Compression) (compress.Kind, error) {
	switch c {
	case CompressionNone:
		return compress.None, nil
	case CompressionZlib:
		return compress.Zlib, nil
	case CompressionGzip:
		return compress.Gzip, nil
	case CompressionZstd:
		return compress.Zstd, nil
	case CompressionLZ4:
		return compress.LZ4, nil
	case CompressionOodle:
		return compress.Oodle, nil
	default:
		return compress.None, unsupportedErr("unrecognized compression kind")
	}
}
