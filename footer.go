package pak

import (
	"bytes"
	"io"

	"github.com/google/uuid"
)

// Footer is the fixed-size trailer that sits at the very end of an
// archive. Its own size depends on version (Version.Size), which is how
// OpenAny can probe for a version without knowing it in advance: seek to
// -size from the end, parse, and check whether the magic and version
// agree with what was assumed.
type Footer struct {
	EncryptionUUID *uuid.UUID
	Encrypted      bool
	Magic          uint32
	Version        Version
	VersionMajor   VersionMajor
	IndexOffset    uint64
	IndexSize      uint64
	Hash           [20]byte
	Frozen         bool
	Compression    []Compression
}

const pakMagic uint32 = 0x5A6F12E1

func readFooter(r io.Reader, version Version) (*Footer, error) {
	f := &Footer{Version: version}

	if version.Major() >= EncryptionKeyGuid {
		raw, err := readU128(r)
		if err != nil {
			return nil, err
		}
		id := uuid.UUID(raw)
		f.EncryptionUUID = &id
	}

	if version.Major() >= IndexEncryption {
		encrypted, err := readBool(r)
		if err != nil {
			return nil, err
		}
		f.Encrypted = encrypted
	}

	magic, err := readU32(r)
	if err != nil {
		return nil, err
	}
	f.Magic = magic

	rawMajor, err := readU32(r)
	if err != nil {
		return nil, err
	}
	versionMajor, ok := versionMajorFromRepr(rawMajor)
	if !ok {
		versionMajor = version.Major()
	}
	f.VersionMajor = versionMajor

	indexOffset, err := readU64(r)
	if err != nil {
		return nil, err
	}
	f.IndexOffset = indexOffset

	indexSize, err := readU64(r)
	if err != nil {
		return nil, err
	}
	f.IndexSize = indexSize

	hash, err := readLen(r, 20)
	if err != nil {
		return nil, err
	}
	copy(f.Hash[:], hash)

	if version.Major() == FrozenIndex {
		frozen, err := readBool(r)
		if err != nil {
			return nil, err
		}
		f.Frozen = frozen
	}

	slotCount := compressionSlotCount(version)
	f.Compression = make([]Compression, 0, slotCount)
	for i := 0; i < slotCount; i++ {
		raw, err := readLen(r, 32)
		if err != nil {
			return nil, err
		}
		name := stripNulAndTrailing(raw)
		kind, err := compressionFromName(name)
		if err != nil {
			// An empty/unrecognized name slot means "unused" and is
			// stored as CompressionNone; an entry that references such a
			// slot is treated as uncompressed.
			kind = CompressionNone
		}
		f.Compression = append(f.Compression, kind)
	}
	if version.Major() < FNameBasedCompression {
		f.Compression = append(f.Compression, CompressionZlib, CompressionGzip, CompressionOodle)
	}

	if f.Magic != pakMagic {
		return nil, &Error{Kind: KindBadMagic, Magic: f.Magic}
	}
	if version.Major() != f.VersionMajor {
		return nil, &Error{Kind: KindWrongVersion, ExpectedVersion: version.Major(), FoundVersion: f.VersionMajor}
	}

	return f, nil
}

func writeFooter(w io.Writer, f *Footer) error {
	if f.VersionMajor >= EncryptionKeyGuid {
		var raw [16]byte
		if f.EncryptionUUID != nil {
			raw = [16]byte(*f.EncryptionUUID)
		}
		if err := writeU128(w, raw); err != nil {
			return err
		}
	}
	if f.VersionMajor >= IndexEncryption {
		if err := writeBool(w, f.Encrypted); err != nil {
			return err
		}
	}
	if err := writeU32(w, f.Magic); err != nil {
		return err
	}
	if err := writeU32(w, uint32(f.VersionMajor)); err != nil {
		return err
	}
	if err := writeU64(w, f.IndexOffset); err != nil {
		return err
	}
	if err := writeU64(w, f.IndexSize); err != nil {
		return err
	}
	if _, err := w.Write(f.Hash[:]); err != nil {
		return ioErr(err)
	}
	if f.VersionMajor == FrozenIndex {
		if err := writeBool(w, f.Frozen); err != nil {
			return err
		}
	}

	slotCount := compressionSlotCount(f.Version)
	for i := 0; i < slotCount; i++ {
		var name [32]byte
		if i < len(f.Compression) && f.Compression[i] != CompressionNone {
			copy(name[:], f.Compression[i].name())
		}
		if _, err := w.Write(name[:]); err != nil {
			return ioErr(err)
		}
	}
	return nil
}

func compressionSlotCount(version Version) int {
	switch {
	case version < V8A:
		return 0
	case version < V8B:
		return 4
	default:
		return 5
	}
}

func stripNulAndTrailing(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}
