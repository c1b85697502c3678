package pak

import "fmt"

// Version is the specific on-disk revision of a PAK archive. Several
// Versions (V8A, V8B) share a VersionMajor; VersionMajor is what actually
// gates field presence while Version additionally distinguishes those
// sub-revisions.
type Version int

const (
	V0 Version = iota
	V1
	V2
	V3
	V4
	V5
	V6
	V7
	V8A
	V8B
	V9
	V10
	V11
)

// versionNames mirrors the Version ordering above for String().
var versionNames = [...]string{
	"V0", "V1", "V2", "V3", "V4", "V5", "V6", "V7", "V8A", "V8B", "V9", "V10", "V11",
}

func (v Version) String() string {
	if v < 0 || int(v) >= len(versionNames) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionNames[v]
}

// VersionMajor is the version value actually written to the archive; it
// coarsens Version by collapsing V8A/V8B into a single FNameBasedCompression
// major and drives every field-presence decision in the codec.
type VersionMajor uint32

const (
	Unknown VersionMajor = iota
	Initial
	NoTimestamps
	CompressionEncryption
	IndexEncryption
	RelativeChunkOffsets
	DeleteRecords
	EncryptionKeyGuid
	FNameBasedCompression
	FrozenIndex
	PathHashIndex
	Fnv64BugFix
)

var versionMajorNames = [...]string{
	"Unknown", "Initial", "NoTimestamps", "CompressionEncryption", "IndexEncryption",
	"RelativeChunkOffsets", "DeleteRecords", "EncryptionKeyGuid", "FNameBasedCompression",
	"FrozenIndex", "PathHashIndex", "Fnv64BugFix",
}

func (m VersionMajor) String() string {
	if int(m) >= len(versionMajorNames) {
		return fmt.Sprintf("VersionMajor(%d)", uint32(m))
	}
	return versionMajorNames[m]
}

// versionMajorFromRepr maps a raw on-disk u32 to a VersionMajor, returning
// ok=false for values outside the known range (mirrors the original's
// lenient `from_repr` fallback behavior: an unrecognized value is reported
// to the caller, who falls back to the version under test).
func versionMajorFromRepr(v uint32) (VersionMajor, bool) {
	if v > uint32(Fnv64BugFix) {
		return 0, false
	}
	return VersionMajor(v), true
}

// Major projects a full Version onto its VersionMajor. The projection is
// many-to-one: V8A and V8B both map to FNameBasedCompression.
func (v Version) Major() VersionMajor {
	switch v {
	case V0:
		return Unknown
	case V1:
		return Initial
	case V2:
		return NoTimestamps
	case V3:
		return CompressionEncryption
	case V4:
		return IndexEncryption
	case V5:
		return RelativeChunkOffsets
	case V6:
		return DeleteRecords
	case V7:
		return EncryptionKeyGuid
	case V8A, V8B:
		return FNameBasedCompression
	case V9:
		return FrozenIndex
	case V10:
		return PathHashIndex
	case V11:
		return Fnv64BugFix
	default:
		return Unknown
	}
}

// Size returns the fixed byte length of the footer for this Version,
// counted back from the end of the archive during version probing.
func (v Version) Size() int64 {
	// magic: u32, version-major: u32, index offset: u64, index size: u64, hash: [20]byte
	size := int64(4 + 4 + 8 + 8 + 20)
	major := v.Major()
	if major >= EncryptionKeyGuid {
		size += 16 // encryption uuid: u128
	}
	if major >= IndexEncryption {
		size++ // encrypted: bool
	}
	if major == FrozenIndex {
		size++ // frozen: bool
	}
	if v >= V8A {
		size += 32 * 4 // four compression-name slots
	}
	if v >= V8B {
		size += 32 // fifth compression-name slot
	}
	return size
}

// versionsNewestFirst lists every Version from V11 down to V0, the order
// OpenAny probes them in.
var versionsNewestFirst = [...]Version{
	V11, V10, V9, V8B, V8A, V7, V6, V5, V4, V3, V2, V1, V0,
}
