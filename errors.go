package pak

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies the category of a pak.Error, mirroring the sum-type
// error design of the format this package is modeled on.
type Kind int

const (
	// KindIO indicates the underlying stream returned an error.
	KindIO Kind = iota
	// KindBadMagic indicates the footer magic did not match.
	KindBadMagic
	// KindWrongVersion indicates the footer's version-major disagreed with
	// the version under test.
	KindWrongVersion
	// KindBoolInvalid indicates a byte other than 0/1 where a bool was expected.
	KindBoolInvalid
	// KindUTF8 indicates a UTF-8 string failed to decode.
	KindUTF8
	// KindUTF16 indicates a UTF-16LE string failed to decode.
	KindUTF16
	// KindEncrypted indicates encrypted content was read with no key present.
	KindEncrypted
	// KindWrongKey indicates decryption produced invalid follow-up framing.
	KindWrongKey
	// KindOodleMissing indicates no Oodle decompressor has been registered.
	KindOodleMissing
	// KindOodleInitFailed indicates Oodle initialization failed and is sticky.
	KindOodleInitFailed
	// KindCompressionFailed indicates a compressor returned an error.
	KindCompressionFailed
	// KindDecompressionFailed indicates a decompressor returned an error.
	KindDecompressionFailed
	// KindUnsupportedOrEncrypted indicates every version probe failed.
	KindUnsupportedOrEncrypted
	// KindMissingEntry indicates Get was called with an unknown path.
	KindMissingEntry
	// KindMalformedEntry indicates an internally inconsistent entry encoding.
	KindMalformedEntry
	// KindPrefixMismatch indicates an external-unpacker prefix rule violation.
	KindPrefixMismatch
	// KindUnsupported indicates a feature this package deliberately does not
	// implement (V2 index writing, path-hash index writing).
	KindUnsupported
	// KindLengthMisaligned indicates FallenDoll input was not a multiple of
	// 16 bytes.
	KindLengthMisaligned
)

// Error is the single error type surfaced by this package. It carries a
// Kind for programmatic dispatch (obtain the *Error with errors.As, then
// inspect Kind) plus any fields needed
// to render a useful message, and wraps the underlying cause (if any) with
// a captured stack trace.
type Error struct {
	Kind Kind

	// Context fields, populated depending on Kind.
	Magic           uint32
	ExpectedVersion VersionMajor
	FoundVersion    VersionMajor
	BoolValue       uint8
	Compression     Compression
	Path            string
	Prefix          string

	cause error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindBadMagic:
		return fmt.Sprintf("pak: bad magic %#x", e.Magic)
	case KindWrongVersion:
		return fmt.Sprintf("pak: used version %s but footer reports %s", e.ExpectedVersion, e.FoundVersion)
	case KindBoolInvalid:
		return fmt.Sprintf("pak: %d is not a valid bool", e.BoolValue)
	case KindEncrypted:
		return "pak: archive is encrypted but no key was provided"
	case KindWrongKey:
		return "pak: decryption produced invalid framing (wrong key?)"
	case KindOodleMissing:
		return "pak: no Oodle decompressor registered"
	case KindOodleInitFailed:
		return "pak: Oodle decompressor initialization failed"
	case KindCompressionFailed:
		return fmt.Sprintf("pak: %s compression failed", e.Compression)
	case KindDecompressionFailed:
		return fmt.Sprintf("pak: %s decompression failed", e.Compression)
	case KindUnsupportedOrEncrypted:
		return "pak: version unsupported or archive is encrypted"
	case KindMissingEntry:
		return fmt.Sprintf("pak: no entry at %q", e.Path)
	case KindMalformedEntry:
		return "pak: malformed entry encoding"
	case KindPrefixMismatch:
		return fmt.Sprintf("pak: prefix %q does not match path %q", e.Prefix, e.Path)
	case KindUnsupported:
		if e.cause != nil {
			return fmt.Sprintf("pak: unsupported: %s", e.cause)
		}
		return "pak: unsupported"
	case KindLengthMisaligned:
		return "pak: fallendoll: data length must be a multiple of 16"
	case KindUTF8:
		return fmt.Sprintf("pak: utf8 conversion: %s", e.cause)
	case KindUTF16:
		return fmt.Sprintf("pak: utf16 conversion: %s", e.cause)
	case KindIO:
		return fmt.Sprintf("pak: io: %s", e.cause)
	default:
		return fmt.Sprintf("pak: error (kind %d)", e.Kind)
	}
}

// Unwrap exposes the wrapped cause, if any, for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

func wrapErr(kind Kind, cause error) *Error {
	return &Error{Kind: kind, cause: errors.WithStack(cause)}
}

func ioErr(cause error) *Error {
	return wrapErr(KindIO, cause)
}

func unsupportedErr(msg string) *Error {
	return &Error{Kind: KindUnsupported, cause: errors.New(msg)}
}

// compressionFailedErr wraps a (de)compressor failure, threading the
// Compression kind through so Error() can name which codec failed instead
// of rendering the zero value ("None").
func compressionFailedErr(kind Kind, compression Compression, cause error) *Error {
	return &Error{Kind: kind, Compression: compression, cause: errors.WithStack(cause)}
}
