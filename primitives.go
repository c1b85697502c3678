package pak

import (
	"encoding/binary"
	"io"
	"unicode/utf16"
)

// maxAlloc bounds any single length-prefixed allocation this package will
// perform while parsing untrusted input. Genuine PAK archives never
// approach it; a length field claiming more indicates a corrupt or hostile
// stream, and we reject it before allocating rather than let it through.
const maxAlloc = 1 << 30 // 1 GiB

func readU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioErr(err)
	}
	return buf[0], nil
}

func readU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioErr(err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioErr(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readI32(r io.Reader) (int32, error) {
	v, err := readU32(r)
	return int32(v), err
}

func readU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioErr(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func readU128(r io.Reader) ([16]byte, error) {
	var buf [16]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return buf, ioErr(err)
	}
	return buf, nil
}

func writeU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return ioErrOrNil(err)
}

func writeU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return ioErrOrNil(err)
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return ioErrOrNil(err)
}

func writeI32(w io.Writer, v int32) error {
	return writeU32(w, uint32(v))
}

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return ioErrOrNil(err)
}

func writeU128(w io.Writer, v [16]byte) error {
	_, err := w.Write(v[:])
	return ioErrOrNil(err)
}

func ioErrOrNil(err error) error {
	if err == nil {
		return nil
	}
	return ioErr(err)
}

// readBool reads a single byte and accepts only 0 or 1.
func readBool(r io.Reader) (bool, error) {
	v, err := readU8(r)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, &Error{Kind: KindBoolInvalid, BoolValue: v}
	}
}

func writeBool(w io.Writer, v bool) error {
	if v {
		return writeU8(w, 1)
	}
	return writeU8(w, 0)
}

// readGUID reads the archive's fixed 20-byte hash/GUID field.
func readGUID(r io.Reader) ([20]byte, error) {
	var buf [20]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return buf, ioErr(err)
	}
	return buf, nil
}

// readLen reads exactly n bytes, refusing absurd allocations up front.
func readLen(r io.Reader, n int) ([]byte, error) {
	if n < 0 || n > maxAlloc {
		return nil, unsupportedErr("length out of bounds")
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ioErr(err)
	}
	return buf, nil
}

// readArray reads a u32 element count followed by that many elements read
// by f, refusing to preallocate more than a sane bound regardless of what
// the untrusted count claims.
func readArray[T any](r io.Reader, f func(io.Reader) (T, error)) ([]T, error) {
	n, err := readU32(r)
	if err != nil {
		return nil, err
	}
	return readArrayLen(r, int(n), f)
}

func readArrayLen[T any](r io.Reader, n int, f func(io.Reader) (T, error)) ([]T, error) {
	if n < 0 {
		return nil, unsupportedErr("negative array length")
	}
	const capHint = 4096
	hint := n
	if hint > capHint {
		hint = capHint
	}
	out := make([]T, 0, hint)
	for i := 0; i < n; i++ {
		v, err := f(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// readString reads a signed i32 length-prefixed string: a negative length
// means |n| UTF-16LE code units follow; a positive length means n bytes of
// UTF-8. In both cases the trailing NUL is stripped.
func readString(r io.Reader) (string, error) {
	n, err := readI32(r)
	if err != nil {
		return "", err
	}
	if n < 0 {
		count := int(-n)
		units, err := readArrayLen(r, count, readU16)
		if err != nil {
			return "", err
		}
		if len(units) > 0 {
			units = units[:len(units)-1] // drop trailing NUL code unit
		}
		return string(utf16.Decode(units)), nil
	}
	raw, err := readLen(r, int(n))
	if err != nil {
		return "", err
	}
	if len(raw) > 0 {
		raw = raw[:len(raw)-1] // drop trailing NUL byte
	}
	return string(raw), nil
}

// writeString mirrors readString: ASCII-or-empty is written as UTF-8 with a
// trailing NUL and length len+1; anything else is written as UTF-16LE with
// a trailing NUL code unit and length -(len+1).
func writeString(w io.Writer, s string) error {
	if s == "" || isASCII(s) {
		b := []byte(s)
		if err := writeI32(w, int32(len(b)+1)); err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return ioErr(err)
		}
		return writeU8(w, 0)
	}
	units := utf16.Encode([]rune(s))
	if err := writeI32(w, -(int32(len(units)) + 1)); err != nil {
		return err
	}
	for _, u := range units {
		if err := writeU16(w, u); err != nil {
			return err
		}
	}
	return writeU16(w, 0)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
