package pak

import (
	"crypto/aes"
	"crypto/cipher"
	"strings"

	"lukechampine.com/blake3"
)

// keyCipher selects which block cipher a Key drives. Every archive in the
// wild is written with plain AES; FallenDoll exists only to read indices
// from one vendor's variant and has no encrypt direction.
type keyCipher int

const (
	cipherAES keyCipher = iota
	cipherFallenDoll
)

// Key wraps the symmetric key (and cipher) used to decrypt entry payloads
// and, optionally, the index. The same key serves both purposes (spec.md §3).
type Key struct {
	cipher     keyCipher
	block      cipher.Block
	fallenDoll fallenDollCipher
}

// NewKey builds an AES Key from a raw 256-bit (32-byte) key.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != 32 {
		return nil, unsupportedErr("AES key must be 256 bits (32 bytes)")
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, ioErr(err)
	}
	return &Key{cipher: cipherAES, block: block}, nil
}

// NewFallenDollKey builds a Key that decrypts using the FallenDoll cipher
// (spec.md §4.2) instead of AES. It carries no encryption direction: using
// it with a Writer fails with KindUnsupported.
func NewFallenDollKey() *Key {
	return &Key{cipher: cipherFallenDoll, fallenDoll: newFallenDollCipher()}
}

// reverseWords treats a 16-byte block as four little-endian u32 words and
// reverses each word's bytes in place. The archive format stores AES
// payloads with this quirk to match the engine's in-memory word order
// (spec.md §4.2); it is applied before encryption and undone after.
func reverseWords(block []byte) {
	for w := 0; w < 16; w += 4 {
		block[w], block[w+1], block[w+2], block[w+3] =
			block[w+3], block[w+2], block[w+1], block[w]
	}
}

// decryptECB decrypts data in place under whichever cipher this Key
// carries. For AES it works 16 bytes at a time, applying the word-reversal
// quirk around each block; FallenDoll handles its own block loop.
// len(data) must be a multiple of 16.
func (k *Key) decryptECB(data []byte) error {
	if k.cipher == cipherFallenDoll {
		return k.fallenDoll.decrypt(data)
	}
	for off := 0; off+16 <= len(data); off += 16 {
		block := data[off : off+16]
		reverseWords(block)
		k.block.Decrypt(block, block)
		reverseWords(block)
	}
	return nil
}

// encryptECB encrypts data in place, 16 bytes at a time, applying the
// word-reversal quirk around each AES block. len(data) must be a multiple
// of 16. FallenDoll keys have no encrypt direction and always fail.
func (k *Key) encryptECB(data []byte) error {
	if k.cipher == cipherFallenDoll {
		return unsupportedErr("FallenDoll keys cannot be used to encrypt")
	}
	for off := 0; off+16 <= len(data); off += 16 {
		block := data[off : off+16]
		reverseWords(block)
		k.block.Encrypt(block, block)
		reverseWords(block)
	}
	return nil
}

// align16 rounds n up to the next multiple of 16 (the AES block size).
func align16(n uint64) uint64 {
	return (n + 15) &^ 15
}

// PakVariant selects which vendor-specific extent-of-encryption policy a
// Writer uses. It does not change the cipher, only how many leading bytes
// of a payload get encrypted.
type PakVariant int

const (
	// VariantStandard encrypts the entire payload.
	VariantStandard PakVariant = iota
	// VariantNetEase encrypts at most the first 4096 bytes.
	VariantNetEase
	// VariantMarvelRivals derives a per-path extent from a BLAKE3 hash.
	VariantMarvelRivals
)

const netEaseEncryptionLimit = 0x1000

// EncryptedExtent computes how many leading bytes of a totalSize-byte
// payload at path should be encrypted under this variant (spec.md §3).
func (variant PakVariant) EncryptedExtent(path string, totalSize uint64) uint64 {
	switch variant {
	case VariantNetEase:
		if totalSize < netEaseEncryptionLimit {
			return totalSize
		}
		return netEaseEncryptionLimit
	case VariantMarvelRivals:
		h := blake3.New(32, nil)
		h.Write([]byte{0x11, 0x22, 0x33, 0x44})
		h.Write([]byte(strings.ToLower(path)))
		sum := h.Sum(nil)
		first8 := uint64(sum[0]) | uint64(sum[1])<<8 | uint64(sum[2])<<16 | uint64(sum[3])<<24 |
			uint64(sum[4])<<32 | uint64(sum[5])<<40 | uint64(sum[6])<<48 | uint64(sum[7])<<56
		extent := (63*(first8%0x3D) + 319) &^ 0x3F
		if extent == 0 {
			extent = 0x1000
		}
		if extent > totalSize {
			return totalSize
		}
		return extent
	default: // VariantStandard
		return totalSize
	}
}
