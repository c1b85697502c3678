package pak

import (
	"bytes"
	"io"
	"sort"
	"strings"
)

// index is the decoded form of an archive's index section: either the
// flat V1 shape (a path -> Entry map) or the composite V2 shape
// introduced with PathHashIndex. Both expose the same entriesByPath view
// so the reader doesn't need to care which one backs a given archive.
type index struct {
	v1 *indexV1
	v2 *indexV2
}

type indexV1 struct {
	entries map[string]*Entry
}

// indexV2 carries the sub-tables PathHashIndex adds on top of the V1
// shape. pathHashIndex is kept opaque: this package never writes it and
// only reads and retains its bytes when present, since nothing else in
// the archive depends on its internal structure being understood.
type indexV2 struct {
	pathHashSeed       uint64
	pathHashIndex      []byte
	fullDirectoryIndex map[string]map[string]uint32
	encodedEntries     []byte
	entriesByPath      map[string]*Entry
}

func newIndexV1() *index {
	return &index{v1: &indexV1{entries: map[string]*Entry{}}}
}

func (ix *index) entriesByPath() map[string]*Entry {
	if ix.v1 != nil {
		return ix.v1.entries
	}
	return ix.v2.entriesByPath
}

func (ix *index) addEntry(path string, e *Entry) error {
	if ix.v1 != nil {
		ix.v1.entries[path] = e
		return nil
	}
	return unsupportedErr("writing entries into a V2 (PathHashIndex) index is not supported")
}

// readIndex reads and decodes the index section beginning at the current
// position of idxReader (an in-memory cursor over the, already
// decrypted, index bytes), using fullReader to follow the absolute
// offsets a V2 index's sub-tables point back into the archive for.
func readIndex(idxReader io.ReadSeeker, fullReader io.ReadSeeker, version Version, footer *Footer, key *Key) (string, *index, error) {
	mountPoint, err := readString(idxReader)
	if err != nil {
		return "", nil, err
	}

	count, err := readU32(idxReader)
	if err != nil {
		return "", nil, err
	}

	if version.Major() < PathHashIndex {
		entries := make(map[string]*Entry, count)
		for i := uint32(0); i < count; i++ {
			path, err := readString(idxReader)
			if err != nil {
				return "", nil, err
			}
			e, err := readEntry(idxReader, version, footer.Compression)
			if err != nil {
				return "", nil, err
			}
			entries[path] = e
		}
		return mountPoint, &index{v1: &indexV1{entries: entries}}, nil
	}

	v2 := &indexV2{entriesByPath: map[string]*Entry{}}

	pathHashSeed, err := readU64(idxReader)
	if err != nil {
		return "", nil, err
	}
	v2.pathHashSeed = pathHashSeed

	hasPathHashIndex, err := readU32(idxReader)
	if err != nil {
		return "", nil, err
	}
	if hasPathHashIndex != 0 {
		offset, err := readU64(idxReader)
		if err != nil {
			return "", nil, err
		}
		size, err := readU64(idxReader)
		if err != nil {
			return "", nil, err
		}
		if _, err := readLen(idxReader, 20); err != nil { // hash, unverified
			return "", nil, err
		}
		if _, err := fullReader.Seek(int64(offset), io.SeekStart); err != nil {
			return "", nil, ioErr(err)
		}
		raw, err := readLen(fullReader, int(size))
		if err != nil {
			return "", nil, err
		}
		if footer.Encrypted {
			if key == nil {
				return "", nil, &Error{Kind: KindEncrypted}
			}
			if err := key.decryptECB(raw); err != nil {
				return "", nil, err
			}
		}
		v2.pathHashIndex = raw
	}

	hasFullDirectoryIndex, err := readU32(idxReader)
	if err != nil {
		return "", nil, err
	}
	if hasFullDirectoryIndex != 0 {
		offset, err := readU64(idxReader)
		if err != nil {
			return "", nil, err
		}
		size, err := readU64(idxReader)
		if err != nil {
			return "", nil, err
		}
		if _, err := readLen(idxReader, 20); err != nil { // hash, unverified
			return "", nil, err
		}
		if _, err := fullReader.Seek(int64(offset), io.SeekStart); err != nil {
			return "", nil, ioErr(err)
		}
		raw, err := readLen(fullReader, int(size))
		if err != nil {
			return "", nil, err
		}
		if footer.Encrypted {
			if key == nil {
				return "", nil, &Error{Kind: KindEncrypted}
			}
			if err := key.decryptECB(raw); err != nil {
				return "", nil, err
			}
		}

		fdi := bytes.NewReader(raw)
		dirCount, err := readU32(fdi)
		if err != nil {
			return "", nil, err
		}
		directories := make(map[string]map[string]uint32, dirCount)
		for i := uint32(0); i < dirCount; i++ {
			dirName, err := readString(fdi)
			if err != nil {
				return "", nil, err
			}
			fileCount, err := readU32(fdi)
			if err != nil {
				return "", nil, err
			}
			files := make(map[string]uint32, fileCount)
			for j := uint32(0); j < fileCount; j++ {
				fileName, err := readString(fdi)
				if err != nil {
					return "", nil, err
				}
				encodedOffset, err := readU32(fdi)
				if err != nil {
					return "", nil, err
				}
				files[fileName] = encodedOffset
			}
			directories[dirName] = files
		}
		v2.fullDirectoryIndex = directories
	}

	size, err := readU32(idxReader)
	if err != nil {
		return "", nil, err
	}
	encodedEntries, err := readLen(idxReader, int(size))
	if err != nil {
		return "", nil, err
	}
	v2.encodedEntries = encodedEntries

	trailer, err := readU32(idxReader)
	if err != nil {
		return "", nil, err
	}
	if trailer != 0 {
		return "", nil, &Error{Kind: KindMalformedEntry}
	}

	if v2.fullDirectoryIndex != nil {
		encodedReader := bytes.NewReader(encodedEntries)
		dirNames := make([]string, 0, len(v2.fullDirectoryIndex))
		for dirName := range v2.fullDirectoryIndex {
			dirNames = append(dirNames, dirName)
		}
		sort.Strings(dirNames)
		for _, dirName := range dirNames {
			dir := v2.fullDirectoryIndex[dirName]
			fileNames := make([]string, 0, len(dir))
			for fileName := range dir {
				fileNames = append(fileNames, fileName)
			}
			sort.Strings(fileNames)
			for _, fileName := range fileNames {
				encodedOffset := dir[fileName]
				if _, err := encodedReader.Seek(int64(encodedOffset), io.SeekStart); err != nil {
					return "", nil, ioErr(err)
				}
				e, err := readEncodedEntry(encodedReader, version, footer.Compression)
				if err != nil {
					return "", nil, err
				}
				path := strings.TrimPrefix(dirName, "/") + fileName
				v2.entriesByPath[path] = e
			}
		}
	}

	return mountPoint, &index{v2: v2}, nil
}

// writeIndex writes a V1 index. V2 indices (PathHashIndex and newer)
// always fail with KindUnsupported: building their path-hash and
// full-directory sub-tables from scratch is not implemented.
func writeIndex(w io.Writer, version Version, mountPoint string, ix *index, slots []Compression) error {
	if ix.v1 == nil || version.Major() >= PathHashIndex {
		return unsupportedErr("writing a V2 (PathHashIndex) index is not supported")
	}

	if err := writeString(w, mountPoint); err != nil {
		return err
	}
	if err := writeU32(w, uint32(len(ix.v1.entries))); err != nil {
		return err
	}

	paths := make([]string, 0, len(ix.v1.entries))
	for path := range ix.v1.entries {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := writeString(w, path); err != nil {
			return err
		}
		if err := writeEntry(w, version, LocationIndex, ix.v1.entries[path], slots); err != nil {
			return err
		}
	}
	return nil
}
