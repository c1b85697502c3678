package pak

import (
	"bytes"
	"io"
	"sort"
)

// Reader provides read access to an archive: listing its files, fetching
// the mount point a game engine would prefix paths with, and extracting
// individual entries' decompressed, decrypted content.
type Reader struct {
	r                io.ReadSeeker
	key              *Key
	version          Version
	mountPoint       string
	index            *index
	compressionSlots []Compression
}

// Open parses an archive assuming a specific Version, returning an error
// if the footer disagrees. Use OpenAny when the version is not known in
// advance.
func Open(r io.ReadSeeker, version Version, key *Key) (*Reader, error) {
	return openVersion(r, version, key)
}

// OpenAny probes every known Version, newest first, returning the first
// one whose footer and index both parse cleanly. This is the usual entry point: most
// callers don't know (or care) which of the thirteen revisions a given
// archive uses.
func OpenAny(r io.ReadSeeker, key *Key) (*Reader, error) {
	var lastErr error
	for _, v := range versionsNewestFirst {
		reader, err := openVersion(r, v, key)
		if err == nil {
			return reader, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = &Error{Kind: KindUnsupportedOrEncrypted}
	}
	return nil, &Error{Kind: KindUnsupportedOrEncrypted, cause: lastErr}
}

func openVersion(r io.ReadSeeker, version Version, key *Key) (*Reader, error) {
	if _, err := r.Seek(-version.Size(), io.SeekEnd); err != nil {
		return nil, ioErr(err)
	}
	footer, err := readFooter(r, version)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(int64(footer.IndexOffset), io.SeekStart); err != nil {
		return nil, ioErr(err)
	}
	rawIndex, err := readLen(r, int(footer.IndexSize))
	if err != nil {
		return nil, err
	}

	if footer.Encrypted {
		if key == nil {
			return nil, &Error{Kind: KindEncrypted}
		}
		if err := key.decryptECB(rawIndex); err != nil {
			return nil, err
		}
	}

	mountPoint, ix, err := readIndex(bytes.NewReader(rawIndex), r, version, footer, key)
	if err != nil {
		return nil, err
	}

	return &Reader{
		r:                r,
		key:              key,
		version:          version,
		mountPoint:       mountPoint,
		index:            ix,
		compressionSlots: footer.Compression,
	}, nil
}

// Version reports the on-disk revision this archive was parsed as.
func (rd *Reader) Version() Version { return rd.version }

// MountPoint is the path prefix the engine mounts this archive's
// contents under, as recorded at pack time.
func (rd *Reader) MountPoint() string { return rd.mountPoint }

// Files lists every path this archive has an entry for, sorted.
func (rd *Reader) Files() []string {
	entries := rd.index.entriesByPath()
	files := make([]string, 0, len(entries))
	for path := range entries {
		files = append(files, path)
	}
	sort.Strings(files)
	return files
}

// Get extracts and decompresses the entry at path.
func (rd *Reader) Get(path string) ([]byte, error) {
	entries := rd.index.entriesByPath()
	e, ok := entries[path]
	if !ok {
		return nil, &Error{Kind: KindMissingEntry, Path: path}
	}
	return e.readFile(rd.r, rd.version, rd.key, rd.compressionSlots)
}
