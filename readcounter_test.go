package pak

import "io"

// readCounter wraps an io.ReadSeeker and tracks how many times each byte
// offset has been read, so a test can assert that extracting every file in
// an archive actually touches every byte of the backing stream (ported from
// repak's tests/test.rs ReadCounter).
type readCounter struct {
	inner io.ReadSeeker
	pos   int64
	reads []int
}

func newReadCounter(inner io.ReadSeeker, size int64) *readCounter {
	return &readCounter{inner: inner, reads: make([]int, size)}
}

func (rc *readCounter) Read(p []byte) (int, error) {
	n, err := rc.inner.Read(p)
	for i := 0; i < n; i++ {
		if int(rc.pos)+i < len(rc.reads) {
			rc.reads[int(rc.pos)+i]++
		}
	}
	rc.pos += int64(n)
	return n, err
}

func (rc *readCounter) Seek(offset int64, whence int) (int64, error) {
	pos, err := rc.inner.Seek(offset, whence)
	if err == nil {
		rc.pos = pos
	}
	return pos, err
}

// unreadBytes returns the byte offsets that were never touched by a Read call.
func (rc *readCounter) unreadBytes() []int {
	var missed []int
	for i, n := range rc.reads {
		if n == 0 {
			missed = append(missed, i)
		}
	}
	return missed
}
