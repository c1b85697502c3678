package pak

import "io"

// Block is one compressed chunk of an entry's payload: the half-open
// byte range [Start, End) that holds that chunk's compressed bytes.
// Before RelativeChunkOffsets the range is measured from the start of the
// archive; from RelativeChunkOffsets on it is measured from the entry's
// own offset.
type Block struct {
	Start uint64
	End   uint64
}

func readBlock(r io.Reader) (Block, error) {
	start, err := readU64(r)
	if err != nil {
		return Block{}, err
	}
	end, err := readU64(r)
	if err != nil {
		return Block{}, err
	}
	return Block{Start: start, End: end}, nil
}

func writeBlock(w io.Writer, b Block) error {
	if err := writeU64(w, b.Start); err != nil {
		return err
	}
	return writeU64(w, b.End)
}
