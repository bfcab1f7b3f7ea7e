package mpq

import "errors"

var (
	// ErrFileNotFound is returned when the archive has no entry for a name.
	ErrFileNotFound = errors.New("file not found in archive")

	// ErrInvalidArchive is returned when the header or tables cannot be decoded.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrUnsupportedCompression is returned for sectors packed with a method
	// other than zlib or bzip2 (implode, huffman, adpcm, lzma).
	ErrUnsupportedCompression = errors.New("unsupported compression")
)
