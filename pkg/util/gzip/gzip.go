package gzip

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/spf13/afero"
)

// ReadFileMaybeGZIP returns the decompressed contents of path if the file is gzipped,
// or otherwise the raw contents.
func ReadFileMaybeGZIP(fs afero.Fs, path string) ([]byte, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return MaybeDecompress(b)
}

// MaybeDecompress decompresses b if it carries a gzip header: http://www.zlib.org/rfc-gzip.html
func MaybeDecompress(b []byte) ([]byte, error) {
	if !bytes.HasPrefix(b, []byte("\x1F\x8B")) {
		return b, nil
	}
	gzipReader, err := gzip.NewReader(bytes.NewBuffer(b))
	if err != nil {
		return nil, err
	}
	defer gzipReader.Close()
	return io.ReadAll(gzipReader)
}
