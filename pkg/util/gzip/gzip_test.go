package gzip

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/spf13/afero"
)

func compress(t *testing.T, data string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := gzip.NewWriter(buf)
	if _, err := writer.Write([]byte(data)); err != nil {
		t.Fatalf("failed to compress: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to compress: %v", err)
	}
	return buf.Bytes()
}

func TestReadFileMaybeGZIP(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/plain.xml", []byte("<testsuites/>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/compressed.xml.gz", compress(t, "<testsuites/>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/truncated.xml.gz", compress(t, "<testsuites/>")[:12], 0644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name     string
		path     string
		expected string
		wantErr  bool
	}{
		{name: "plain file", path: "/plain.xml", expected: "<testsuites/>"},
		{name: "gzipped file", path: "/compressed.xml.gz", expected: "<testsuites/>"},
		{name: "truncated gzip", path: "/truncated.xml.gz", wantErr: true},
		{name: "missing file", path: "/missing.xml", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ReadFileMaybeGZIP(fs, tc.path)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error: %t, got %v", tc.wantErr, err)
			}
			if err == nil && string(actual) != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, string(actual))
			}
		})
	}
}
