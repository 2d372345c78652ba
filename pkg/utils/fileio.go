/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: fileio.go
Description: Compression-aware file helpers. Paths ending in .gz, .zst or .lz4 are
transparently decompressed on read and compressed on write, so flat table files and
analysis exports can be stored compressed without changing their text format.
*/

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the codec implied by a file extension
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
	CompressionLZ4  Compression = "lz4"
)

// DetectCompression maps a path's extension to a codec
func DetectCompression(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return CompressionGzip
	case ".zst", ".zstd":
		return CompressionZstd
	case ".lz4":
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// OpenReader opens path for reading, decompressing according to its extension
func OpenReader(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch DetectCompression(path) {
	case CompressionGzip:
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		return &stackedReader{Reader: gz, closers: []io.Closer{gz, file}}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return &stackedReader{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), file}}, nil
	case CompressionLZ4:
		return &stackedReader{Reader: lz4.NewReader(file), closers: []io.Closer{file}}, nil
	default:
		return file, nil
	}
}

// CreateWriter creates path for writing, compressing according to its extension.
// Close must be called to flush the codec.
func CreateWriter(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	switch DetectCompression(path) {
	case CompressionGzip:
		gz := gzip.NewWriter(file)
		return &stackedWriter{Writer: gz, closers: []io.Closer{gz, file}}, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to open zstd encoder: %w", err)
		}
		return &stackedWriter{Writer: enc, closers: []io.Closer{enc, file}}, nil
	case CompressionLZ4:
		lw := lz4.NewWriter(file)
		return &stackedWriter{Writer: lw, closers: []io.Closer{lw, file}}, nil
	default:
		return file, nil
	}
}

// stackedReader closes the codec before the underlying file
type stackedReader struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReader) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// stackedWriter flushes the codec before closing the underlying file
type stackedWriter struct {
	io.Writer
	closers []io.Closer
}

func (s *stackedWriter) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
