package main

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
)

// compressionType is the compression of a parameter file, taken from its extension
type compressionType int

const (
	compressionNone compressionType = iota
	compressionGZ
	compressionBZ2
	compressionXZ
	compressionZSTD
)

const (
	extGZ   = ".gz"
	extBZ2  = ".bz2"
	extXZ   = ".xz"
	extZSTD = ".zst"
	extJSON = ".json"
	extXLSX = ".xlsx"
)

// inputType is the format of a parameter file once decompressed
type inputType int

const (
	inputTypeJSON inputType = iota
	inputTypeXLSX
	inputTypeUnsupported
)

// detectCompressionType detects the compression type from a file path
func detectCompressionType(path string) compressionType {
	path = strings.ToLower(path)

	switch {
	case strings.HasSuffix(path, extGZ):
		return compressionGZ
	case strings.HasSuffix(path, extBZ2):
		return compressionBZ2
	case strings.HasSuffix(path, extXZ):
		return compressionXZ
	case strings.HasSuffix(path, extZSTD):
		return compressionZSTD
	default:
		return compressionNone
	}
}

// removeCompressionExtension removes the compression extension from a file path if present
func removeCompressionExtension(path string) string {
	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(strings.ToLower(path), ext) {
			return path[:len(path)-len(ext)]
		}
	}
	return path
}

// detectInputType determines the input format after removing compression extensions.
// Files without a known extension are read as JSON.
func detectInputType(path string) inputType {
	switch strings.ToLower(filepath.Ext(removeCompressionExtension(path))) {
	case extXLSX:
		return inputTypeXLSX
	case extJSON, "":
		return inputTypeJSON
	default:
		return inputTypeUnsupported
	}
}

// newDecompressReader wraps reader with a decompression reader if needed
func newDecompressReader(reader io.Reader, ct compressionType) (io.Reader, func() error, error) {
	switch ct {
	case compressionNone:
		return reader, func() error { return nil }, nil

	case compressionGZ:
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case compressionBZ2:
		return bzip2.NewReader(reader), func() error { return nil }, nil

	case compressionXZ:
		xzReader, err := xz.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, func() error { return nil }, nil

	case compressionZSTD:
		decoder, err := zstd.NewReader(reader)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression type: %v", ct)
	}
}

// openInput opens a parameter file and returns a reader that handles decompression
func openInput(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path) //nolint:gosec // the path is given on the command line
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	reader, cleanup, err := newDecompressReader(file, detectCompressionType(path))
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}

	return reader, func() error {
		cleanupErr := cleanup()
		if closeErr := file.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}, nil
}

// readInput decodes the parameters of opt.Input, or JSON from stdin when no file is given.
func readInput(opt option, stdin io.Reader) ([]any, error) {
	if opt.Input == "" {
		return decodeParameters(stdin)
	}

	kind := detectInputType(opt.Input)
	if kind == inputTypeUnsupported {
		return nil, fmt.Errorf("unsupported input file %s: want .json or .xlsx, optionally compressed", opt.Input)
	}

	reader, cleanup, err := openInput(opt.Input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cleanup() }()

	if kind == inputTypeXLSX {
		return decodeSpreadsheet(reader, opt.Sheet, opt.Row)
	}
	return decodeParameters(reader)
}
