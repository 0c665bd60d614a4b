package tsvenn

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/nao1215/tsvenn/domain/model"
)

// codec wraps readers and writers for one compression type
type codec struct {
	compression model.CompressionType
}

// codecFor returns the codec implied by the path suffix
func codecFor(path string) codec {
	return codec{compression: model.DetectCompression(path)}
}

// reader wraps r with a decompression reader if needed
func (c codec) reader(r io.Reader) (io.Reader, func() error, error) {
	switch c.compression {
	case model.CompressionNone:
		return r, func() error { return nil }, nil

	case model.CompressionGZ:
		gzReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzReader, gzReader.Close, nil

	case model.CompressionBZ2:
		// bzip2.NewReader doesn't need closing
		return bzip2.NewReader(r), func() error { return nil }, nil

	case model.CompressionXZ:
		xzReader, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzReader, func() error { return nil }, nil

	case model.CompressionZSTD:
		decoder, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		return decoder, func() error {
			decoder.Close()
			return nil
		}, nil

	default:
		return nil, nil, fmt.Errorf("%w: compression %v", ErrUnsupportedFormat, c.compression)
	}
}

// writer wraps w with a compression writer if needed
func (c codec) writer(w io.Writer) (io.Writer, func() error, error) {
	switch c.compression {
	case model.CompressionNone:
		return w, func() error { return nil }, nil

	case model.CompressionGZ:
		gzWriter := gzip.NewWriter(w)
		return gzWriter, gzWriter.Close, nil

	case model.CompressionXZ:
		xzWriter, err := xz.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		return xzWriter, xzWriter.Close, nil

	case model.CompressionZSTD:
		zstdWriter, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zstdWriter, zstdWriter.Close, nil

	default:
		// the standard library has no bzip2 writer
		return nil, nil, fmt.Errorf("%w: writing %s compressed files", ErrUnsupportedFormat, c.compression)
	}
}

// openSource opens a file and returns a reader that handles decompression.
// The returned cleanup closes the decompressor and the file.
func openSource(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path) //nolint:gosec // Source paths come from the load descriptor
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	reader, cleanup, err := codecFor(path).reader(file)
	if err != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrSourceUnreadable, path, err)
	}

	return reader, func() error {
		cleanupErr := cleanup()
		if closeErr := file.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}, nil
}

// createArtifact creates a file and returns a writer that handles
// compression. The returned cleanup flushes the compressor, syncs and
// closes the file; its error must be checked.
func createArtifact(path string) (io.Writer, func() error, error) {
	file, err := os.Create(path) //nolint:gosec // Artifact paths come from configuration
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file: %w", err)
	}

	writer, cleanup, err := codecFor(path).writer(file)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return nil, nil, err
	}

	return writer, func() error {
		cleanupErr := cleanup()
		if syncErr := file.Sync(); syncErr != nil && cleanupErr == nil {
			cleanupErr = syncErr
		}
		if closeErr := file.Close(); closeErr != nil && cleanupErr == nil {
			cleanupErr = closeErr
		}
		return cleanupErr
	}, nil
}
