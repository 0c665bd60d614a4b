package model

import (
	"path/filepath"
	"strings"
)

// Format is the on-disk layout of a source file or an artifact
type Format int

const (
	// FormatText is delimited plain text (TSV)
	FormatText Format = iota
	// FormatXLSX is an Excel workbook; only the first sheet is used
	FormatXLSX
	// FormatParquet is an Apache Parquet file
	FormatParquet
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatParquet:
		return "parquet"
	default:
		return "text"
	}
}

// CompressionType represents the compression type
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the string representation of CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file extension for the compression type
func (c CompressionType) Extension() string {
	switch c {
	case CompressionGZ:
		return ".gz"
	case CompressionBZ2:
		return ".bz2"
	case CompressionXZ:
		return ".xz"
	case CompressionZSTD:
		return ".zst"
	default:
		return ""
	}
}

var compressionTypes = []CompressionType{CompressionGZ, CompressionBZ2, CompressionXZ, CompressionZSTD}

// DetectCompression returns the compression implied by the path suffix.
func DetectCompression(path string) CompressionType {
	lower := strings.ToLower(path)
	for _, c := range compressionTypes {
		if strings.HasSuffix(lower, c.Extension()) {
			return c
		}
	}
	return CompressionNone
}

// TrimCompression removes a compression suffix from path, if any.
func TrimCompression(path string) string {
	c := DetectCompression(path)
	return path[:len(path)-len(c.Extension())]
}

// DetectFormat returns the format implied by the path, ignoring any
// compression suffix. Unknown extensions are treated as delimited text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(TrimCompression(path))) {
	case ".xlsx":
		return FormatXLSX
	case ".parquet":
		return FormatParquet
	default:
		return FormatText
	}
}
