package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat identifies a dictionary feed format on disk.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatChunk              // chunked binary word feed (dict_NNNN.bin)
	FormatFeed               // tab-separated text feed
)

// FormatInfo describes one supported feed format.
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Word Feed",
		Extensions:  []string{".bin"},
		MinSize:     4, // entry count header
	},
	FormatFeed: {
		Format:      FormatFeed,
		Description: "Tab-Separated Text Feed",
		Extensions:  []string{".tsv", ".txt"},
		MinSize:     1,
	},
}

// maxChunkEntries bounds the header entry count; anything larger means a
// corrupt or mislabelled file.
const maxChunkEntries = 1_000_000

// ValidateFileFormat checks that a file plausibly matches the expected format
// before the loader commits to parsing it.
func ValidateFileFormat(filename string, expected FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expected]
	if !exists {
		return fmt.Errorf("unknown format: %v", expected)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for %s (minimum %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, e := range formatInfo.Extensions {
		if ext == e {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has extension %s, %s expects %v",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expected == FormatChunk {
		return validateChunkHeader(filename)
	}
	return nil
}

func validateChunkHeader(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	var entryCount int32
	if err := binary.Read(file, binary.LittleEndian, &entryCount); err != nil {
		return fmt.Errorf("read header from %s: %w", filename, err)
	}
	if entryCount < 0 {
		return fmt.Errorf("invalid entry count in %s: %d", filename, entryCount)
	}
	if entryCount > maxChunkEntries {
		return fmt.Errorf("suspicious entry count in %s: %d", filename, entryCount)
	}
	log.Debugf("chunk %s validated: %d entries", filename, entryCount)
	return nil
}

// DetectFileFormat sniffs the feed format from the file name and header.
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	basename := strings.ToLower(filepath.Base(filename))

	if strings.HasPrefix(basename, "dict_") && ext == ".bin" {
		if err := ValidateFileFormat(filename, FormatChunk); err == nil {
			return FormatChunk, nil
		}
	}
	if ext == ".tsv" || ext == ".txt" {
		if err := ValidateFileFormat(filename, FormatFeed); err == nil {
			return FormatFeed, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", filename)
}
