package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/furlang/coretor/internal/utils"
)

// WordPair is one record of the word-store build feed.
type WordPair struct {
	Word      string
	Frequency int
}

// ErrorEntry is one record of the error-table build feed. Corrections keeps
// the source order; empty strings are placeholder slots carried over from the
// legacy table and are filtered later, at snapshot build time.
type ErrorEntry struct {
	Wrong       string
	Corrections []string
}

// LoadWordFeed reads a tab-separated word feed: one `word<TAB>frequency` pair
// per line. Blank lines and lines starting with # are skipped. A missing
// frequency column defaults to 0.
func LoadWordFeed(path string) ([]WordPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word feed %s: %w", path, err)
	}
	defer file.Close()

	var pairs []WordPair
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, freqStr, hasFreq := strings.Cut(line, "\t")
		freq := 0
		if hasFreq {
			freq, err = strconv.Atoi(strings.TrimSpace(freqStr))
			if err != nil {
				return nil, fmt.Errorf("word feed %s:%d: bad frequency %q: %w", path, lineNo, freqStr, err)
			}
			if freq < 0 {
				return nil, fmt.Errorf("word feed %s:%d: negative frequency %d", path, lineNo, freq)
			}
		}
		pairs = append(pairs, WordPair{Word: word, Frequency: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word feed %s: %w", path, err)
	}
	log.Debugf("word feed %s: %d entries", path, len(pairs))
	return pairs, nil
}

// LoadErrorFeed reads the error-table feed: one `wrong<TAB>corr1,corr2,...`
// line per misspelling. Empty slots between commas are kept as empty strings
// so the snapshot builder can tell placeholders from real corrections.
func LoadErrorFeed(path string) ([]ErrorEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open error feed %s: %w", path, err)
	}
	defer file.Close()

	var entries []ErrorEntry
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		wrong, corrStr, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("error feed %s:%d: missing corrections column", path, lineNo)
		}
		corrections := strings.Split(corrStr, ",")
		for i := range corrections {
			corrections[i] = strings.TrimSpace(corrections[i])
		}
		entries = append(entries, ErrorEntry{Wrong: wrong, Corrections: corrections})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read error feed %s: %w", path, err)
	}
	log.Debugf("error feed %s: %d entries", path, len(entries))
	return entries, nil
}

// LoadElisionFeed reads the elidable-word list: one word per line.
func LoadElisionFeed(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open elision feed %s: %w", path, err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read elision feed %s: %w", path, err)
	}
	log.Debugf("elision feed %s: %d entries", path, len(words))
	return words, nil
}

// ChunkFiles lists the binary chunk files (dict_NNNN.bin) in dir, sorted by
// chunk ID.
func ChunkFiles(dir string) ([]string, error) {
	pattern := filepath.Join(dir, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scan chunk dir %s: %w", dir, err)
	}
	type chunk struct {
		id   int
		path string
	}
	var chunks []chunk
	for _, file := range files {
		basename := filepath.Base(file)
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		if id, err := strconv.Atoi(idStr); err == nil {
			chunks = append(chunks, chunk{id: id, path: file})
		}
	}
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].id < chunks[j].id })
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.path
	}
	return out, nil
}

// LoadChunkFile reads one binary chunk: a little-endian int32 entry count,
// then per entry a uint16-length-prefixed UTF-8 word and a uint16 rank. Rank
// 1 is the most frequent word; ranks are inverted into frequency scores so
// higher still means more common.
func LoadChunkFile(path string) ([]WordPair, error) {
	if err := ValidateFileFormat(path, FormatChunk); err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chunk %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReader(file)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("read chunk header %s: %w", path, err)
	}

	pairs := make([]WordPair, 0, totalEntries)
	for count := 0; count < int(totalEntries); count++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read word length in %s: %w", path, err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return nil, fmt.Errorf("read word in %s: %w", path, err)
		}
		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("read rank in %s: %w", path, err)
		}
		// rank 1 -> 65535, rank 2 -> 65534, ...
		score := int(65535 - rank + 1)
		pairs = append(pairs, WordPair{Word: string(wordBytes), Frequency: score})
	}
	log.Debugf("chunk %s: %d entries", path, len(pairs))
	return pairs, nil
}

// LoadChunkDir eagerly loads every chunk file in dir into a single feed.
// There is no lazy loading here: the word store is built once and frozen.
func LoadChunkDir(dir string) ([]WordPair, error) {
	files, err := ChunkFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}
	var pairs []WordPair
	for _, file := range files {
		chunk, err := LoadChunkFile(file)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, chunk...)
	}
	return pairs, nil
}

// WriteChunkFile writes pairs in the binary chunk format. Used by tooling and
// tests; the engine itself never writes dictionaries.
func WriteChunkFile(path string, pairs []WordPair) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := binary.Write(writer, binary.LittleEndian, int32(len(pairs))); err != nil {
		return err
	}
	// Feed order is frequency order, so position doubles as rank.
	ranks := utils.CreateRankList(len(pairs))
	for i, p := range pairs {
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(p.Word))); err != nil {
			return err
		}
		if _, err := writer.WriteString(p.Word); err != nil {
			return err
		}
		if err := binary.Write(writer, binary.LittleEndian, ranks[i]); err != nil {
			return err
		}
	}
	return writer.Flush()
}
