package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPath is the system word list used when no dictionary is given.
const DefaultPath = "/usr/share/dict/words"

// maxBinaryWords bounds the header of a binary dictionary.
const maxBinaryWords = 10_000_000

// LoaderStats describes a finished load.
type LoaderStats struct {
	Lines    int
	Words    int
	Skipped  int
	Format   FileFormat
	Duration time.Duration
}

// LoadFile loads a dictionary from path, detecting its format.
func LoadFile(path string, opts Options) (*Dictionary, LoaderStats, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, LoaderStats{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, LoaderStats{}, fmt.Errorf("failed to open dictionary file %s: %w", path, err)
	}
	defer file.Close()

	var (
		dict  *Dictionary
		stats LoaderStats
	)
	switch format {
	case FormatBinary:
		dict, stats, err = LoadBinary(file, opts)
	default:
		dict, stats, err = LoadText(file, opts)
	}
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read dictionary file %s: %w", path, err)
	}
	stats.Format = format

	log.Debugf("Loaded %s dictionary %s: %d words from %d lines (%d skipped) in %v",
		format, path, stats.Words, stats.Lines, stats.Skipped, stats.Duration)
	return dict, stats, nil
}

// LoadText reads one word per line from r.
func LoadText(r io.Reader, opts Options) (*Dictionary, LoaderStats, error) {
	start := time.Now()
	dict := New(opts)
	stats := LoaderStats{Format: FormatText}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		stats.Lines++
		if !dict.Add(scanner.Text()) {
			stats.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}

	stats.Words = dict.Len()
	stats.Duration = time.Since(start)
	if stats.Words == 0 {
		return dict, stats, ErrEmptyDictionary
	}
	return dict, stats, nil
}

// LoadBinary reads a compiled dictionary: an int32 word count followed by
// a uint16 length and the bytes of every word, little endian.
// Words are filtered again with opts.
func LoadBinary(r io.Reader, opts Options) (*Dictionary, LoaderStats, error) {
	start := time.Now()
	dict := New(opts)
	stats := LoaderStats{Format: FormatBinary}
	reader := bufio.NewReader(r)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return nil, stats, fmt.Errorf("failed to read header: %w", err)
	}
	if total < 0 || total > maxBinaryWords {
		return nil, stats, fmt.Errorf("invalid word count %d in header", total)
	}

	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			return nil, stats, fmt.Errorf("failed to read word length: %w", err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return nil, stats, fmt.Errorf("failed to read word: %w", err)
		}
		stats.Lines++
		if !dict.Add(string(wordBytes)) {
			stats.Skipped++
		}
	}

	stats.Words = dict.Len()
	stats.Duration = time.Since(start)
	if stats.Words == 0 {
		return dict, stats, ErrEmptyDictionary
	}
	return dict, stats, nil
}

// WriteBinary writes the words of dict in the binary format.
func WriteBinary(w io.Writer, dict *Dictionary) error {
	words := dict.Words()
	writer := bufio.NewWriter(w)

	if err := binary.Write(writer, binary.LittleEndian, int32(len(words))); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, word := range words {
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("failed to write word length: %w", err)
		}
		if _, err := writer.WriteString(word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
	}
	return writer.Flush()
}

// WriteBinaryFile compiles dict into the file at path.
func WriteBinaryFile(path string, dict *Dictionary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteBinary(file, dict); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
