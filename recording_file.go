package reel

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RecordingExt is the file extension used by SaveRecording callers and
// watched by RecordingWatcher.
const RecordingExt = ".reel"

// SaveRecording writes the current recording to path as gzip-compressed
// recording text. Missing parent directories are created.
func (c *Controller) SaveRecording(path string) error {
	if c.record == nil {
		return fmt.Errorf("save recording %s: nothing recorded", path)
	}
	rec := c.record
	if c.mode == ModeRecording {
		snapshot := *c.record
		snapshot.Length = c.tick
		rec = &snapshot
	}
	return WriteRecordingFile(path, rec)
}

// PlaybackFile loads a recording file and starts playing it.
func (c *Controller) PlaybackFile(path string) error {
	rec, err := ReadRecordingFile(path)
	if err != nil {
		return err
	}
	return c.PlaybackRecording(rec)
}

// WriteRecordingFile writes rec to path as gzip-compressed recording text.
func WriteRecordingFile(path string, rec *Recording) error {
	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save recording: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save recording: create %s: %w", path, err)
	}
	zw := gzip.NewWriter(f)
	zw.Name = filepath.Base(path)
	zw.ModTime = time.Now()
	if _, err := io.WriteString(zw, rec.Encode()); err != nil {
		zw.Close()
		f.Close()
		return fmt.Errorf("save recording: write %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return fmt.Errorf("save recording: write %s: %w", path, err)
	}
	return f.Close()
}

// ReadRecordingFile reads a file written by WriteRecordingFile.
func ReadRecordingFile(path string) (*Recording, error) {
	path = filepath.Clean(path)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load recording: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w: %w", path, ErrMalformedRecording, err)
	}
	defer zr.Close()

	text, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w: %w", path, ErrMalformedRecording, err)
	}
	rec, err := DecodeRecording(string(text))
	if err != nil {
		return nil, fmt.Errorf("load recording %s: %w", path, err)
	}
	return rec, nil
}

// RecordingFileName builds a timestamped file name for a recording, e.g.
// "boss_fight_20260102_150405.reel".
func RecordingFileName(label string, now time.Time) string {
	return sanitizeLabel(label) + "_" + now.Format("20060102_150405") + RecordingExt
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
