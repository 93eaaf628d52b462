package topology

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// EncodeSnapshot encodes a normalized snapshot with gob. Loading the gob form
// skips JSON decoding and GTFS parsing on restart.
//
// Example:
//
//	snap, _ := topology.LoadSnapshot(nil, "feeds/tokyo.zip")
//	if err := topology.SaveSnapshotFile(snap, "/cache/tokyo.gob"); err != nil {
//	    // handle error
//	}
func EncodeSnapshot(snap *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeSnapshotTo(snap, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeSnapshotTo writes the gob form of snap to w.
func EncodeSnapshotTo(snap *Snapshot, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot decodes a snapshot previously written by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	return DecodeSnapshotFrom(bytes.NewReader(data))
}

// DecodeSnapshotFrom reads a gob encoded snapshot from r.
func DecodeSnapshotFrom(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// SaveSnapshotFile writes the gob form of snap to path.
func SaveSnapshotFile(snap *Snapshot, path string) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshotCache reads a gob snapshot written by SaveSnapshotFile.
//
//	snap, err := topology.LoadSnapshotCache("/cache/tokyo.gob")
//	if err != nil {
//	    // cache miss or corrupted, load the source again
//	}
func LoadSnapshotCache(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return DecodeSnapshot(data)
}
