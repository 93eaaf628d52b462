package topology

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of a snapshot source.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatGob  Format = "gob"
	FormatGTFS Format = "gtfs"
)

// FormatFromPath guesses the snapshot format from a file name or URL.
func FormatFromPath(p string) Format {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yml", ".yaml":
		return FormatYAML
	case ".gob":
		return FormatGob
	case ".zip":
		return FormatGTFS
	default:
		return FormatJSON
	}
}

// ParseSnapshot decodes a snapshot and normalizes its identifiers.
func ParseSnapshot(data []byte, format Format) (*Snapshot, error) {
	var (
		snap *Snapshot
		err  error
	)
	switch format {
	case FormatYAML:
		snap = &Snapshot{}
		err = yaml.Unmarshal(data, snap)
	case FormatGob:
		snap, err = DecodeSnapshot(data)
	case FormatGTFS:
		snap, err = FromGTFSZip(data)
	default:
		snap = &Snapshot{}
		err = json.Unmarshal(data, snap)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", format, err)
	}
	if err := snap.Normalize(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Fetch reads raw bytes from an HTTP(S) URL or a local file path.
// An empty location yields nil bytes and no error.
func Fetch(client *http.Client, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, nil
	}
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Get(urlOrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}
	return io.ReadAll(resp.Body)
}

// LoadSnapshot fetches and decodes a snapshot, picking the format from the
// location's extension.
func LoadSnapshot(client *http.Client, urlOrPath string) (*Snapshot, error) {
	data, err := Fetch(client, urlOrPath)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("topology: no snapshot location configured")
	}
	snap, err := ParseSnapshot(data, FormatFromPath(urlOrPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", urlOrPath, err)
	}
	if snap.ID == "" {
		snap.ID = filepath.Base(urlOrPath)
	}
	return snap, nil
}
