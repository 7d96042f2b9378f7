package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/arloliu/endfx/errs"
	"github.com/arloliu/endfx/export"
	"github.com/arloliu/endfx/format"
	"github.com/arloliu/endfx/internal/hash"
	"github.com/arloliu/endfx/material"
)

// ManifestName is the file name of the manifest inside the output root.
const ManifestName = ".endfx-manifest.json"

// Entry records the last successful export of one source file.
type Entry struct {
	Source      string    `json:"source"`
	Material    string    `json:"material"`
	Fingerprint string    `json:"fingerprint"`
	Artifacts   []string  `json:"artifacts"`
	RunID       string    `json:"run_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Manifest is the set of entries persisted in the output root. It is safe for
// concurrent use.
type Manifest struct {
	mu      sync.Mutex
	path    string
	entries map[string]Entry
}

type manifestDoc struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

const manifestVersion = 1

// LoadManifest reads the manifest of root. A missing manifest yields an empty one.
func LoadManifest(root string) (*Manifest, error) {
	m := &Manifest{
		path:    filepath.Join(root, ManifestName),
		entries: make(map[string]Entry),
	}

	data, err := export.ReadFile(m.path)
	if errors.Is(err, errs.ErrFileNotFound) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}

	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: manifest %s: %w", errs.ErrInvalidJSON, m.path, err)
	}
	if doc.Version != manifestVersion {
		return nil, fmt.Errorf("%w: manifest %s has version %d", errs.ErrInvalidJSON, m.path, doc.Version)
	}
	for _, e := range doc.Entries {
		m.entries[e.Source] = e
	}

	return m, nil
}

// Path returns the manifest file location.
func (m *Manifest) Path() string {
	return m.path
}

// Lookup returns the entry recorded for source.
func (m *Manifest) Lookup(source string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[source]

	return e, ok
}

// Record stores e, replacing any entry for the same source.
func (m *Manifest) Record(e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[e.Source] = e
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

// Save writes the manifest atomically, entries sorted by source.
func (m *Manifest) Save() error {
	m.mu.Lock()
	doc := manifestDoc{Version: manifestVersion, Entries: make([]Entry, 0, len(m.entries))}
	for _, e := range m.entries {
		doc.Entries = append(doc.Entries, e)
	}
	m.mu.Unlock()

	slices.SortFunc(doc.Entries, func(a, b Entry) int {
		switch {
		case a.Source < b.Source:
			return -1
		case a.Source > b.Source:
			return 1
		default:
			return 0
		}
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	_, _, err = export.WriteFile(m.path, append(data, '\n'), format.CompressionNone)

	return err
}

// upToDate reports whether e describes an export of the same tables whose
// artifacts are all still present.
func (e Entry) upToDate(fingerprint string) bool {
	if e.Fingerprint != fingerprint || len(e.Artifacts) == 0 {
		return false
	}
	for _, a := range e.Artifacts {
		if _, err := os.Stat(a); err != nil {
			return false
		}
	}

	return true
}

// fingerprint identifies the exported bytes of m under cfg: the material's tables
// and name plus every setting that changes the written artifacts.
func fingerprint(m *material.Material, cfg *config) string {
	h := hash.NewHasher()
	h.WriteUint64(m.Fingerprint())
	h.WriteInt(int(cfg.compression))
	h.WriteString(strconv.FormatBool(cfg.json))
	h.WriteInt(len(cfg.channels))
	for _, ch := range cfg.channels {
		h.WriteString(ch.Name)
		h.WriteInt(len(ch.ReactionIDs))
		for _, id := range ch.ReactionIDs {
			h.WriteInt(id)
		}
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
