package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jacobjacobjacobjacobjacob/apple-health-data-parser/internal/utils"
)

// Manifest records one parse run for diagnostics: which extractors ran,
// how many records each produced, and how long the run took.
type Manifest struct {
	RunID        string           `json:"run_id"`
	Source       string           `json:"source"`
	StartedAt    time.Time        `json:"started_at"`
	FinishedAt   time.Time        `json:"finished_at"`
	TotalRecords int              `json:"total_records"`
	Extractors   []ExtractorEntry `json:"extractors"`
}

// ExtractorEntry is one (category, metric) extraction result.
type ExtractorEntry struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Records  int      `json:"records"`
	Error    string   `json:"error,omitempty"`
}

// NewManifest starts a manifest for a parse of the given source document.
func NewManifest(source string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

// Save writes the manifest atomically. Unlike the raw-record JSON, the
// manifest always reflects the latest run.
func (m *Manifest) Save(path string) error {
	b, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a previously saved manifest.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
