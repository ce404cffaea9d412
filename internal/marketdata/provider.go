// ABOUTME: Market-data provider interface and JSON file implementation
// ABOUTME: Flat per-ticker snapshots; missing metrics are valid, not errors
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/caselens/internal/models"
)

// Provider supplies the raw metrics snapshot for a ticker. Live quote
// services plug in behind this interface; the scorers tolerate any subset
// of metrics.
type Provider interface {
	Snapshot(ctx context.Context, ticker string) (models.MetricsSnapshot, error)
}

// FileProvider reads snapshots from <dir>/<TICKER>.json, each a flat
// JSON object of metric name to number. Useful offline and in classrooms
// where live data is pre-fetched.
type FileProvider struct {
	dir string
}

// NewFileProvider creates a FileProvider rooted at dir.
func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

// Snapshot loads the ticker's metrics file. Unknown keys are kept (scorers
// ignore what they don't read); missing keys are simply absent.
func (p *FileProvider) Snapshot(ctx context.Context, ticker string) (models.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(p.dir, strings.ToUpper(ticker)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metrics for %s: %w", ticker, err)
	}

	var snapshot models.MetricsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing metrics for %s: %w", ticker, err)
	}
	return snapshot, nil
}
