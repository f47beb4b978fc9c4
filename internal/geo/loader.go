package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/paypulse/backend/internal/domain"
)

// DefaultBoundaryURL points at the public India state boundary dataset.
const DefaultBoundaryURL = "https://gist.githubusercontent.com/jbrobst/56c13bbbf9d97d187fea01ca62ea5112/" +
	"raw/e388c4cae20aa53cb5090210a42ebb9b765c0a36/india_states.geojson"

// Loader reads the boundary FeatureCollection once at startup. The loaded
// collection is immutable for the life of the process.
type Loader struct {
	path       string
	url        string
	httpClient *http.Client
}

// NewLoader creates a boundary loader. A non-empty path takes precedence
// over the URL; an empty URL falls back to DefaultBoundaryURL.
func NewLoader(path, url string) *Loader {
	if url == "" {
		url = DefaultBoundaryURL
	}
	return &Loader{
		path: path,
		url:  url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Load reads the boundary collection from the local file when a path is
// configured, otherwise fetches it over HTTP.
func (l *Loader) Load(ctx context.Context) (*domain.FeatureCollection, error) {
	if l.path != "" {
		return l.loadFile()
	}
	return l.fetch(ctx)
}

func (l *Loader) loadFile() (*domain.FeatureCollection, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("geo: failed to read boundary file: %w", err)
	}
	return decodeCollection(data)
}

func (l *Loader) fetch(ctx context.Context) (*domain.FeatureCollection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("geo: failed to create boundary request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo: failed to fetch boundary: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo: boundary fetch returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("geo: failed to read boundary response: %w", err)
	}
	return decodeCollection(data)
}

func decodeCollection(data []byte) (*domain.FeatureCollection, error) {
	var fc domain.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("geo: failed to decode boundary geojson: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("geo: boundary geojson has no features")
	}
	return &fc, nil
}
