// Package source loads the communication collection consumed by the
// catalog. The collection is a JSON document with shape {"items": [...]},
// read once at startup from a local file or an http(s) URL; there is no
// polling or incremental sync. Load failures are reported to the caller,
// which renders an empty catalog rather than crashing.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/commdeck/commdeck/pkg/core"
	"github.com/commdeck/commdeck/pkg/log"
)

var logger = log.ForService("source")

// document is the wire shape of a communication collection.
type document struct {
	Items []*core.Comm `json:"items"`
}

// Load reads the communication collection from a local path or an http(s)
// URL. Comms arriving without an id are assigned one so downstream layers
// can address them.
func Load(ctx context.Context, location string) ([]*core.Comm, error) {
	var (
		data []byte
		err  error
	)
	if isURL(location) {
		data, err = fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("reading items from %s: %w", location, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding items document: %w", err)
	}

	comms := make([]*core.Comm, 0, len(doc.Items))
	assigned := 0
	for _, c := range doc.Items {
		if c == nil {
			continue
		}
		if c.ID() == "" {
			c = c.WithID(uuid.NewString())
			assigned++
		}
		comms = append(comms, c)
	}

	logger.Infof("loaded %d communications from %s", len(comms), location)
	if assigned > 0 {
		logger.Debugf("assigned ids to %d communications without one", assigned)
	}
	return comms, nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warnf("closing response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return data, nil
}
