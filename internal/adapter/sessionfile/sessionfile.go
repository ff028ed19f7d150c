// Package sessionfile is the ingestion collaborator: it reconstructs
// per-driver session history from a JSON document produced by the data
// pipeline. The engine itself never touches a file format.
package sessionfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/steadyapp/steady-backend/internal/domain/models"
	"github.com/steadyapp/steady-backend/pkg/logger"
	wrap "github.com/steadyapp/steady-backend/pkg/logger/wrapper"
)

type Source struct {
	path string
	l    logger.Logger

	byDriver map[string][]models.Session
}

// New reads and decodes the session history file. The document maps driver
// ids to their session lists:
//
//	{"driver1": [{"driver_id": "driver1", "timestamp": "...", ...}], ...}
func New(ctx context.Context, path string, l logger.Logger) (*Source, error) {
	ctx = wrap.WithAction(ctx, "load_session_file")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	byDriver := make(map[string][]models.Session)
	if err := json.Unmarshal(data, &byDriver); err != nil {
		return nil, fmt.Errorf("failed to decode session file %s: %w", path, err)
	}

	total := 0
	for _, sessions := range byDriver {
		total += len(sessions)
	}
	l.Info(ctx, "session history loaded", "path", path, "drivers", len(byDriver), "sessions", total)

	return &Source{path: path, l: l, byDriver: byDriver}, nil
}

// SessionsByDriver returns all histories, keyed by driver id.
func (s *Source) SessionsByDriver() map[string][]models.Session {
	return s.byDriver
}

// SessionsFor returns one driver's history in file order.
func (s *Source) SessionsFor(driverID string) []models.Session {
	return s.byDriver[driverID]
}
