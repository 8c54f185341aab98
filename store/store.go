// Package store keeps an append-only log of triggered analyses. The log is
// informational: nothing in it feeds back into report generation.
package store

import (
	"context"
	"fmt"
	"strings"

	"terrawatch/models"
)

// RunLog records analysis runs.
type RunLog interface {
	Record(ctx context.Context, run models.Run) (models.Run, error)
	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]models.Run, error)
	Close(ctx context.Context) error
}

// Settings selects and configures a backend.
type Settings struct {
	Driver     string // memory | sqlite | mongo
	SQLitePath string
	MongoURI   string
	MongoDB    string
	MemorySize int
}

// Open builds the backend named by s.Driver.
func Open(ctx context.Context, s Settings) (RunLog, error) {
	switch strings.ToLower(strings.TrimSpace(s.Driver)) {
	case "", "memory":
		return NewMemory(s.MemorySize), nil
	case "sqlite":
		return NewSQLite(s.SQLitePath)
	case "mongo":
		return NewMongo(ctx, s.MongoURI, s.MongoDB)
	default:
		return nil, fmt.Errorf("unknown store driver %q", s.Driver)
	}
}
