package storage

import (
	"time"

	"cte/internal/config"
	"cte/internal/domain"
)

// Storage persists and loads test run results (e.g. for the failures viewer).
type Storage interface {
	Save(results []domain.FileResult, duration time.Duration, program string) (*domain.TestResultsOutput, error)
	Load() (*domain.TestResultsOutput, error)
	// SaveOutput writes the full output (e.g. after marking failures resolved).
	SaveOutput(output *domain.TestResultsOutput) error
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
