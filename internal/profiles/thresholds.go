package profiles

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchcryptid/travel-suitability-service/internal/domain"
)

// LoadThresholds returns the default threshold table overlaid with the JSON
// file at path. Activities or fields absent from the file keep their default
// values. An empty path returns the defaults unchanged.
func LoadThresholds(path string) (domain.ThresholdTable, error) {
	th := domain.DefaultThresholds()
	if path == "" {
		return th, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("read thresholds: %w", err)
	}
	if err := json.Unmarshal(data, &th); err != nil {
		return th, fmt.Errorf("decode thresholds: %w", err)
	}
	if err := th.Validate(); err != nil {
		return th, fmt.Errorf("invalid thresholds: %w", err)
	}
	return th, nil
}
