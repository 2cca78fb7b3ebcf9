// Package share implements the shareable-state codec: a SampleConfig is
// serialized to compact JSON and base64url-encoded so it can live in a URL
// fragment. Decoding is the exact inverse; a round trip preserves structure.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/pubtools/gptsampler/internal/models"
)

// Encode serializes cfg into an unpadded base64url state string.
func Encode(cfg *models.SampleConfig) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode parses a state string produced by Encode. Standard base64 padding is
// tolerated since browsers sometimes re-encode fragments.
func Decode(state string) (*models.SampleConfig, error) {
	data, err := base64.RawURLEncoding.DecodeString(trimPadding(state))
	if err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	var cfg models.SampleConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == '=' {
		s = s[:len(s)-1]
	}
	return s
}
