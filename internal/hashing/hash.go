package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/mmrzaf/jsonfixture/internal/domain"
)

// profileHashPayload lists everything that changes the generated bytes.
// Name and output path are deliberately absent.
type profileHashPayload struct {
	Count     int           `json:"count"`
	Seed      int64         `json:"seed"`
	Delimiter string        `json:"delimiter"`
	Style     string        `json:"style"`
	Keys      string        `json:"keys"`
	Limits    domain.Limits `json:"limits"`
}

func HashProfile(p *domain.Profile) (string, error) {
	payload := profileHashPayload{
		Count:     p.Count,
		Seed:      p.Seed,
		Delimiter: p.Delimiter,
		Style:     p.Style,
		Keys:      p.Keys,
		Limits:    p.Limits,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
