package tablestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/opsgrade/posture-engine/internal/models"
)

// RecommendationRecord is the persisted shape of a catalog entry.
// RecommendationID is the free-form human key, distinct from the store's
// own primary key; Technologies is a JSON array encoded as a string.
type RecommendationRecord struct {
	ID               string `json:"ID,omitempty"`
	RecommendationID string `json:"recommendation_id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Priority         string `json:"priority"`
	Domain           string `json:"domain"`
	Technologies     string `json:"technologies,omitempty"`
	Effort           string `json:"effort,omitempty"`
	IsActive         bool   `json:"is_active"`
}

// EncodeTechnologies serializes an ordered technology list to the stored
// string form. An empty list encodes to the empty string.
func EncodeTechnologies(technologies []string) (string, error) {
	if len(technologies) == 0 {
		return "", nil
	}
	data, err := json.Marshal(technologies)
	if err != nil {
		return "", fmt.Errorf("failed to encode technologies: %w", err)
	}
	return string(data), nil
}

// DecodeTechnologies parses the stored string form back into a list.
// Malformed payloads degrade to an empty list rather than propagating.
func DecodeTechnologies(encoded string) []string {
	if encoded == "" {
		return nil
	}
	var technologies []string
	if err := json.Unmarshal([]byte(encoded), &technologies); err != nil {
		return nil
	}
	return technologies
}

// ToModel normalizes a stored record into the logical Recommendation
func (r *RecommendationRecord) ToModel() models.Recommendation {
	return models.Recommendation{
		ID:           r.RecommendationID,
		Title:        r.Title,
		Description:  r.Description,
		Priority:     models.Priority(r.Priority),
		Domain:       r.Domain,
		Technologies: DecodeTechnologies(r.Technologies),
		Effort:       r.Effort,
	}
}

// RecordFromModel builds a storable record from a logical Recommendation
func RecordFromModel(rec models.Recommendation, storageID string, active bool) (RecommendationRecord, error) {
	encoded, err := EncodeTechnologies(rec.Technologies)
	if err != nil {
		return RecommendationRecord{}, err
	}
	return RecommendationRecord{
		ID:               storageID,
		RecommendationID: rec.ID,
		Title:            rec.Title,
		Description:      rec.Description,
		Priority:         string(rec.Priority),
		Domain:           rec.Domain,
		Technologies:     encoded,
		Effort:           rec.Effort,
		IsActive:         active,
	}, nil
}

// PageRecommendations fetches and decodes a page of catalog records
func (c *Client) PageRecommendations(ctx context.Context, tableID string, q PageQuery) ([]RecommendationRecord, int, error) {
	raw, total, err := c.Page(ctx, tableID, q)
	if err != nil {
		return nil, 0, err
	}

	records := make([]RecommendationRecord, 0, len(raw))
	for _, item := range raw {
		var rec RecommendationRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, 0, fmt.Errorf("failed to decode recommendation record: %w", err)
		}
		records = append(records, rec)
	}
	return records, total, nil
}
