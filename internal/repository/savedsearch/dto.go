package savedsearch

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/troismondes/gigdex/internal/domain"
	"github.com/troismondes/gigdex/internal/domain/criterion"
	domss "github.com/troismondes/gigdex/internal/domain/savedsearch"
)

// dto is the stored JSON shape. Timestamps are epoch seconds so the index
// can range over them.
type dto struct {
	TenantID    string                `json:"entrepriseId"`
	UserID      string                `json:"userId"`
	Type        string                `json:"type"`
	Name        string                `json:"nom"`
	Description string                `json:"description,omitempty"`
	Criteria    []criterion.Criterion `json:"criteres"`
	Results     domss.Snapshot        `json:"resultats,omitempty"`
	CreatedAt   int64                 `json:"createdAt"`
	UpdatedAt   int64                 `json:"updatedAt"`
}

func key(id string) string {
	return domain.KeyPrefix + "selections:" + id
}

func indexName() string {
	return domain.KeyPrefix + "selections:idx"
}

func idFromKey(k string) string {
	return strings.TrimPrefix(k, domain.KeyPrefix+"selections:")
}

func toDTO(s domss.SavedSearch) dto {
	typ := TypePlain
	if s.WithResults {
		typ = TypeWithResults
	}
	return dto{
		TenantID:    s.TenantID,
		UserID:      s.UserID,
		Type:        typ,
		Name:        s.Name,
		Description: s.Description,
		Criteria:    s.Criteria,
		Results:     s.Results.Cap(),
		CreatedAt:   s.CreatedAt.Unix(),
		UpdatedAt:   s.UpdatedAt.Unix(),
	}
}

func fromDTO(id string, d dto) domss.SavedSearch {
	return domss.SavedSearch{
		ID:          id,
		TenantID:    d.TenantID,
		UserID:      d.UserID,
		Name:        d.Name,
		Description: d.Description,
		Criteria:    d.Criteria,
		Results:     d.Results,
		WithResults: d.Type == TypeWithResults,
		CreatedAt:   time.Unix(d.CreatedAt, 0).UTC(),
		UpdatedAt:   time.Unix(d.UpdatedAt, 0).UTC(),
	}
}

// parseDTO accepts both reply shapes: JSON.GET $ wraps the document in a
// one-element array, FT.SEARCH returns the bare object.
func parseDTO(raw []byte) (dto, error) {
	var list []dto
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return dto{}, domain.ErrNotFound
		}
		return list[0], nil
	}

	var d dto
	if err := json.Unmarshal(raw, &d); err != nil {
		return dto{}, fmt.Errorf("unmarshal: %w", err)
	}
	return d, nil
}
