package remote

import (
	"bytes"
	"encoding/json"

	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

// flexID accepts both string and numeric identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type recordDTO struct {
	ID        flexID              `json:"id"`
	LegacyID  flexID              `json:"_id"`
	Title     string              `json:"title"`
	Type      string              `json:"type"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
	Positions []position.Position `json:"positions"`
}

func (r recordDTO) id() string {
	if r.ID != "" {
		return string(r.ID)
	}
	return string(r.LegacyID)
}

type payloadDTO struct {
	Title     string              `json:"title"`
	Type      string              `json:"type"`
	Positions []position.Position `json:"positions"`
	StartDate string              `json:"startDate"`
	EndDate   string              `json:"endDate"`
}
