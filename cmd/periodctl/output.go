package main

import (
	"encoding/json"
	"io"
	"time"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
	"github.com/iota-uz/iota-periods/pkg/constants"
)

type periodLine struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Type      string              `json:"type"`
	StartDate string              `json:"startDate,omitempty"`
	EndDate   string              `json:"endDate,omitempty"`
	Positions []position.Position `json:"positions"`
}

func toPeriodLine(r period.Record) periodLine {
	return periodLine{
		ID:        r.ID,
		Title:     r.Title,
		Type:      r.Type,
		StartDate: dateOnly(r.StartDate),
		EndDate:   dateOnly(r.EndDate),
		Positions: r.Positions,
	}
}

func dateOnly(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.DateFormat)
}

// writeLines writes one JSON document per line.
func writeLines[T any](w io.Writer, items []T) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
