package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/iota-periods/modules/periods/domain/aggregates/period"
	"github.com/iota-uz/iota-periods/modules/periods/domain/entities/position"
)

func TestPeriodToViewModel(t *testing.T) {
	vm := PeriodToViewModel("/periods", period.Record{
		ID:        "a/b",
		Title:     "Semester",
		Type:      "STAFF",
		StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Positions: []position.Position{position.New("p1", "")},
	})
	require.Equal(t, "/periods/a%2Fb", vm.EditURL)
	require.Equal(t, "Staff", vm.DisplayType)
	require.Equal(t, "2024-01-01", vm.StartDate)
	require.Empty(t, vm.EndDate)
	require.Equal(t, 1, vm.PositionsCount)
}

func TestPositionOptions(t *testing.T) {
	selected := []position.Position{position.New("p2", "Asisten"), position.New("p9", "")}
	reference := []position.Position{position.New("p1", "Lektor"), position.New("p2", "Asisten")}

	opts := PositionOptions(selected, reference)
	require.Len(t, opts, 3)
	require.Equal(t, "p2", opts[0].ID)
	require.True(t, opts[0].Selected)
	require.Equal(t, "p9", opts[1].Name)
	require.Equal(t, "p1", opts[2].ID)
	require.False(t, opts[2].Selected)
}

func TestFormToViewModel(t *testing.T) {
	dr, err := period.NewDateRange(
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	f := period.Form{Title: "A", Type: "DOSEN", DateRange: &dr}

	vm := FormToViewModel("tok", "t1", f, nil)
	require.True(t, vm.IsEdit)
	require.Equal(t, "Dosen", vm.DisplayType)
	require.Equal(t, "2024-01-01", vm.StartDate)
	require.Equal(t, "2024-01-31", vm.EndDate)
	require.Empty(t, vm.PositionsJSON)
	require.Empty(t, vm.Positions)
}
