package period

import (
	"errors"
	"time"
)

var ErrInvertedRange = errors.New("date range end is before its start")

// DateRange is an inclusive pair of dates with Start <= End.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{start: start, end: end}, nil
}

func (d DateRange) Start() time.Time {
	return d.start
}

func (d DateRange) End() time.Time {
	return d.end
}

func (d DateRange) Equal(other DateRange) bool {
	return d.start.Equal(other.start) && d.end.Equal(other.end)
}
