package position

// The fetch events describe one load of the positions reference list, in
// order: FetchInitEvent, then FetchSuccessEvent or FetchFailureEvent.

type FetchInitEvent struct{}

type FetchSuccessEvent struct {
	Positions []Position
}

type FetchFailureEvent struct {
	Error string
}
