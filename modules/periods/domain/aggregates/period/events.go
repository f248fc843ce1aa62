package period

type CreatedEvent struct {
	Data Payload
}

type UpdatedEvent struct {
	ID   string
	Data Payload
}
