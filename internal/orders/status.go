package orders

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var validNext = map[Status]map[Status]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusCompleted: true, StatusCancelled: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s Status) Valid() bool {
	_, ok := validNext[s]
	return ok
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}
