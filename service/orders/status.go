package orders

type Status int

const (
	StatusUndefined Status = iota
	StatusNew
	StatusConfirmed
	StatusInProgress
	StatusDelivering
	StatusDone
	StatusCancelled
)

var statusNames = [...]string{
	"StatusUndefined",
	"StatusNew",
	"StatusConfirmed",
	"StatusInProgress",
	"StatusDelivering",
	"StatusDone",
	"StatusCancelled",
}

var statusDescriptions = [...]string{
	"Undefined",
	"New",
	"Confirmed",
	"In progress",
	"Delivering",
	"Done",
	"Cancelled",
}

// a stored record may carry a status this build does not know

func (s Status) String() string {
	if s < StatusUndefined || int(s) >= len(statusNames) {
		return "StatusUnknown"
	}
	return statusNames[s]
}

func (s Status) Description() string {
	if s < StatusUndefined || int(s) >= len(statusDescriptions) {
		return "Unknown"
	}
	return statusDescriptions[s]
}
