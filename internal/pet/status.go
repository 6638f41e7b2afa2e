package pet

// Status is the outcome of a single Tick or action call.
// Exactly one Status is returned per call; only StatusOngoing lets the run continue.
type Status int

const (
	StatusOngoing      Status = iota // Nothing terminal happened
	StatusDied                       // A primary stat reached zero
	StatusRanAway                    // Friendship reached zero
	StatusNeverReturns               // A primary stat is zero while the pet is away
)

// String returns a short identifier for the status, used in logs and storage.
func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusDied:
		return "died"
	case StatusRanAway:
		return "ran_away"
	case StatusNeverReturns:
		return "never_returns"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status ends the run.
func (s Status) Terminal() bool {
	return s != StatusOngoing
}

// Message returns the line printed when the run ends with this status.
func (s Status) Message() string {
	switch s {
	case StatusDied:
		return "Your ascii pet has died."
	case StatusRanAway:
		return "Your ascii pet has run away."
	case StatusNeverReturns:
		return "Your ascii pet never returns."
	default:
		return ""
	}
}

// ParseStatus is the inverse of Status.String. Unknown input maps to StatusOngoing.
func ParseStatus(s string) Status {
	switch s {
	case "died":
		return StatusDied
	case "ran_away":
		return StatusRanAway
	case "never_returns":
		return StatusNeverReturns
	default:
		return StatusOngoing
	}
}
