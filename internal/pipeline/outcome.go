package pipeline

// Status is the terminal classification of one source file. Each value
// corresponds to a terminal state of the per-file state machine.
type Status string

const (
	StatusSuccess            Status = "success"
	StatusNoSidecar          Status = "skipped-no-sidecar"
	StatusParseError         Status = "skipped-metadata-parse-error"
	StatusCollisionExhausted Status = "skipped-collision-exhausted"
	StatusFilesystemError    Status = "skipped-filesystem-error"
	StatusFailed             Status = "failed"
)

// AllStatuses lists every terminal status in report order.
var AllStatuses = []Status{
	StatusSuccess,
	StatusNoSidecar,
	StatusParseError,
	StatusCollisionExhausted,
	StatusFilesystemError,
	StatusFailed,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(AllStatuses))
	for _, status := range AllStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// Valid reports whether the status is a known terminal classification.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Copied reports whether a file with this status has a copy under the
// destination root.
func (s Status) Copied() bool {
	switch s {
	case StatusSuccess, StatusNoSidecar, StatusParseError, StatusFailed:
		return true
	default:
		return false
	}
}

// Outcome is the per-file result of a run. Destination is empty when no
// copy was produced.
type Outcome struct {
	Source      string
	Destination string
	Status      Status
	Detail      string
}

// Summary aggregates every outcome of one run. Nothing is discarded: the
// final report enumerates each source file's terminal state.
type Summary struct {
	Outcomes []Outcome
	Counts   map[Status]int
}

func newSummary() *Summary {
	return &Summary{Counts: make(map[Status]int)}
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.Counts[o.Status]++
}

// Total returns the number of eligible files seen.
func (s *Summary) Total() int {
	return len(s.Outcomes)
}

// Clean reports whether every file ended in success.
func (s *Summary) Clean() bool {
	return s.Counts[StatusSuccess] == s.Total()
}
