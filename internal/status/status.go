package status

// Status is the derived display state of a contact. Exactly one applies.
type Status string

const (
	Pending    Status = "pending"
	InProgress Status = "in-progress"
	Success    Status = "success"
	Error      Status = "error"
	None       Status = "none"
)

// Classify maps the two nullable dispatch flags onto a display status.
// The scheduling checks run before the completion checks, so a contact
// that is both scheduled and completed reads as in-progress.
func Classify(completed, scheduled *bool) Status {
	switch {
	case scheduled != nil && *scheduled:
		return InProgress
	case scheduled == nil:
		return Pending
	case completed != nil && *completed:
		return Success
	case completed != nil && !*completed:
		return Error
	default:
		return None
	}
}

// Tally holds the dashboard card counters. The four filters are
// independent, not the exclusive classifier: a contact that is scheduled
// and completed increments both InProgress and Success.
type Tally struct {
	Pending    int `json:"pendentes"`
	InProgress int `json:"em_andamento"`
	Success    int `json:"enviados"`
	Error      int `json:"falhas"`
}

func (t *Tally) Add(completed, scheduled *bool) {
	if scheduled == nil {
		t.Pending++
	}
	if scheduled != nil && *scheduled {
		t.InProgress++
	}
	if completed != nil {
		if *completed {
			t.Success++
		} else {
			t.Error++
		}
	}
}
