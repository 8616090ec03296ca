package errs

type Severity uint32

const (
	SeverityWarning Severity = iota // Recoverable, input item is skipped or accepted as is
	SeverityError                   // Non-recoverable for current item, processing continues
	SeverityCritical                // Non-recoverable for the whole run
)

var AllSeverities = []Severity{SeverityWarning, SeverityError, SeverityCritical}

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	}
	return "unknown"
}
