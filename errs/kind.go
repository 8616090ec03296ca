package errs

type Kind uint32

const (
	KindOther        Kind = iota // Unclassified error. This value is not printed in the error message.
	KindTransient                // Transient error
	KindInterrupted              // Processing stopped before input was drained
	KindIO                       // External I/O error
	KindInvalidValue             // Invalid value for this type of item.
	KindNotExist                 // Item does not exist.
	KindOpenFile                 // os.Open errors - input is unavailable
	KindDBuff                    // dbuffer error
	KindReport                   // report output error
	KindInternal                 // Internal error or inconsistency.
)

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindTransient:
		return "transient"
	case KindInterrupted:
		return "interrupted"
	case KindIO:
		return "IO"
	case KindInvalidValue:
		return "invalid value"
	case KindNotExist:
		return "not exist"
	case KindOpenFile:
		return "file open"
	case KindDBuff:
		return "dbuffer"
	case KindReport:
		return "report"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}
