package workflow

// Delimiter separates artist names within one input line.
const Delimiter = ","

// Record is one customer's favorite artists parsed from a single input line.
// Order and duplicates are kept as read; the aggregator decides what matters.
type Record struct {
	Artists []string
}

func (r *Record) Size() int {
	size := 0
	for _, artist := range r.Artists {
		size += len(artist)
	}
	return size
}

// RecordBuilder is the dque item factory.
func RecordBuilder() interface{} {
	return &Record{}
}
