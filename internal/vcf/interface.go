package vcf

// RecordReader is the interface for sources that yield records in file order.
type RecordReader interface {
	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)
}

// RecordWriter accepts records in the order they are produced.
type RecordWriter interface {
	Write(r *Record) error
}
