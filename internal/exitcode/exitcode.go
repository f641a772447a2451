package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	LookupError     = 3
	AggregateError  = 4
	WriteError      = 5
	FetchError      = 6
)
