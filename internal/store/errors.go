package store

// Messages recorded for transport failures. The wrapped cause only goes to
// the Recorder.
const (
	msgListFailed   = "failed to fetch context list"
	msgDetailFailed = "failed to fetch context detail"
	msgMemoryFailed = "failed to fetch combined memory"
)

// FetchError is a transport failure: a non-2xx status, a network error, or an
// undecodable body. Error returns the fixed, operation-specific message.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

// QueryError is a failure reported in the error field of an otherwise
// delivered combined-memory body. Message is the server's text.
type QueryError struct {
	ContextID string
	Message   string
}

func (e *QueryError) Error() string { return e.Message }
