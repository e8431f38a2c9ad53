package listview

// Kind is the tag of the view status. Exactly one kind is active at a time.
type Kind int

const (
	KindLoading Kind = iota
	KindError
	KindEmpty
	KindReady
)

func (k Kind) String() string {
	switch k {
	case KindLoading:
		return "loading"
	case KindError:
		return "error"
	case KindEmpty:
		return "empty"
	case KindReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Status is what a list page renders. Message carries the error text for
// KindError and the empty-state text for KindEmpty; Items is only set for
// KindReady.
type Status[T any] struct {
	Kind    Kind
	Message string
	Items   []T
	Query   Query
	Total   int
}

func (s Status[T]) Loading() bool { return s.Kind == KindLoading }
func (s Status[T]) Failed() bool  { return s.Kind == KindError }
func (s Status[T]) Empty() bool   { return s.Kind == KindEmpty }
func (s Status[T]) Ready() bool   { return s.Kind == KindReady }
