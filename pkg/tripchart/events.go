package tripchart

type (
	// Sent when the input file has been read.
	EventLoaded struct {
		Path    string
		Records int
	}

	// Sent when the records are in chronological order.
	EventSorted struct {
		Records int
		Total   int
	}

	// Sent when the chart has been shown, or when a fatal error occurs.
	EventDone struct {
		Err error
	}
)
