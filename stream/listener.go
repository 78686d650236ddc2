package stream

// EventType classifies an Event an InputStream reports to its listeners.
type EventType int

const (
	// EventEncodingDetected fires once, the first time a stream resolves
	// its source encoding -- whether from a constructor-supplied name or
	// from the detect callback / UTF-8 default (spec.md §4.4 "Transition
	// Sniffing -> Streaming").
	EventEncodingDetected EventType = iota

	// EventEncodingChanged fires when SetEncoding retargets an
	// already-streaming InputStream mid-document.
	EventEncodingChanged

	// EventBOMStripped fires when the first chunk's leading bytes
	// matched the detected encoding's byte-order mark and were removed.
	EventBOMStripped
)

func (t EventType) String() string {
	switch t {
	case EventEncodingDetected:
		return "ENCODING_DETECTED"
	case EventEncodingChanged:
		return "ENCODING_CHANGED"
	case EventBOMStripped:
		return "BOM_STRIPPED"
	default:
		return "UNKNOWN"
	}
}

// Event is the structured notification an InputStream sends to its
// Listeners. This is the module's substitute for a logging dependency,
// grounded on the teacher's kanzi.Listener/kanzi.Event pub-sub mechanism
// (v2/Event.go) rather than an import of a logging library: a caller that
// wants logs attaches a Listener that formats and writes Event values
// itself.
type Event struct {
	Type     EventType
	Encoding string
	MIB      uint16
}

// Listener receives Events from an InputStream it has been added to.
type Listener interface {
	ProcessEvent(evt Event)
}

// AddListener registers l to receive this stream's Events. Returns false
// if l is nil.
func (s *InputStream) AddListener(l Listener) bool {
	if l == nil {
		return false
	}
	s.listeners = append(s.listeners, l)
	return true
}

// RemoveListener unregisters l. Returns false if l was not registered.
func (s *InputStream) RemoveListener(l Listener) bool {
	for i, e := range s.listeners {
		if e == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// notify fans evt out to every registered Listener. A panicking Listener
// does not take down the stream -- it only loses the rest of this
// notification -- matching the teacher's notifyListeners
// (v2/io/CompressedStream.go), which recovers around each broadcast for
// the same reason.
func (s *InputStream) notify(evt Event) {
	defer func() {
		recover() //nolint:errcheck
	}()

	for _, l := range s.listeners {
		l.ProcessEvent(evt)
	}
}
