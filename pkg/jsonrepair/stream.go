package jsonrepair

import "sync"

// StreamRepairer repairs a buffer that grows chunk by chunk, such as a tool
// call streamed by an LLM API. Each Feed repairs the whole buffer in
// streaming-stable mode, so the output for a longer prefix never retracts
// text already produced for a shorter one.
type StreamRepairer struct {
	repairer *Repairer
	buffer   []byte
	mu       sync.Mutex
}

// NewStreamRepairer creates a StreamRepairer. WithStreamStable is always
// applied on top of opts.
func NewStreamRepairer(opts ...Option) *StreamRepairer {
	return &StreamRepairer{
		repairer: New(append(opts[:len(opts):len(opts)], WithStreamStable())...),
		buffer:   make([]byte, 0, 1024),
	}
}

// Feed appends chunk to the buffer and returns the repair of the whole
// buffer.
//
// Example:
//
//	sr := jsonrepair.NewStreamRepairer()
//	sr.Feed([]byte(`{"query": "gol`)) // {"query":"gol"}
//	sr.Feed([]byte(`ang", "n": 3`))   // {"query":"golang","n":3}
func (sr *StreamRepairer) Feed(chunk []byte) string {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.buffer = append(sr.buffer, chunk...)
	return sr.repairer.Repair(string(sr.buffer))
}

// Reset clears the buffer and starts fresh.
func (sr *StreamRepairer) Reset() {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.buffer = sr.buffer[:0]
}

// Buffer returns a copy of the accumulated buffer.
func (sr *StreamRepairer) Buffer() []byte {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return append([]byte(nil), sr.buffer...)
}
