package sink

import (
	"bytes"
	"io"
	"sync"

	"github.com/npillmayer/schuko/tracing"
)

// TraceWriter returns an io.Writer which forwards complete lines to a
// tracer, at level Info. Wrap it with NewWriter to get a sink:
//
//	s := sink.NewWriter(sink.TraceWriter(tracing.Select("myapp")))
//
// Incomplete lines are kept until they are completed by a later write.
func TraceWriter(trace tracing.Trace) io.Writer {
	return &traceWriter{trace: trace}
}

type traceWriter struct {
	mu    sync.Mutex
	trace tracing.Trace
	buf   []byte
}

func (t *traceWriter) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	for {
		i := bytes.IndexByte(t.buf, '\n')
		if i < 0 {
			break
		}
		t.trace.Infof("%s", t.buf[:i])
		t.buf = t.buf[i+1:]
	}
	return len(p), nil
}
