package metrics

// Writer records request outcomes for one component. It satisfies the
// fetcher's status-handler interface so the counters stay labeled per
// component without the transport knowing about label schemes.
type Writer struct {
	component string
}

// NewWriter creates a metrics writer for the given component name
func NewWriter(component string) *Writer {
	return &Writer{component: component}
}

// OnRequest records an HTTP request with its outcome status
func (w *Writer) OnRequest(status string) {
	httpRequestsCounter.WithLabelValues(w.component, status).Inc()
}

// OnRetry records a retry attempt
func (w *Writer) OnRetry() {
	httpRetriesCounter.WithLabelValues(w.component).Inc()
}
