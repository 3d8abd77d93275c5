package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder. All methods are
// empty, providing zero overhead when metrics are disabled.
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordLogin(result string)                            {}
func (n *NoopMetrics) RecordLogout()                                        {}
func (n *NoopMetrics) RecordOAuthCallback(success bool)                     {}
func (n *NoopMetrics) RecordDefinitionWrite(operation string, success bool) {}
func (n *NoopMetrics) RecordHTTPRequest(
	method, path, status string,
	duration time.Duration,
) {
}
