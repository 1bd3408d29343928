package ports

// MetricsRecorder receives the business measurements of board operations
type MetricsRecorder interface {
	RecordOperation(operation string, err error)
	RecordNodeCreated(kind string)
	RecordNodesRemoved(count int)
	RecordLinkChange(linked bool)
	RecordMerge(strategy string)
	RecordGridArranged(nodes int)
	RecordEventsPublished(count int, err error)
	SetBoardNodes(count int)
}

// NoopMetrics discards every measurement
type NoopMetrics struct{}

func (NoopMetrics) RecordOperation(string, error) {}
func (NoopMetrics) RecordNodeCreated(string) {}
func (NoopMetrics) RecordNodesRemoved(int) {}
func (NoopMetrics) RecordLinkChange(bool) {}
func (NoopMetrics) RecordMerge(string) {}
func (NoopMetrics) RecordGridArranged(int) {}
func (NoopMetrics) RecordEventsPublished(int, error) {}
func (NoopMetrics) SetBoardNodes(int) {}
