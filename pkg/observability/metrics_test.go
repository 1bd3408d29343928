package observability

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsBoardMetrics(t *testing.T) {
	c := NewCollector("whiteboard")

	c.RecordOperation("create_node", nil)
	c.RecordOperation("create_node", errors.New("boom"))
	c.RecordNodeCreated("text")
	c.RecordNodeCreated("text")
	c.RecordNodesRemoved(3)
	c.RecordLinkChange(true)
	c.RecordMerge("wrap")
	c.RecordEventsPublished(4, nil)
	c.SetBoardNodes(7)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.Operations.WithLabelValues("create_node", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Operations.WithLabelValues("create_node", "error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.NodesCreated.WithLabelValues("text")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.NodesRemoved))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.LinkChanges.WithLabelValues("linked")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Merges.WithLabelValues("wrap")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.EventsPublished.WithLabelValues("ok")))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.BoardNodes))
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector("whiteboard")
	b := NewCollector("whiteboard")
	a.RecordMerge("composite")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Merges.WithLabelValues("composite")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("whiteboard")
	c.RecordHTTPRequest(http.MethodGet, "/api/v1/board", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `whiteboard_http_requests_total{method="GET",route="/api/v1/board",status="200"} 1`)
}
