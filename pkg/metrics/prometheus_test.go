package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCollectorRecordsAndScrapes exercises the counters the Auction House
// and Settlement Claim actually emit (spec §6), checking they surface on
// the Prometheus scrape endpoint rather than just asserting internal state.
func TestCollectorRecordsAndScrapes(t *testing.T) {
	c := GetCollector()
	c.RecordOrder("1", "buy", "maker")
	c.RecordBatchFinalized("1", "buy", 100, 10)
	c.RecordClaim("1", "filled", 2.5)
	c.RecordWSConnection(1)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	Handler().ServeHTTP(rec, req)
	require.Equal(t, 200, rec.Code)

	body := rec.Body.String()
	require.True(t, strings.Contains(body, "dfba_orders_total"))
	require.True(t, strings.Contains(body, "dfba_batches_finalized_total"))
	require.True(t, strings.Contains(body, "dfba_claims_total"))
	require.True(t, strings.Contains(body, "dfba_ws_connections_active"))
}

func TestGetCollectorIsSingleton(t *testing.T) {
	require.Same(t, GetCollector(), GetCollector())
}
