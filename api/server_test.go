package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/dfba-labs/dfba-core/app"
)

// dfbaAdmin mirrors app.adminAddress (unexported), the caller CreateMarket
// requires. Kept here rather than exported from app since nothing outside
// tests needs it.
const dfbaAdmin = "dfba/admin"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine := app.NewEngine(log.NewNopLogger())
	srv := NewServer(engine, DefaultConfig())
	return httptest.NewServer(srv.Handler())
}

func postJSON(t *testing.T, url string, body map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	bz, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(bz))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "healthy", out["status"])
}

func TestHandleCreateAndGetMarket(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	status, out := postJSON(t, ts.URL+"/v1/markets", map[string]interface{}{
		"caller":             dfbaAdmin,
		"kind":               "spot",
		"base_or_collateral": "btc",
		"quote_or_oracle":    "usdc",
		"batch_duration_secs": 10,
	})
	require.Equal(t, http.StatusOK, status)
	marketID := out["market_id"]
	require.NotNil(t, marketID)

	resp, err := http.Get(ts.URL + "/v1/markets/1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleCreateMarketRejectsUnauthorizedCaller(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	status, out := postJSON(t, ts.URL+"/v1/markets", map[string]interface{}{
		"caller":             "someone-else",
		"kind":               "spot",
		"base_or_collateral": "btc",
		"quote_or_oracle":    "usdc",
		"batch_duration_secs": 10,
	})
	require.Equal(t, http.StatusBadRequest, status)
	require.NotEmpty(t, out["error"])
}

func TestHandleCreateMarketRejectsBadKind(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	status, _ := postJSON(t, ts.URL+"/v1/markets", map[string]interface{}{
		"caller":             dfbaAdmin,
		"kind":               "bogus",
		"base_or_collateral": "btc",
		"quote_or_oracle":    "usdc",
		"batch_duration_secs": 10,
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestHandleDepositAndFetchOrder(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	status, _ := postJSON(t, ts.URL+"/v1/vault/deposit", map[string]interface{}{
		"user":   "alice",
		"token":  "usdc",
		"amount": "1000",
	})
	require.Equal(t, http.StatusOK, status)

	status, out := postJSON(t, ts.URL+"/v1/markets", map[string]interface{}{
		"caller":             dfbaAdmin,
		"kind":               "spot",
		"base_or_collateral": "btc",
		"quote_or_oracle":    "usdc",
		"batch_duration_secs": 10,
	})
	require.Equal(t, http.StatusOK, status)
	_ = out

	status, order := postJSON(t, ts.URL+"/v1/orders", map[string]interface{}{
		"trader":     "alice",
		"market_id":  1,
		"side":       "buy",
		"flow":       "maker",
		"price_tick": 100,
		"qty":        "10",
		"nonce":      "1",
		"expiry":     0,
	})
	require.Equal(t, http.StatusOK, status)
	orderIDHex, ok := order["order_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, orderIDHex)

	resp, err := http.Get(ts.URL + "/v1/orders/" + orderIDHex)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandleSetPriceAndSetFees(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	status, _ := postJSON(t, ts.URL+"/v1/markets", map[string]interface{}{
		"caller":             dfbaAdmin,
		"kind":               "perp",
		"base_or_collateral": "usdc",
		"quote_or_oracle":    "btc-usd",
		"batch_duration_secs": 10,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = postJSON(t, ts.URL+"/v1/oracle/1", map[string]interface{}{"price": "50000"})
	require.Equal(t, http.StatusOK, status)

	status, _ = postJSON(t, ts.URL+"/v1/fees/1", map[string]interface{}{
		"taker_fee_bps": 10,
		"maker_fee_bps": 5,
		"fee_recipient": "dfba/treasury",
	})
	require.Equal(t, http.StatusOK, status)
}

func TestHandleCancelOrder(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	status, _ := postJSON(t, ts.URL+"/v1/vault/deposit", map[string]interface{}{
		"user": "alice", "token": "usdc", "amount": "1000",
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = postJSON(t, ts.URL+"/v1/markets", map[string]interface{}{
		"caller":             dfbaAdmin,
		"kind":               "spot",
		"base_or_collateral": "btc",
		"quote_or_oracle":    "usdc",
		"batch_duration_secs": 10,
	})
	require.Equal(t, http.StatusOK, status)

	status, order := postJSON(t, ts.URL+"/v1/orders", map[string]interface{}{
		"trader":     "alice",
		"market_id":  1,
		"side":       "buy",
		"flow":       "maker",
		"price_tick": 100,
		"qty":        "10",
		"nonce":      "1",
		"expiry":     0,
	})
	require.Equal(t, http.StatusOK, status)
	orderIDHex := order["order_id"].(string)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/v1/orders/"+orderIDHex, bytes.NewReader([]byte(`{"caller":"alice"}`)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
