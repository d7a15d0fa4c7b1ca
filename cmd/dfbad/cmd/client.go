package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient talks to a running `dfbad serve` instance's REST surface.
// Mirrors the role x/orderbook/client/cli/tx.go's clientCtx plays for a
// chain node, minus signing: DFBA Core has no mempool to broadcast into.
type httpClient struct {
	baseURL string
	client  *http.Client
}

func newHTTPClient(addr string) *httpClient {
	return &httpClient{baseURL: addr, client: &http.Client{Timeout: 10 * time.Second}}
}

func (c *httpClient) do(method, path string, body interface{}) (map[string]interface{}, error) {
	var reader io.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(bz)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("dfbad serve returned %d: %v", resp.StatusCode, out["error"])
	}
	return out, nil
}

func printResult(out map[string]interface{}) {
	bz, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(bz))
}
