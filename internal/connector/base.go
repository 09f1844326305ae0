package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

// base carries the shared HTTP transport and trace sink every real
// connector mutates, plus the success-logging helper common to all of
// them — the real-connector counterpart to internal/simulator's base.
type base struct {
	name string
	http *http.Client
	tr   *trace.Trace
}

func newBase(name string, client *http.Client, tr *trace.Trace) *base {
	return &base{name: name, http: client, tr: tr}
}

func (b *base) logSuccess(nodeID, action string, params service.Params, result service.Result) {
	b.tr.Append(trace.Step{
		NodeID:     nodeID,
		Service:    b.name,
		Action:     action,
		Parameters: map[string]interface{}(params),
		Result:     map[string]interface{}(result),
		Status:     trace.StatusSuccess,
		Timestamp:  time.Now(),
	})
}

// doJSON issues an HTTP request with a JSON-encoded body (nil for none) and
// decodes a JSON response into out (nil to discard the body), returning the
// status code and raw body for callers that need provider-specific error
// mapping.
func (b *base) doJSON(ctx context.Context, method, url string, headers map[string]string, body interface{}, out interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	if out != nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, out)
	}

	return resp.StatusCode, raw, nil
}

func getString(params service.Params, key, fallback string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

func getStringSlice(params service.Params, key string) []string {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch typed := v.(type) {
	case []string:
		return typed
	case []interface{}:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
