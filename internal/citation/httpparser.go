package citation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPParser calls an AnyStyle-compatible citation parsing service over
// HTTP. The service accepts one citation string and answers with a CSL
// field map array (one entry per parsed reference; only the first is used).
type HTTPParser struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPParser creates a parser client for the given service base URL.
func NewHTTPParser(baseURL string) *HTTPParser {
	return &HTTPParser{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type parseRequest struct {
	Text string `json:"text"`
}

// Parse sends one candidate string to the parsing service. A service answer
// with no entries yields (nil, nil): the text was unparseable, which the
// caller counts and skips without failing the batch.
func (p *HTTPParser) Parse(ctx context.Context, text string) (*FieldMap, error) {
	payload, err := json.Marshal(parseRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/parse", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling citation parser: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("citation parser returned status %d", resp.StatusCode)
	}

	var maps []FieldMap
	if err := json.NewDecoder(resp.Body).Decode(&maps); err != nil {
		return nil, fmt.Errorf("decoding parser response: %w", err)
	}
	if len(maps) == 0 {
		return nil, nil
	}
	return &maps[0], nil
}
