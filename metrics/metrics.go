package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cdnjs/sri-tools/util"

	"github.com/pkg/errors"
)

const (
	// Endpoint is where counter increments are sent by default.
	Endpoint = "https://metrics-worker.cloudflare-cdnjs.workers.dev"

	// Timeout bounds a single counter request.
	Timeout = 5 * time.Second
)

type IncMetricPayload struct {
	Name   string                 `json:"name"`
	Labels IncMetricPayloadLabels `json:"labels"`
}

type IncMetricPayloadLabels struct {
	Type      *string `json:"type"`
	Algorithm *string `json:"algorithm,omitempty"`
}

// Reporter sends usage counters. A Reporter without a token does nothing,
// so metrics are opt-in.
type Reporter struct {
	endpoint string
	token    string
	client   *http.Client
}

// New creates a Reporter. An empty endpoint means Endpoint.
func New(endpoint, token string) *Reporter {
	if endpoint == "" {
		endpoint = Endpoint
	}
	return &Reporter{endpoint: endpoint, token: token, client: &http.Client{Timeout: Timeout}}
}

// Enabled reports whether counters are sent.
func (r *Reporter) Enabled() bool {
	return r != nil && r.token != ""
}

// SRIGenerated counts a successfully computed integrity string.
func (r *Reporter) SRIGenerated(ctx context.Context, kind, algorithm string) error {
	return r.send(ctx, &IncMetricPayload{
		Name: "sri_generated",
		Labels: IncMetricPayloadLabels{
			Type:      &kind,
			Algorithm: &algorithm,
		},
	})
}

// InputRejected counts an input refused by validation.
func (r *Reporter) InputRejected(ctx context.Context) error {
	return r.send(ctx, &IncMetricPayload{
		Name:   "sri_input_rejected",
		Labels: IncMetricPayloadLabels{},
	})
}

// ProbeBlocked counts a resource the reachability probe found unreadable.
func (r *Reporter) ProbeBlocked(ctx context.Context) error {
	return r.send(ctx, &IncMetricPayload{
		Name:   "sri_probe_blocked",
		Labels: IncMetricPayloadLabels{},
	})
}

func (r *Reporter) send(ctx context.Context, payload *IncMetricPayload) error {
	if !r.Enabled() {
		return nil
	}
	json, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshall payload")
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.endpoint, bytes.NewBuffer(json))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.token))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", util.UserAgent())

	resp, err := r.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != 201 {
		return errors.Errorf("metrics endpoint returned %s", resp.Status)
	}
	return nil
}
