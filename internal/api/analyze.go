package api

import (
	"context"
	"fmt"
)

// Analyze requests an AI analysis for the given payload.
// A response without an analysis is a *StatusError.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	var resp AnalysisResponse
	if err := c.post(ctx, "/analyze", req, &resp); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", req.Symbol, err)
	}

	if resp.Analysis == "" {
		return nil, fmt.Errorf("analyze %s: %w", req.Symbol, &StatusError{Status: resp.Status, Message: "response missing analysis"})
	}

	return &resp, nil
}
