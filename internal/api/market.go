package api

import (
	"context"
	"fmt"

	"github.com/baolongdinh/alpha-agent/internal/model"
)

// GetMarketStats fetches the global market snapshot.
func (c *Client) GetMarketStats(ctx context.Context) (*model.MarketStats, error) {
	var dto MarketStatsDTO
	if err := c.get(ctx, "/market/stats", nil, &dto); err != nil {
		return nil, fmt.Errorf("get market stats: %w", err)
	}

	stats := dto.ToModel()
	return &stats, nil
}
