package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/baolongdinh/alpha-agent/internal/model"
)

// StatusSuccess is the status value of a successful backend response.
const StatusSuccess = "success"

// GetTokens fetches a page of tokens.
func (c *Client) GetTokens(ctx context.Context, q TokensQuery) (*TokensResponse, error) {
	query := url.Values{}

	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	query.Set("offset", strconv.Itoa(q.Offset))
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	setFloat(query, "min_mcap", q.MinMcap)
	setFloat(query, "max_mcap", q.MaxMcap)
	setFloat(query, "min_score", q.MinScore)
	setFloat(query, "max_score", q.MaxScore)
	setFloat(query, "min_price", q.MinPrice)
	setFloat(query, "max_price", q.MaxPrice)
	setFloat(query, "min_change", q.MinChange)
	setFloat(query, "max_change", q.MaxChange)

	var resp TokensResponse
	if err := c.get(ctx, "/tokens", query, &resp); err != nil {
		return nil, fmt.Errorf("get tokens: %w", err)
	}

	if resp.Status != StatusSuccess {
		return nil, fmt.Errorf("get tokens: %w", &StatusError{Status: resp.Status, Message: resp.Message})
	}

	return &resp, nil
}

// GetToken fetches the full detail of a single token by id, symbol or name.
func (c *Client) GetToken(ctx context.Context, id string) (*model.Token, error) {
	var dto TokenDTO
	if err := c.get(ctx, "/tokens/"+url.PathEscape(id), nil, &dto); err != nil {
		return nil, fmt.Errorf("get token %s: %w", id, err)
	}
	if dto.Symbol == "" && dto.Name == "" {
		return nil, fmt.Errorf("get token %s: %w", id, &StatusError{Status: "empty", Message: "no token in response"})
	}

	t := dto.ToModel()
	return &t, nil
}

func setFloat(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}
