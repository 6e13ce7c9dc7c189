package registry

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/studiowebux/crateview/internal/types"
)

type searchResponse struct {
	Crates []types.Crate `json:"crates"`
	Meta   struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// Search fetches one page of crates matching params.Query, ordered by
// params.Sort. An empty query lists all crates.
func (c *Client) Search(ctx context.Context, params types.SearchParams) (types.Page, error) {
	query := url.Values{}
	if params.Query != "" {
		query.Set("q", params.Query)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("per_page", strconv.Itoa(params.PageSize))
	}
	if params.Sort != "" {
		query.Set("sort", string(params.Sort))
	}

	var resp searchResponse
	if err := c.getJSON(ctx, "/crates", query, &resp); err != nil {
		return types.Page{}, err
	}
	return types.Page{Crates: resp.Crates, Total: resp.Meta.Total}, nil
}

// GetCrate fetches a crate with its versions, keywords and categories.
// Fresh cached results are returned without a request.
func (c *Client) GetCrate(ctx context.Context, name string) (types.CrateDetail, error) {
	if detail, ok := c.details.get(name); ok {
		return detail, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		var detail types.CrateDetail
		if err := c.getJSON(ctx, "/crates/"+url.PathEscape(name), nil, &detail); err != nil {
			return types.CrateDetail{}, err
		}
		c.details.set(name, detail)
		return detail, nil
	})
	if err != nil {
		return types.CrateDetail{}, fmt.Errorf("crate %s: %w", name, err)
	}
	return v.(types.CrateDetail), nil
}

// Summary fetches the registry front page
func (c *Client) Summary(ctx context.Context) (types.Summary, error) {
	var sum types.Summary
	if err := c.getJSON(ctx, "/summary", nil, &sum); err != nil {
		return types.Summary{}, err
	}
	return sum, nil
}

// LatestVersion returns the newest published version of a crate
func (c *Client) LatestVersion(ctx context.Context, name string) (string, error) {
	detail, err := c.GetCrate(ctx, name)
	if err != nil {
		return "", err
	}
	if detail.Crate.MaxStable != "" {
		return detail.Crate.MaxStable, nil
	}
	return detail.Crate.MaxVersion, nil
}

// InvalidateCrate drops a cached detail so the next GetCrate refetches it
func (c *Client) InvalidateCrate(name string) {
	c.details.invalidate(name)
}
