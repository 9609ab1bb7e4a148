package zanox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/models"
)

// CommissionRates fetches the commission schedule of a program for the
// configured adspace. The provider call is unpaginated; only the first page
// is ever read.
func (c *Client) CommissionRates(ctx context.Context, programID string) ([]models.CommissionRate, error) {
	endpoint := fmt.Sprintf("/programapplications/program/%s/adspace/%s/trackingcategories", programID, c.adSpaceID)
	body, err := c.call(ctx, apiRequest{endpoint: endpoint})
	if err != nil {
		return nil, err
	}

	var resp trackingCategoriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding tracking categories response: %w", err)
	}

	items := resp.TrackingCategoryItem.TrackingCategoryItem
	rates := make([]models.CommissionRate, 0, len(items))
	for _, raw := range items {
		rate, err := commissionRateFromJSON(programID, raw)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}

// CountCommissionRates counts the entries of the first (and only requested)
// schedule page.
func (c *Client) CountCommissionRates(ctx context.Context, programID string) (int, error) {
	rates, err := c.CommissionRates(ctx, programID)
	if err != nil {
		return 0, err
	}
	return len(rates), nil
}
