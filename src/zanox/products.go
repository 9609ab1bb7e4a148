package zanox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/models"
)

// ProductSearchParams describes one product search. TrackingCode, when set,
// is embedded into every generated tracking URL.
type ProductSearchParams struct {
	Keyword      string
	Programs     []string
	TrackingCode string
	Page         int
	PerPage      int
}

// SearchProducts returns up to PerPage products, issuing as many page
// fetches as needed. Accumulation stops as soon as the provider returns an
// empty page; the page index advances after every non-empty fetch.
func (c *Client) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage

	var rawItems []json.RawMessage
	for len(rawItems) < perPage {
		resp, err := c.searchProductsPage(ctx, params.Keyword, params.Programs, page, min(perPage, perPage-len(rawItems)))
		if err != nil {
			return nil, err
		}

		items := resp.ProductItems.ProductItem
		if len(items) == 0 {
			break
		}
		rawItems = append(rawItems, items...)
		page++
	}

	products := make([]models.Product, 0, len(rawItems))
	for _, raw := range rawItems {
		product, err := productFromJSON(raw, params.TrackingCode)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

// CountProducts short-circuits to a single page of size 1 and reads the
// provider's reported total.
func (c *Client) CountProducts(ctx context.Context, keyword string, programs []string) (int, error) {
	resp, err := c.searchProductsPage(ctx, keyword, programs, 1, 1)
	if err != nil {
		return 0, err
	}
	return resp.Total, nil
}

// GetProduct looks up a single product by its provider id.
func (c *Client) GetProduct(ctx context.Context, id, trackingCode string) (models.Product, error) {
	body, err := c.call(ctx, apiRequest{endpoint: "/products/product/" + id})
	if err != nil {
		return models.Product{}, err
	}

	var resp singleProductResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Product{}, fmt.Errorf("decoding product response: %w", err)
	}
	if len(resp.ProductItem) == 0 {
		return models.Product{}, &MissingDataError{Field: "productItem.0", Payload: body}
	}
	return productFromJSON(resp.ProductItem[0], trackingCode)
}

func (c *Client) searchProductsPage(ctx context.Context, keyword string, programs []string, page, items int) (productSearchResponse, error) {
	query := url.Values{}
	if keyword != "" {
		query.Set("q", keyword)
	}
	if len(programs) > 0 {
		query.Set("programs", strings.Join(programs, ","))
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("items", strconv.Itoa(items))

	var resp productSearchResponse
	body, err := c.call(ctx, apiRequest{endpoint: "/products", query: query})
	if err != nil {
		return resp, err
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return resp, fmt.Errorf("decoding product search response: %w", err)
	}
	return resp, nil
}
