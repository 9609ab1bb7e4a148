package zanox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productItemJSON(id string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
		"@id": %[1]q,
		"name": "Product %[1]s",
		"description": "A product",
		"price": 59.9,
		"currency": "EUR",
		"program": {"@id": 1234, "$": "Sports Program"},
		"image": {"large": "https://img.example/%[1]s.jpg"},
		"trackingLinks": {"trackingLink": [{"ppc": "https://track.example/%[1]s?a=1"}]}
	}`, id))
}

type pageRequest struct {
	page  int
	items int
}

// newProductSearchServer serves up to available product items, two per page
// fetch at most, and records every page/items pair requested.
func newProductSearchServer(t *testing.T, available int, requests *[]pageRequest) *httptest.Server {
	t.Helper()
	served := 0
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		items, _ := strconv.Atoi(r.URL.Query().Get("items"))
		*requests = append(*requests, pageRequest{page: page, items: items})

		count := min(2, items, available-served)
		if count < 0 {
			count = 0
		}
		list := make([]json.RawMessage, 0, count)
		for i := 0; i < count; i++ {
			list = append(list, productItemJSON(fmt.Sprintf("p%d", served+i)))
		}
		served += count

		resp := map[string]any{
			"page":         page,
			"items":        count,
			"total":        available,
			"productItems": map[string]any{"productItem": list},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestSearchProducts_PaginatesUntilPerPageSatisfied(t *testing.T) {
	var requests []pageRequest
	server := newProductSearchServer(t, 10, &requests)
	defer server.Close()

	c := newTestClient(server.URL)
	products, err := c.SearchProducts(context.Background(), ProductSearchParams{
		Keyword:      "shoes",
		TrackingCode: "abc",
		Page:         1,
		PerPage:      5,
	})
	require.NoError(t, err)

	assert.Len(t, products, 5)
	// page index advances on every fetch; requested size shrinks to the
	// remainder of the target
	assert.Equal(t, []pageRequest{{1, 5}, {2, 3}, {3, 1}}, requests)

	first := products[0]
	assert.Equal(t, "p0", first.ID)
	assert.Equal(t, "1234", first.Program.ID)
	assert.Equal(t, NetworkKey, first.Program.NetworkKey)
	assert.Equal(t, "https://track.example/p0?a=1&zpar0=abc", first.TrackingURL)
}

func TestSearchProducts_StopsOnEmptyPage(t *testing.T) {
	var requests []pageRequest
	server := newProductSearchServer(t, 2, &requests)
	defer server.Close()

	c := newTestClient(server.URL)
	products, err := c.SearchProducts(context.Background(), ProductSearchParams{PerPage: 10})
	require.NoError(t, err)

	assert.Len(t, products, 2)
	assert.Equal(t, []pageRequest{{1, 10}, {2, 8}}, requests)
}

func TestSearchProducts_ZeroPerPageIssuesNoRequests(t *testing.T) {
	var requests []pageRequest
	server := newProductSearchServer(t, 10, &requests)
	defer server.Close()

	c := newTestClient(server.URL)
	products, err := c.SearchProducts(context.Background(), ProductSearchParams{PerPage: 0})
	require.NoError(t, err)

	assert.Empty(t, products)
	assert.Empty(t, requests)
}

func TestSearchProducts_SurfacesMappingErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": 1, "total": 1, "productItems": {"productItem": [{"@id": "p1"}]}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.SearchProducts(context.Background(), ProductSearchParams{PerPage: 1})

	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
}

func TestCountProducts_ReadsReportedTotal(t *testing.T) {
	var requests []pageRequest
	server := newProductSearchServer(t, 123, &requests)
	defer server.Close()

	c := newTestClient(server.URL)
	total, err := c.CountProducts(context.Background(), "shoes", []string{"1234"})
	require.NoError(t, err)

	assert.Equal(t, 123, total)
	require.Len(t, requests, 1)
	assert.Equal(t, pageRequest{1, 1}, requests[0])
}

func TestGetProduct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/product/p7", r.URL.Path)
		resp := map[string]any{"productItem": []json.RawMessage{productItemJSON("p7")}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	product, err := c.GetProduct(context.Background(), "p7", "tc-1")
	require.NoError(t, err)

	assert.Equal(t, "p7", product.ID)
	assert.Equal(t, "https://track.example/p7?a=1", product.DetailsURL)
	assert.Equal(t, "https://track.example/p7?a=1&zpar0=tc-1", product.TrackingURL)
	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "https://img.example/p7.jpg", *product.ImageURL)
}

func TestGetProduct_EmptyResultIsMissingData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"productItem": []}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.GetProduct(context.Background(), "missing", "")

	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "productItem.0", missingErr.Field)
}
