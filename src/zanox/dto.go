package zanox

import (
	"encoding/json"
	"fmt"
)

// flexString decodes provider fields that arrive either as JSON strings or
// numbers; "@id" is numeric for programs but alphanumeric for products.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// flexFloat decodes numeric provider fields that are sometimes quoted.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var n json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	v, err := n.Float64()
	if err != nil {
		return fmt.Errorf("parsing numeric field %q: %w", n.String(), err)
	}
	*f = flexFloat(v)
	return nil
}

// productSearchResponse is the provider's /products page envelope.
type productSearchResponse struct {
	Page         int `json:"page"`
	Items        int `json:"items"`
	Total        int `json:"total"`
	ProductItems struct {
		ProductItem []json.RawMessage `json:"productItem"`
	} `json:"productItems"`
}

// singleProductResponse is the /products/product/{id} envelope.
type singleProductResponse struct {
	ProductItem []json.RawMessage `json:"productItem"`
}

// reportResponse is the per-day /reports/{type}s/date/{date} envelope. The
// item list lives under a type-specific key.
type reportResponse struct {
	Items     int               `json:"items"`
	LeadItems []json.RawMessage `json:"leadItems"`
	SaleItems []json.RawMessage `json:"saleItems"`
}

func (r reportResponse) itemsFor(typ reportType) []json.RawMessage {
	if typ == reportTypeSale {
		return r.SaleItems
	}
	return r.LeadItems
}

// trackingCategoriesResponse is the trackingcategories envelope; the provider
// nests the item list under a key of the same name.
type trackingCategoriesResponse struct {
	TrackingCategoryItem struct {
		TrackingCategoryItem []json.RawMessage `json:"trackingCategoryItem"`
	} `json:"trackingCategoryItem"`
}

type programItem struct {
	ID   *flexString `json:"@id"`
	Name *string     `json:"$"`
}

type productItem struct {
	ID          *flexString  `json:"@id"`
	Name        *string      `json:"name"`
	Description *string      `json:"description"`
	Program     *programItem `json:"program"`
	Price       *flexFloat   `json:"price"`
	Currency    *string      `json:"currency"`
	Image       *struct {
		Large *string `json:"large"`
	} `json:"image"`
	TrackingLinks *struct {
		TrackingLink []struct {
			PPC *string `json:"ppc"`
		} `json:"trackingLink"`
	} `json:"trackingLinks"`
}

// keyValueItem is one entry of a transaction's gpps key/value list.
type keyValueItem struct {
	ID    *string `json:"@id"`
	Value *string `json:"$"`
}

type transactionItem struct {
	ID           *flexString    `json:"@id"`
	Program      *programItem   `json:"program"`
	ReviewState  *string        `json:"reviewState"`
	Commission   *flexFloat     `json:"commission"`
	Currency     *string        `json:"currency"`
	TrackingDate *string        `json:"trackingDate"`
	Gpps         []keyValueItem `json:"gpps"`
}

type trackingCategoryItem struct {
	ID          *flexString `json:"@id"`
	Name        *string     `json:"name"`
	SaleFixed   *flexFloat  `json:"saleFixed"`
	SalePercent *flexFloat  `json:"salePercent"`
}
