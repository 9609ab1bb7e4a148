package zanox

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/models"
)

// transactionStatusMapping translates the provider's reviewState vocabulary.
// The table is closed: anything else is an UnknownEnumValueError, never a
// silent default.
var transactionStatusMapping = map[string]models.TransactionStatus{
	"approved":  models.TransactionStatusConfirmed,
	"confirmed": models.TransactionStatusConfirmed,
	"open":      models.TransactionStatusPending,
	"rejected":  models.TransactionStatusDeclined,
}

// trackingDateLayouts are tried in order when parsing trackingDate. The
// provider emits ISO-8601 with a zone offset; older report payloads used a
// space separator.
var trackingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// TrackingURL appends the affiliate attribution parameter to a details URL.
// The parameter name is fixed by the provider; links without it do not
// attribute conversions.
func TrackingURL(detailsURL, trackingCode string) string {
	if trackingCode == "" {
		return detailsURL
	}
	return detailsURL + "&" + TrackingCodeParam + "=" + trackingCode
}

func programFromJSON(item *programItem, payload json.RawMessage) (models.Program, error) {
	if item == nil || item.ID == nil {
		return models.Program{}, &MissingDataError{Field: "program.@id", Payload: payload}
	}
	if item.Name == nil {
		return models.Program{}, &MissingDataError{Field: "program.$", Payload: payload}
	}
	return models.Program{
		NetworkKey: NetworkKey,
		ID:         string(*item.ID),
		Name:       *item.Name,
	}, nil
}

func productFromJSON(raw json.RawMessage, trackingCode string) (models.Product, error) {
	var item productItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.Product{}, fmt.Errorf("decoding product item: %w", err)
	}

	program, err := programFromJSON(item.Program, raw)
	if err != nil {
		return models.Product{}, err
	}
	if item.ID == nil {
		return models.Product{}, &MissingDataError{Field: "@id", Payload: raw}
	}
	if item.Name == nil {
		return models.Product{}, &MissingDataError{Field: "name", Payload: raw}
	}
	if item.Description == nil {
		return models.Product{}, &MissingDataError{Field: "description", Payload: raw}
	}
	if item.Price == nil {
		return models.Product{}, &MissingDataError{Field: "price", Payload: raw}
	}
	if item.Currency == nil {
		return models.Product{}, &MissingDataError{Field: "currency", Payload: raw}
	}

	detailsURL := ""
	if item.TrackingLinks != nil && len(item.TrackingLinks.TrackingLink) > 0 && item.TrackingLinks.TrackingLink[0].PPC != nil {
		detailsURL = *item.TrackingLinks.TrackingLink[0].PPC
	}
	if detailsURL == "" {
		return models.Product{}, &MissingDataError{Field: "trackingLinks.trackingLink.0.ppc", Payload: raw}
	}

	var imageURL *string
	if item.Image != nil && item.Image.Large != nil {
		imageURL = item.Image.Large
	}

	return models.Product{
		Program:     program,
		ID:          string(*item.ID),
		Name:        *item.Name,
		Description: *item.Description,
		ImageURL:    imageURL,
		Price:       float64(*item.Price),
		Currency:    *item.Currency,
		DetailsURL:  detailsURL,
		TrackingURL: TrackingURL(detailsURL, trackingCode),
		Raw:         raw,
	}, nil
}

func transactionFromJSON(raw json.RawMessage) (models.Transaction, error) {
	var item transactionItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.Transaction{}, fmt.Errorf("decoding transaction item: %w", err)
	}

	if item.Program == nil || item.Program.ID == nil {
		return models.Transaction{}, &MissingDataError{Field: "program.@id", Payload: raw}
	}
	if item.ID == nil {
		return models.Transaction{}, &MissingDataError{Field: "@id", Payload: raw}
	}
	if item.ReviewState == nil {
		return models.Transaction{}, &MissingDataError{Field: "reviewState", Payload: raw}
	}
	status, ok := transactionStatusMapping[*item.ReviewState]
	if !ok {
		return models.Transaction{}, &UnknownEnumValueError{Kind: "reviewState", Value: *item.ReviewState}
	}
	if item.Commission == nil {
		return models.Transaction{}, &MissingDataError{Field: "commission", Payload: raw}
	}
	if item.Currency == nil {
		return models.Transaction{}, &MissingDataError{Field: "currency", Payload: raw}
	}
	if item.TrackingDate == nil {
		return models.Transaction{}, &MissingDataError{Field: "trackingDate", Payload: raw}
	}
	trackingDate, err := parseTrackingDate(*item.TrackingDate)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("parsing trackingDate %q: %w", *item.TrackingDate, err)
	}

	return models.Transaction{
		ProgramID:    string(*item.Program.ID),
		ID:           string(*item.ID),
		Status:       status,
		Commission:   float64(*item.Commission),
		Currency:     *item.Currency,
		TrackingDate: trackingDate,
		TrackingCode: trackingCodeFromGpps(item.Gpps),
		Raw:          raw,
	}, nil
}

// trackingCodeFromGpps scans the optional gpps key/value list for the
// attribution parameter. Absence yields nil, not an error.
func trackingCodeFromGpps(gpps []keyValueItem) *string {
	for _, entry := range gpps {
		if entry.ID != nil && *entry.ID == TrackingCodeParam && entry.Value != nil {
			return entry.Value
		}
	}
	return nil
}

func parseTrackingDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range trackingDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func commissionRateFromJSON(programID string, raw json.RawMessage) (models.CommissionRate, error) {
	var item trackingCategoryItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return models.CommissionRate{}, fmt.Errorf("decoding tracking category item: %w", err)
	}

	if item.ID == nil {
		return models.CommissionRate{}, &MissingDataError{Field: "@id", Payload: raw}
	}
	if item.Name == nil {
		return models.CommissionRate{}, &MissingDataError{Field: "name", Payload: raw}
	}

	// A positive saleFixed wins over salePercent.
	var valueType models.ValueType
	var value float64
	switch {
	case item.SaleFixed != nil && *item.SaleFixed > 0:
		valueType = models.ValueTypeFixed
		value = float64(*item.SaleFixed)
	case item.SalePercent != nil:
		valueType = models.ValueTypePercentage
		value = float64(*item.SalePercent)
	default:
		return models.CommissionRate{}, &MissingDataError{Field: "saleFixed/salePercent", Payload: raw}
	}

	return models.CommissionRate{
		ProgramID: programID,
		ID:        string(*item.ID),
		Name:      *item.Name,
		Type:      valueType,
		Value:     value,
		Raw:       raw,
	}, nil
}
