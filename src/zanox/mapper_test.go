package zanox

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingURL(t *testing.T) {
	assert.Equal(t, "https://x/y?a=1&zpar0=abc", TrackingURL("https://x/y?a=1", "abc"))
	assert.Equal(t, "https://x/y?a=1", TrackingURL("https://x/y?a=1", ""))
}

func TestTransactionFromJSON_StatusMapping(t *testing.T) {
	cases := map[string]models.TransactionStatus{
		"approved":  models.TransactionStatusConfirmed,
		"confirmed": models.TransactionStatusConfirmed,
		"open":      models.TransactionStatusPending,
		"rejected":  models.TransactionStatusDeclined,
	}

	for reviewState, want := range cases {
		t.Run(reviewState, func(t *testing.T) {
			tx, err := transactionFromJSON(transactionItemJSON("t1", reviewState))
			require.NoError(t, err)
			assert.Equal(t, want, tx.Status)
		})
	}
}

func TestTransactionFromJSON_UnknownReviewState(t *testing.T) {
	_, err := transactionFromJSON(transactionItemJSON("t1", "weird"))

	var enumErr *UnknownEnumValueError
	require.ErrorAs(t, err, &enumErr)
	assert.Equal(t, "reviewState", enumErr.Kind)
	assert.Equal(t, "weird", enumErr.Value)
}

func TestTransactionFromJSON_Fields(t *testing.T) {
	tx, err := transactionFromJSON(transactionItemJSON("t1", "open"))
	require.NoError(t, err)

	assert.Equal(t, "99", tx.ProgramID)
	assert.Equal(t, "t1", tx.ID)
	assert.Equal(t, 1.25, tx.Commission)
	assert.Equal(t, "EUR", tx.Currency)
	assert.Nil(t, tx.CustomStatus)
	assert.NotEmpty(t, tx.Raw)

	want := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("", 3600))
	assert.True(t, tx.TrackingDate.Equal(want))
}

func TestTransactionFromJSON_TrackingCodeAbsent(t *testing.T) {
	raw := json.RawMessage(`{
		"@id": "t1",
		"program": {"@id": 99, "$": "Prog"},
		"reviewState": "open",
		"commission": "1.50",
		"currency": "EUR",
		"trackingDate": "2024-03-01T10:00:00+01:00",
		"gpps": [{"@id": "other", "$": "x"}]
	}`)

	tx, err := transactionFromJSON(raw)
	require.NoError(t, err)
	assert.Nil(t, tx.TrackingCode)
	assert.Equal(t, 1.5, tx.Commission) // quoted numerics are tolerated
}

func TestTransactionFromJSON_MissingRequiredField(t *testing.T) {
	raw := json.RawMessage(`{
		"@id": "t1",
		"program": {"@id": 99, "$": "Prog"},
		"reviewState": "open",
		"currency": "EUR",
		"trackingDate": "2024-03-01T10:00:00+01:00"
	}`)

	_, err := transactionFromJSON(raw)

	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "commission", missingErr.Field)
	assert.NotEmpty(t, missingErr.Payload)
}

func commissionRateJSON(saleFixed, salePercent float64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"@id": "cr1", "name": "Default", "saleFixed": %v, "salePercent": %v}`,
		saleFixed, salePercent))
}

func TestCommissionRateFromJSON_FixedTakesPrecedence(t *testing.T) {
	rate, err := commissionRateFromJSON("99", commissionRateJSON(5, 10))
	require.NoError(t, err)

	assert.Equal(t, models.ValueTypeFixed, rate.Type)
	assert.Equal(t, 5.0, rate.Value)
	assert.Equal(t, "99", rate.ProgramID)
	assert.Equal(t, "cr1", rate.ID)
	assert.Equal(t, "Default", rate.Name)
}

func TestCommissionRateFromJSON_PercentageWhenFixedNotPositive(t *testing.T) {
	rate, err := commissionRateFromJSON("99", commissionRateJSON(0, 10))
	require.NoError(t, err)

	assert.Equal(t, models.ValueTypePercentage, rate.Type)
	assert.Equal(t, 10.0, rate.Value)
}

func TestCommissionRateFromJSON_MissingBothValueFields(t *testing.T) {
	_, err := commissionRateFromJSON("99", json.RawMessage(`{"@id": "cr1", "name": "Default"}`))

	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
}

func TestProductFromJSON_OptionalImage(t *testing.T) {
	raw := json.RawMessage(`{
		"@id": "p1",
		"name": "Product",
		"description": "desc",
		"price": "19.90",
		"currency": "EUR",
		"program": {"@id": "prog-1", "$": "Prog"},
		"trackingLinks": {"trackingLink": [{"ppc": "https://t/x?a=1"}]}
	}`)

	product, err := productFromJSON(raw, "")
	require.NoError(t, err)

	assert.Nil(t, product.ImageURL)
	assert.Equal(t, 19.9, product.Price)
	assert.Equal(t, "prog-1", product.Program.ID)
	assert.Equal(t, "https://t/x?a=1", product.TrackingURL)
}

func TestProductFromJSON_MissingDetailsURL(t *testing.T) {
	raw := json.RawMessage(`{
		"@id": "p1",
		"name": "Product",
		"description": "desc",
		"price": 19.9,
		"currency": "EUR",
		"program": {"@id": 1, "$": "Prog"},
		"trackingLinks": {"trackingLink": []}
	}`)

	_, err := productFromJSON(raw, "abc")

	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "trackingLinks.trackingLink.0.ppc", missingErr.Field)
}

func TestProgramFromJSON_MissingName(t *testing.T) {
	var item programItem
	require.NoError(t, json.Unmarshal([]byte(`{"@id": 7}`), &item))

	_, err := programFromJSON(&item, nil)

	var missingErr *MissingDataError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "program.$", missingErr.Field)
}
