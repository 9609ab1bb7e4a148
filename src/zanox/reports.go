package zanox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/logger"
	"github.com/8earnity-corporation/laravel-affiliate-zanox-network/src/models"
)

// reportType selects which per-day report endpoint a window iterates.
type reportType string

const (
	reportTypeLead reportType = "lead"
	reportTypeSale reportType = "sale"
)

// TransactionsParams describes a report window. Nil dates default to today;
// both bounds are normalized to start of day and the range is inclusive.
type TransactionsParams struct {
	Programs []string
	FromDate *time.Time
	ToDate   *time.Time
}

// Transactions aggregates lead and sale reports over the window, one
// calendar day per request. Lead results come first, then sale results; the
// two windows are iterated independently.
func (c *Client) Transactions(ctx context.Context, params TransactionsParams) ([]models.Transaction, error) {
	leads, err := c.fetchReports(ctx, reportTypeLead, params, 1, 0)
	if err != nil {
		return nil, err
	}
	sales, err := c.fetchReports(ctx, reportTypeSale, params, 1, 0)
	if err != nil {
		return nil, err
	}
	return append(leads, sales...), nil
}

// CountTransactions sums the item counts of the two report types over the
// window, requesting single-item pages.
func (c *Client) CountTransactions(ctx context.Context, params TransactionsParams) (int, error) {
	leads, err := c.fetchReports(ctx, reportTypeLead, params, 1, 1)
	if err != nil {
		return 0, err
	}
	sales, err := c.fetchReports(ctx, reportTypeSale, params, 1, 1)
	if err != nil {
		return 0, err
	}
	return len(leads) + len(sales), nil
}

// fetchReports walks the window day by day. A day whose response reports
// zero items ends the whole iteration: report availability is assumed
// monotonic, so once a day is empty, later days are taken to be empty too.
func (c *Client) fetchReports(ctx context.Context, typ reportType, params TransactionsParams, page, perPage int) ([]models.Transaction, error) {
	day := startOfDay(orToday(params.FromDate))
	to := startOfDay(orToday(params.ToDate))

	query := url.Values{}
	if len(params.Programs) > 0 {
		query.Set("programs", strings.Join(params.Programs, ","))
	}
	query.Set("page", strconv.Itoa(page))
	if perPage > 0 {
		query.Set("items", strconv.Itoa(perPage))
	}

	var transactions []models.Transaction
	for ; !day.After(to); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		body, err := c.call(ctx, apiRequest{
			endpoint: fmt.Sprintf("/reports/%ss/date/%s", typ, date),
			query:    query,
		})
		if err != nil {
			return nil, err
		}

		var resp reportResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decoding %s report for %s: %w", typ, date, err)
		}
		if resp.Items == 0 {
			logger.L.Debug("Report day empty, stopping window early", "type", string(typ), "date", date)
			return transactions, nil
		}

		for _, raw := range resp.itemsFor(typ) {
			tx, err := transactionFromJSON(raw)
			if err != nil {
				return nil, err
			}
			transactions = append(transactions, tx)
		}
	}
	return transactions, nil
}

func orToday(t *time.Time) time.Time {
	if t == nil {
		return time.Now()
	}
	return *t
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
