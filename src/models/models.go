package models

import (
	"encoding/json"
	"time"
)

// TransactionStatus is the domain status of a reported lead/sale, mapped from
// the provider's reviewState vocabulary.
type TransactionStatus string

const (
	TransactionStatusConfirmed TransactionStatus = "confirmed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusDeclined  TransactionStatus = "declined"
)

// ValueType tells whether a commission rate is a fixed amount or a percentage.
type ValueType string

const (
	ValueTypeFixed      ValueType = "fixed"
	ValueTypePercentage ValueType = "percentage"
)

// Program identifies an advertiser program within the network.
type Program struct {
	NetworkKey string `json:"network"`
	ID         string `json:"id"`
	Name       string `json:"name"`
}

// Product is a single catalog item. The raw provider payload is retained for
// debugging and forward compatibility.
type Product struct {
	Program     Program         `json:"program"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Price       float64         `json:"price"`
	Currency    string          `json:"currency"`
	DetailsURL  string          `json:"details_url"`
	TrackingURL string          `json:"tracking_url"`
	Raw         json.RawMessage `json:"-"`
}

// Transaction is a reported lead or sale event.
type Transaction struct {
	ProgramID    string            `json:"program_id"`
	ID           string            `json:"id"`
	Status       TransactionStatus `json:"status"`
	CustomStatus *string           `json:"custom_status,omitempty"` // not populated by this provider
	Commission   float64           `json:"commission"`
	Currency     string            `json:"currency"`
	TrackingDate time.Time         `json:"tracking_date"`
	TrackingCode *string           `json:"tracking_code,omitempty"`
	Raw          json.RawMessage   `json:"-"`
}

// CommissionRate is one entry of a program's commission schedule.
type CommissionRate struct {
	ProgramID string          `json:"program_id"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Type      ValueType       `json:"type"`
	Value     float64         `json:"value"`
	Raw       json.RawMessage `json:"-"`
}
