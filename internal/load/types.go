package load

import "time"

// Status is the lifecycle state of a load as the brokerage tracks it.
type Status string

const (
	StatusPendingPickup Status = "pending_pickup"
	StatusInTransit     Status = "in_transit"
	StatusDelivered     Status = "delivered"
)

// Load holds the broker-facing view of a freight load. Amounts are kept as
// the decimal-as-text strings the upstream data uses (may carry "$" and
// thousands separators).
type Load struct {
	ID          string            `json:"id"`
	Broker      string            `json:"broker"`
	Status      Status            `json:"status"`
	Amount      string            `json:"amount"`
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	PickupTime  time.Time         `json:"pickupTime"`
	Distance    string            `json:"distance"`
	RateConf    *RateConfirmation `json:"rateConfirmation,omitempty"`
	Factoring   *Factoring        `json:"factoring,omitempty"`
}

// RateConfirmation references the signed rate-con document for a load.
type RateConfirmation struct {
	DocumentID      string `json:"documentId"`
	ConfirmedAmount string `json:"confirmedAmount"`
}

// Factoring carries the factoring terms attached to a load, if any.
// Rate is a fraction (0.03 = 3%).
type Factoring struct {
	Enabled bool    `json:"enabled"`
	Rate    float64 `json:"rate"`
}

// SearchResult wraps a load with its relevance to a query.
type SearchResult struct {
	Load        Load   `json:"load"`
	Score       int    `json:"score"` // 0-100
	MatchReason string `json:"matchReason"`
}

// QueryType tags what a chat query turned out to be.
type QueryType string

const (
	QuerySpecificLoad QueryType = "specific_load"
	QueryLoadSearch   QueryType = "load_search"
	QueryGeneralChat  QueryType = "general_chat"
)

// RoutingResult is the classifier output handed through the chat pipeline.
// For QuerySpecificLoad, Results holds exactly one element; for
// QueryLoadSearch, zero or more ordered by descending score.
type RoutingResult struct {
	QueryType QueryType      `json:"queryType"`
	Results   []SearchResult `json:"results"`
	Query     string         `json:"query"`
}
