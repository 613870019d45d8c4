package models

// OutcomeStatus is the closed set of ways a search can conclude. Degraded
// data is never presented as a plain success.
type OutcomeStatus string

const (
	StatusSuccess  OutcomeStatus = "success"
	StatusDegraded OutcomeStatus = "degraded"
	StatusRejected OutcomeStatus = "rejected"
)

// SearchOutcome is the engine's result for one search. Offers and Metadata
// are populated for success and degraded outcomes; Reason explains a
// degraded outcome; UserMessage explains a rejection.
type SearchOutcome struct {
	Status      OutcomeStatus `json:"status"`
	Offers      []Offer       `json:"offers,omitempty"`
	Metadata    Metadata      `json:"metadata"`
	Reason      string        `json:"reason,omitempty"`
	UserMessage string        `json:"user_message,omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type DurationRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Metadata holds aggregate facts derived once per offer set. It bounds and
// populates the filter controls; the engine never assumes incoming filter
// values were clamped to it.
type Metadata struct {
	TotalResults           int           `json:"total_results"`
	PriceRange             PriceRange    `json:"price_range"`
	DurationRange          DurationRange `json:"duration_range"`
	Airlines               []string      `json:"airlines,omitempty"`
	Suppliers              []string      `json:"suppliers,omitempty"`
	Categories             []Category    `json:"categories,omitempty"`
	HasDirect              bool          `json:"has_direct"`
	HasInstantConfirmation bool          `json:"has_instant_confirmation"`
	HasFreeCancellation    bool          `json:"has_free_cancellation"`
}

// Page is one pagination window over a filtered, sorted offer set.
type Page struct {
	Items      []Offer `json:"items"`
	PageNumber int     `json:"page_number"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
