// internal/domain/report/dto.go
package report

// Filters are the optional report criteria. An empty string means the
// field is absent and must be omitted from the outgoing request.
type Filters struct {
	AgentID         string `json:"agentId,omitempty"`
	LocationID      string `json:"locationId,omitempty"`
	FromDate        string `json:"fromDate,omitempty"`
	ToDate          string `json:"toDate,omitempty"`
	TransactionType string `json:"transactionType,omitempty"`
	Status          string `json:"status,omitempty"`
	ProfRisk        string `json:"profRisk,omitempty"`
	CountryRisk     string `json:"countryRisk,omitempty"`
}

// Request is one page request: pagination plus the non-empty filters.
type Request struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	Filters
}

// Envelope wraps a Request the way the report endpoint expects it.
type Envelope struct {
	TransactionReportDto Request `json:"transactionReportDto"`
}

// Response is one fetched page.
type Response struct {
	Items      []Transaction `json:"items"`
	TotalCount int           `json:"totalCount"`
}
