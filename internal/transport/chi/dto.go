package chi

import (
	dombatch "github.com/kailas-cloud/salarydex/internal/domain/batch"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
	politicianuc "github.com/kailas-cloud/salarydex/internal/usecase/politician"
)

// ErrorCode is the machine-readable part of an error response.
type ErrorCode string

// Error codes returned to clients.
const (
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeUnsupportedFile     ErrorCode = "unsupported_file"
	ErrorCodeCollectionNotFound  ErrorCode = "collection_not_found"
	ErrorCodePoliticianNotFound  ErrorCode = "politician_not_found"
	ErrorCodeBulkAborted         ErrorCode = "bulk_aborted"
	ErrorCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
	ErrorCodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// MessageResponse acknowledges a write.
type MessageResponse struct {
	Message string `json:"message"`
}

// ClearResponse acknowledges a cleared collection.
type ClearResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// BulkResponse summarises an ingestion run.
type BulkResponse struct {
	Message  string             `json:"message"`
	IngestID string             `json:"ingest_id"`
	Rows     uint64             `json:"rows"`
	Indexed  uint64             `json:"indexed"`
	Failed   uint64             `json:"failed"`
	Failures []dombatch.Failure `json:"failures"`
}

// BulkAbortedResponse is returned when ingestion stopped at a rejected record.
type BulkAbortedResponse struct {
	ErrorResponse
	Report BulkResponse `json:"report"`
}

// PoliticianListResponse is one page of records.
type PoliticianListResponse struct {
	Data       []dompol.Politician `json:"data"`
	Total      int64               `json:"total"`
	TotalPages int                 `json:"total_pages"`
	Page       int                 `json:"page"`
	PerPage    int                 `json:"per_page"`
}

// StatisticsResponse summarises one salary field.
type StatisticsResponse struct {
	Field        string              `json:"field"`
	MeanSalary   float64             `json:"mean_salary"`
	MedianSalary float64             `json:"median_salary"`
	TopSalaries  []dompol.Politician `json:"top_salaries"`
}

// HealthResponse reports readiness.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func bulkToResponse(r dombatch.Report) BulkResponse {
	failures := r.Failures
	if failures == nil {
		failures = []dombatch.Failure{}
	}
	return BulkResponse{
		Message:  "success",
		IngestID: r.ID,
		Rows:     r.Rows,
		Indexed:  r.Indexed,
		Failed:   r.Failed,
		Failures: failures,
	}
}

func pageToResponse(p politicianuc.Page) PoliticianListResponse {
	items := p.Items
	if items == nil {
		items = []dompol.Politician{}
	}
	return PoliticianListResponse{
		Data:       items,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Page:       p.Page,
		PerPage:    p.PerPage,
	}
}

func statisticsToResponse(s dompol.Statistics) StatisticsResponse {
	return StatisticsResponse{
		Field:        s.Field,
		MeanSalary:   s.Mean,
		MedianSalary: s.Median,
		TopSalaries:  s.Top,
	}
}
