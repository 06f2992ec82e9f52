package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/salarydex/internal/domain"
	dombatch "github.com/kailas-cloud/salarydex/internal/domain/batch"
	dompol "github.com/kailas-cloud/salarydex/internal/domain/politician"
	"github.com/kailas-cloud/salarydex/internal/domain/politician/patch"
	"github.com/kailas-cloud/salarydex/internal/domain/search/filter"
	"github.com/kailas-cloud/salarydex/internal/logger"
	healthuc "github.com/kailas-cloud/salarydex/internal/usecase/health"
	politicianuc "github.com/kailas-cloud/salarydex/internal/usecase/politician"
)

// DefaultUploadMemory is how much of a multipart upload is held in memory
// before the rest is spooled to a temporary file.
const DefaultUploadMemory int64 = 32 << 20

// uploadField is the multipart form field carrying the CSV file.
const uploadField = "file"

// CollectionService clears collections.
type CollectionService interface {
	Clear(ctx context.Context, name string) (int64, error)
}

// IngestService loads CSV uploads.
type IngestService interface {
	Ingest(ctx context.Context, filename string, src io.ReadSeeker) (dombatch.Report, error)
}

// PoliticianService reads and writes salary records.
type PoliticianService interface {
	List(ctx context.Context, p politicianuc.ListParams) (politicianuc.Page, error)
	Get(ctx context.Context, id string) (dompol.Politician, error)
	Update(ctx context.Context, id string, in patch.Input) error
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context, field string) (dompol.Statistics, error)
	AvailableGenders(ctx context.Context) ([]string, error)
	AvailableParties(ctx context.Context) ([]string, error)
}

// HealthService reports readiness and cluster state.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
	Cluster(ctx context.Context) (map[string]any, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the salary records HTTP API.
type Server struct {
	collections   CollectionService
	ingest        IngestService
	politicians   PoliticianService
	health        HealthService
	logger        *zap.Logger
	uploadMemory  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	collections CollectionService,
	ingest IngestService,
	politicians PoliticianService,
	health HealthService,
	logger *zap.Logger,
) *Server {
	s := &Server{
		collections:  collections,
		ingest:       ingest,
		politicians:  politicians,
		health:       health,
		logger:       logger,
		uploadMemory: DefaultUploadMemory,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidSchema, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrMalformedRow, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrMalformedNumber, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUnsupportedFile, http.StatusUnprocessableEntity, ErrorCodeUnsupportedFile),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeCollectionNotFound),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, ErrorCodePoliticianNotFound),
		sentinelHandler(domain.ErrBulkAborted, http.StatusBadGateway, ErrorCodeBulkAborted),
		sentinelHandler(domain.ErrUpstreamUnavailable, http.StatusServiceUnavailable, ErrorCodeUpstreamUnavailable),
	}
	return s
}

// WithUploadMemory sets the in-memory part of multipart uploads.
func (s *Server) WithUploadMemory(n int64) *Server {
	if n > 0 {
		s.uploadMemory = n
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.ClusterHealth)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Delete("/clear_index/{name}", s.ClearIndex)
	r.Post("/bulk", s.Bulk)
	r.Route("/politicians", func(r chi.Router) {
		r.Get("/", s.ListPoliticians)
		r.Get("/{id}", s.GetPolitician)
		r.Patch("/{id}", s.UpdatePolitician)
		r.Delete("/{id}", s.DeletePolitician)
	})
	r.Get("/statistics", s.Statistics)
	r.Get("/available_genders", s.AvailableGenders)
	r.Get("/available_parties", s.AvailableParties)
}

// Handler returns a router serving every endpoint.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// ClusterHealth handles GET /.
func (s *Server) ClusterHealth(w http.ResponseWriter, r *http.Request) {
	h, err := s.health.Cluster(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ClearIndex handles DELETE /clear_index/{name}.
func (s *Server) ClearIndex(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	deleted, err := s.collections.Clear(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ClearResponse{
		Message: fmt.Sprintf("All documents in index %s have been successfully cleared", name),
		Deleted: deleted,
	})
}

// Bulk handles POST /bulk.
func (s *Server) Bulk(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.uploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid multipart body")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Missing form field \"file\"")
		return
	}
	defer func() { _ = file.Close() }()

	report, err := s.ingest.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, domain.ErrBulkAborted) {
			logger.FromContextOr(r.Context(), s.logger).Warn("bulk ingestion aborted", zap.Error(err))
			writeJSON(w, http.StatusBadGateway, BulkAbortedResponse{
				ErrorResponse: ErrorResponse{Code: ErrorCodeBulkAborted, Message: domain.ErrBulkAborted.Error()},
				Report:        bulkToResponse(report),
			})
			return
		}
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bulkToResponse(report))
}

// ListPoliticians handles GET /politicians.
func (s *Server) ListPoliticians(w http.ResponseWriter, r *http.Request) {
	params, err := listParamsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	page, err := s.politicians.List(r.Context(), params)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page))
}

// GetPolitician handles GET /politicians/{id}.
func (s *Server) GetPolitician(w http.ResponseWriter, r *http.Request) {
	p, err := s.politicians.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdatePolitician handles PATCH /politicians/{id}.
func (s *Server) UpdatePolitician(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in patch.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.politicians.Update(r.Context(), id, in); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Politician %s has been updated successfully", id),
	})
}

// DeletePolitician handles DELETE /politicians/{id}.
func (s *Server) DeletePolitician(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.politicians.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Politician %s has been deleted successfully", id),
	})
}

// Statistics handles GET /statistics.
func (s *Server) Statistics(w http.ResponseWriter, r *http.Request) {
	var field *string
	if err := runtime.BindQueryParameter("form", true, false, "field", r.URL.Query(), &field); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter field")
		return
	}

	stats, err := s.politicians.Statistics(r.Context(), deref(field))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statisticsToResponse(stats))
}

// AvailableGenders handles GET /available_genders.
func (s *Server) AvailableGenders(w http.ResponseWriter, r *http.Request) {
	values, err := s.politicians.AvailableGenders(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// AvailableParties handles GET /available_parties.
func (s *Server) AvailableParties(w http.ResponseWriter, r *http.Request) {
	values, err := s.politicians.AvailableParties(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

// listParamsFromQuery binds the listing query string. Multi-valued filters
// accept both repeated parameters and comma-separated lists.
func listParamsFromQuery(r *http.Request) (politicianuc.ListParams, error) {
	q := r.URL.Query()

	var (
		page, perPage           *int
		name                    *string
		party, gender, position []string
	)
	bindings := []struct {
		name string
		dest any
	}{
		{"page", &page},
		{"per_page", &perPage},
		{"name", &name},
		{"party", &party},
		{"gender", &gender},
		{"position", &position},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return politicianuc.ListParams{}, fmt.Errorf("Invalid format for parameter %s", b.name) //nolint:staticcheck // client-facing text
		}
	}

	return politicianuc.ListParams{
		Name:      deref(name),
		Parties:   splitAll(party),
		Genders:   splitAll(gender),
		Positions: splitAll(position),
		Page:      deref(page),
		PerPage:   deref(perPage),
	}, nil
}

func splitAll(values []string) []string {
	var out []string
	for _, v := range values {
		for _, t := range filter.SplitTerms(v) {
			if !contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client message without exposing internals.
// Validation failures keep their reason; other errors collapse to the sentinel text.
func safeDomainMessage(err error) string {
	var rowErr *domain.MalformedRowError
	if errors.As(err, &rowErr) {
		return rowErr.Error()
	}
	var numErr *domain.MalformedNumberError
	if errors.As(err, &numErr) {
		return numErr.Error()
	}
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrInvalidSchema) {
		return fromSentinel(err)
	}

	sentinels := []error{
		domain.ErrUnsupportedFile,
		domain.ErrNotFound,
		domain.ErrDocumentNotFound,
		domain.ErrBulkAborted,
		domain.ErrUpstreamUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// fromSentinel strips the operation prefixes wrapped around a validation error.
func fromSentinel(err error) string {
	msg := err.Error()
	for _, s := range []error{domain.ErrValidation, domain.ErrInvalidSchema} {
		if i := strings.Index(msg, s.Error()); i >= 0 {
			return msg[i:]
		}
	}
	return msg
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
