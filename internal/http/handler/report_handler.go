package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/tamu-beverages/sales-api/internal/domain"
	"github.com/tamu-beverages/sales-api/internal/service"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *service.ReportService
	logger        *zap.Logger
}

func NewReportHandler(reportService *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// Daily godoc
// @Summary Daily sales report
// @Description CSV of orders for a single day, scoped to the caller's visible orders
// @Tags Reports
// @Produce text/csv
// @Param date query string true "Report date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/sales/daily [get]
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date, ok := requireDateParam(w, r, "date")
	if !ok {
		return
	}

	h.respondCSV(w, func(buf *bytes.Buffer) (string, error) {
		return h.reportService.Daily(r.Context(), buf, date)
	})
}

// Range godoc
// @Summary Date-range sales report
// @Description CSV of orders for an inclusive date range, scoped to the caller's visible orders
// @Tags Reports
// @Produce text/csv
// @Param start_date query string true "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string true "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/sales/range [get]
func (h *ReportHandler) Range(w http.ResponseWriter, r *http.Request) {
	start, ok := requireDateParam(w, r, "start_date")
	if !ok {
		return
	}
	end, ok := requireDateParam(w, r, "end_date")
	if !ok {
		return
	}

	h.respondCSV(w, func(buf *bytes.Buffer) (string, error) {
		return h.reportService.Range(r.Context(), buf, start, end)
	})
}

// Monthly godoc
// @Summary Monthly sales report
// @Description CSV with one aggregate row per day of the month, scoped to the caller's visible orders
// @Tags Reports
// @Produce text/csv
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/sales/monthly [get]
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, ok := requireIntParam(w, r, "year")
	if !ok {
		return
	}
	month, ok := requireIntParam(w, r, "month")
	if !ok {
		return
	}

	h.respondCSV(w, func(buf *bytes.Buffer) (string, error) {
		return h.reportService.Monthly(r.Context(), buf, year, month)
	})
}

// Yearly godoc
// @Summary Yearly per-salesperson report
// @Description CSV with one aggregate row per salesperson for the year. Admin only.
// @Tags Reports
// @Produce text/csv
// @Param year query int true "Year"
// @Success 200 {string} string "CSV payload"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Security BearerAuth
// @Router /reports/sales/yearly [get]
func (h *ReportHandler) Yearly(w http.ResponseWriter, r *http.Request) {
	year, ok := requireIntParam(w, r, "year")
	if !ok {
		return
	}

	h.respondCSV(w, func(buf *bytes.Buffer) (string, error) {
		return h.reportService.Yearly(r.Context(), buf, year)
	})
}

// respondCSV buffers the generated report so errors still produce a clean
// JSON response, then sends it as a CSV attachment
func (h *ReportHandler) respondCSV(w http.ResponseWriter, generate func(buf *bytes.Buffer) (string, error)) {
	var buf bytes.Buffer
	filename, err := generate(&buf)
	if err != nil {
		respondServiceError(w, h.logger, err, "generate report")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func requireDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: fmt.Sprintf("%s is required", name),
		})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: fmt.Sprintf("%s must be YYYY-MM-DD", name),
		})
		return time.Time{}, false
	}
	return t, true
}

func requireIntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	value := r.URL.Query().Get(name)
	if value == "" {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: fmt.Sprintf("%s is required", name),
		})
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: fmt.Sprintf("%s must be an integer", name),
		})
		return 0, false
	}
	return n, true
}
