package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"ecoquest/internal/models"
	"ecoquest/internal/service"
)

// ReportHandler handles environmental issue reports
type ReportHandler struct {
	reportService *service.ReportService
	middleware    *Middleware
	templates     *template.Template
	uploadsPath   string
	maxUpload     int64
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, middleware *Middleware, templates *template.Template, uploadsPath string, maxUpload int64) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		middleware:    middleware,
		templates:     templates,
		uploadsPath:   uploadsPath,
		maxUpload:     maxUpload,
	}
}

// ShowReports renders the report feed with the optional status filter
func (h *ReportHandler) ShowReports(w http.ResponseWriter, r *http.Request) {
	h.renderReports(w, r, "")
}

func (h *ReportHandler) renderReports(w http.ResponseWriter, r *http.Request, errMsg string) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	status := r.URL.Query().Get("status")
	if !models.ValidReportStatus(status) {
		status = ""
	}

	reports, err := h.reportService.GetReports(user.ID, status, 50)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load reports", err)
		return
	}

	stats, err := h.reportService.GetStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to load report stats", err)
		return
	}

	data := ReportsViewData{
		Title:        "Reports",
		User:         user,
		Reports:      reports,
		Stats:        stats,
		Categories:   models.ReportCategories,
		StatusFilter: status,
		Error:        errMsg,
		CSRFToken:    h.middleware.CSRFToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "reports.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to render reports", err)
	}
}

// CreateReport files a new issue report, with an optional photo
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	imagePath := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		imagePath, err = saveImageUpload(file, header, h.uploadsPath)
		if err != nil {
			h.renderReports(w, r, err.Error())
			return
		}
	}

	_, _, _, err := h.reportService.CreateReport(
		user.ID,
		r.FormValue("title"),
		r.FormValue("description"),
		r.FormValue("category"),
		r.FormValue("severity"),
		r.FormValue("location"),
		imagePath,
	)
	if err != nil {
		h.renderReports(w, r, err.Error())
		return
	}
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}

// ToggleLike likes or unlikes a report
func (h *ReportHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	reportID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	if _, err := h.reportService.ToggleLike(reportID, user.ID); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to toggle like", err)
		return
	}
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}

// VerifyReport moves an open report to In Progress and escalates it
func (h *ReportHandler) VerifyReport(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, func(id int64) error {
		_, err := h.reportService.VerifyReport(r.Context(), id)
		return err
	})
}

// ResolveReport closes out a report
func (h *ReportHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	h.updateStatus(w, r, func(id int64) error {
		_, err := h.reportService.ResolveReport(id)
		return err
	})
}

func (h *ReportHandler) updateStatus(w http.ResponseWriter, r *http.Request, apply func(int64) error) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
		return
	}

	reportID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return
	}

	if err := apply(reportID); err != nil {
		if errors.Is(err, service.ErrReportNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to update report", err)
		return
	}
	http.Redirect(w, r, "/reports", http.StatusSeeOther)
}
