package v1

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	analyticsapp "innsight/internal/analytics/application"
	analyticsdomain "innsight/internal/analytics/domain"
	exportapp "innsight/internal/export/application"
	exportdomain "innsight/internal/export/domain"
	ingestdomain "innsight/internal/ingest/domain"
	shareddomain "innsight/internal/shared/domain"
)

// Handlers contient tous les handlers de l'API V1
type Handlers struct {
	dashboardService *analyticsapp.DashboardService
	exportService    *exportapp.ExportService
	maxUploadBytes   int64
}

// NewHandlers crée une nouvelle instance des handlers V1
func NewHandlers(
	dashboardService *analyticsapp.DashboardService,
	exportService *exportapp.ExportService,
	maxUploadBytes int64,
) *Handlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 20 << 20
	}
	return &Handlers{
		dashboardService: dashboardService,
		exportService:    exportService,
		maxUploadBytes:   maxUploadBytes,
	}
}

// RegisterRoutes enregistre les routes V1 sous le routeur donné
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.GetDashboard)
	r.Post("/upload", h.Upload)
	r.Post("/refresh", h.Refresh)
	r.Get("/export/{type}.{format}", h.Export)
}

// errorResponse corps JSON des erreurs
type errorResponse struct {
	Kind      string   `json:"kind"`
	Message   string   `json:"message"`
	Missing   []string `json:"missing,omitempty"`
	Available []string `json:"available,omitempty"`
}

// GetDashboard handler pour GET /api/v1/dashboard
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, err := ParseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: err.Error()})
		return
	}

	dashboard, err := h.dashboardService.Dashboard(r.Context(), q)
	if err != nil {
		h.writeError(w, "dashboard", err)
		return
	}

	log.Printf("[API] dashboard: %d reservations (cache hit: %v) in %v",
		dashboard.KPIs.Reservations, dashboard.CacheHit, time.Since(start))
	writeJSON(w, http.StatusOK, dashboard)
}

// Upload handler pour POST /api/v1/upload (champ multipart "file")
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var tooLarge *http.MaxBytesError

	file, header, err := r.FormFile("file")
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Kind: "too_large", Message: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: "multipart field \"file\" is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: err.Error()})
		return
	}

	result, err := h.dashboardService.Upload(r.Context(), header.Filename, data)
	if err != nil {
		h.writeError(w, "upload", err)
		return
	}

	log.Printf("[API] upload %s: %d reservations kept", header.Filename, result.Table.Len())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadId":       result.Table.ID().String(),
		"source":       result.Table.Source(),
		"reservations": result.Table.Len(),
		"warnings":     result.Report.Warnings(),
	})
}

// Refresh handler pour POST /api/v1/refresh
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	h.dashboardService.Refresh()
	log.Printf("[API] cache cleared")
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}

// Export handler pour GET /api/v1/export/{type}.{format}
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	job, err := exportdomain.NewExportJob(
		exportdomain.ExportFormat(chi.URLParam(r, "format")),
		exportdomain.ExportType(chi.URLParam(r, "type")),
	)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Kind: "not_found", Message: err.Error()})
		return
	}

	q, err := ParseQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Kind: "bad_request", Message: err.Error()})
		return
	}

	data, err := h.exportService.Export(r.Context(), job, q)
	if err != nil {
		h.writeError(w, "export", err)
		return
	}

	w.Header().Set("Content-Type", job.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+job.FileName())
	w.Write(data)
}

// writeError traduit les erreurs de chargement en statuts HTTP
func (h *Handlers) writeError(w http.ResponseWriter, op string, err error) {
	var le *ingestdomain.LoadError
	switch {
	case errors.Is(err, ingestdomain.ErrNoSource):
		writeJSON(w, http.StatusConflict, errorResponse{Kind: "awaiting_upload", Message: err.Error()})
	case errors.As(err, &le):
		log.Printf("[API] %s rejected: %v", op, err)
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Kind:      string(le.Kind),
			Message:   le.Message,
			Missing:   le.Missing,
			Available: le.Available,
		})
	default:
		log.Printf("[API] Error in %s: %v", op, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Kind: "internal", Message: "internal server error"})
	}
}

// ParseQuery lit les filtres de l'URL.
//   - start/end au format YYYY-MM-DD, ensemble ou pas du tout
//   - room_type répétable (une valeur par paramètre, les libellés peuvent contenir des virgules)
//   - guests répétable ou séparé par des virgules
//   - paramètre absent ou "all" = aucune restriction, présent mais vide = sélection vide
func ParseQuery(r *http.Request) (analyticsapp.Query, error) {
	values := r.URL.Query()
	q := analyticsapp.DefaultQuery()

	start, end := values.Get("start"), values.Get("end")
	if start != "" || end != "" {
		if start == "" || end == "" {
			return q, errors.New("start and end must be provided together")
		}
		rng, err := shareddomain.ParseDateRange(start, end)
		if err != nil {
			return q, err
		}
		q.Range = &rng
	}

	if raw, ok := values["room_type"]; ok {
		items, all := collectValues(raw, false)
		if !all {
			q.RoomTypes = analyticsdomain.Only(items...)
		}
	}

	if raw, ok := values["guests"]; ok {
		items, all := collectValues(raw, true)
		if !all {
			guests := make([]int, 0, len(items))
			for _, item := range items {
				n, err := strconv.Atoi(item)
				if err != nil {
					return q, errors.New("invalid guests value: " + item)
				}
				guests = append(guests, n)
			}
			q.Guests = analyticsdomain.Only(guests...)
		}
	}

	return q, nil
}

// collectValues aplatit les valeurs répétées et détecte le sentinel.
// splitCommas découpe aussi chaque valeur sur les virgules.
func collectValues(raw []string, splitCommas bool) ([]string, bool) {
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		parts := []string{v}
		if splitCommas {
			parts = strings.Split(v, ",")
		}
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.EqualFold(part, analyticsdomain.AllSentinel) {
				return nil, true
			}
			items = append(items, part)
		}
	}
	return items, false
}

// writeJSON encode directement dans le writer
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] Error encoding response: %v", err)
	}
}
