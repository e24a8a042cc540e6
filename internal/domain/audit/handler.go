package audit

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/audit", readAuditHandler(svc))
}

type entryResponse struct {
	Seq         int64     `json:"seq"`
	EventType   EventType `json:"event_type"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ReferenceID string    `json:"reference_id,omitempty"`
}

type historyResponse struct {
	FacilityID string          `json:"facility_id"`
	Entries    []entryResponse `json:"entries"`
}

// readAuditHandler godoc
// @Summary Historial de la instalación
// @Description Últimas 50 entradas de la instalación del caller, más reciente primero. Un admin puede indicar facility_id.
// @Tags audit
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param facility_id query string false "Solo admin"
// @Success 200 {object} historyResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Router /audit [get]
func readAuditHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var facilityID string
		if f, isFacility := claims.Facility(); isFacility {
			facilityID = f.ID
		}
		if requested := strings.TrimSpace(r.URL.Query().Get("facility_id")); requested != "" && claims.IsAdmin() {
			facilityID = requested
		}
		if facilityID == "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		items, err := svc.Read(r.Context(), facilityID)
		if err != nil {
			if shared.KindOf(err) == shared.KindValidation {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := historyResponse{FacilityID: facilityID, Entries: make([]entryResponse, 0, len(items))}
		for _, e := range items {
			out.Entries = append(out.Entries, entryResponse{
				Seq:         e.Seq,
				EventType:   e.EventType,
				Description: e.Description,
				Date:        e.Date,
				ReferenceID: e.ReferenceID,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
