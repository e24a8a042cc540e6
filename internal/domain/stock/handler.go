package stock

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/stock", func(sr chi.Router) {
		sr.Post("/credit", creditHandler(svc))
		sr.Post("/debit", debitHandler(svc))
		sr.Get("/{facilityID}", inventoryHandler(svc))
		sr.Get("/{facilityID}/{bloodGroup}", availableHandler(svc))
	})
}

type movementRequest struct {
	BloodGroup string `json:"blood_group"`
	Quantity   int    `json:"quantity"`

	// Solo admin: opera sobre otra instalación.
	FacilityKind string `json:"facility_kind,omitempty"`
	FacilityID   string `json:"facility_id,omitempty"`
}

type entryResponse struct {
	FacilityKind string    `json:"facility_kind"`
	FacilityID   string    `json:"facility_id"`
	BloodGroup   string    `json:"blood_group"`
	Quantity     int       `json:"quantity"`
	ExpiryDate   time.Time `json:"expiry_date"`
	Expired      bool      `json:"expired"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type availableResponse struct {
	FacilityID string `json:"facility_id"`
	BloodGroup string `json:"blood_group"`
	Available  int    `json:"available"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
}

// creditHandler godoc
// @Summary Acreditar stock
// @Description Suma unidades de un grupo sanguíneo en la instalación del caller. Crea la entrada si no existe y renueva el vencimiento a 42 días. Ninguna entrada puede superar 1000000 unidades. Un admin puede indicar facility_kind/facility_id.
// @Tags stock
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body movementRequest true "Grupo y cantidad"
// @Success 200 {object} entryResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /stock/credit [post]
func creditHandler(svc *Service) http.HandlerFunc {
	return movementHandler(svc, svc.Credit)
}

// debitHandler godoc
// @Summary Debitar stock
// @Description Resta unidades de un grupo sanguíneo en la instalación del caller. Si no alcanza responde 409 con available y no toca nada; al llegar a cero la entrada se borra. Un admin puede indicar facility_kind/facility_id.
// @Tags stock
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body movementRequest true "Grupo y cantidad"
// @Success 200 {object} entryResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 409 {object} errorResponse "stock insuficiente"
// @Router /stock/debit [post]
func debitHandler(svc *Service) http.HandlerFunc {
	return movementHandler(svc, svc.Debit)
}

func movementHandler(svc *Service, apply func(ctx context.Context, m Movement) (Entry, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		var req movementRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, string(shared.KindValidation), "invalid json")
			return
		}

		owner, ok := claims.Facility()
		if claims.IsAdmin() && strings.TrimSpace(req.FacilityID) != "" {
			owner = shared.OwnerRef{Kind: shared.OwnerKind(req.FacilityKind), ID: req.FacilityID}
			ok = true
		}
		if !ok {
			writeError(w, http.StatusForbidden, "forbidden", "caller has no facility")
			return
		}

		group, err := shared.ParseBloodGroup(req.BloodGroup)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		e, err := apply(r.Context(), Movement{Owner: owner, BloodGroup: group, Quantity: req.Quantity})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e, svc.Now()))
	}
}

// inventoryHandler godoc
// @Summary Inventario de una instalación
// @Description Lista las entradas de stock de la instalación ordenadas por grupo, con el vencimiento proyectado.
// @Tags stock
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param facilityID path string true "ID de la instalación"
// @Success 200 {array} entryResponse
// @Failure 401 {object} errorResponse
// @Router /stock/{facilityID} [get]
func inventoryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		items, err := svc.Inventory(r.Context(), chi.URLParam(r, "facilityID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		now := svc.Now()
		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e, now))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// availableHandler godoc
// @Summary Unidades disponibles
// @Description Devuelve la cantidad disponible de un grupo; 0 si no hay entrada. El grupo va URL-encoded (A%2B).
// @Tags stock
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param facilityID path string true "ID de la instalación"
// @Param bloodGroup path string true "Grupo sanguíneo"
// @Success 200 {object} availableResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Router /stock/{facilityID}/{bloodGroup} [get]
func availableHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		facilityID := chi.URLParam(r, "facilityID")
		rawGroup, err := url.PathUnescape(chi.URLParam(r, "bloodGroup"))
		if err != nil {
			writeError(w, http.StatusBadRequest, string(shared.KindValidation), "invalid blood group")
			return
		}
		group, err := shared.ParseBloodGroup(rawGroup)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		qty, err := svc.Available(r.Context(), facilityID, group)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, availableResponse{
			FacilityID: strings.TrimSpace(facilityID),
			BloodGroup: string(group),
			Available:  qty,
		})
	}
}

func toEntryResponse(e Entry, now time.Time) entryResponse {
	return entryResponse{
		FacilityKind: string(e.Owner.Kind),
		FacilityID:   e.Owner.ID,
		BloodGroup:   string(e.BloodGroup),
		Quantity:     e.Quantity,
		ExpiryDate:   e.ExpiryDate,
		Expired:      e.Expired(now),
		UpdatedAt:    e.UpdatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	kind := shared.KindOf(err)
	switch kind {
	case shared.KindValidation:
		writeError(w, http.StatusBadRequest, string(kind), err.Error())
	case shared.KindNotFound:
		writeError(w, http.StatusNotFound, string(kind), err.Error())
	case shared.KindInsufficientStock:
		resp := errorResponse{Error: string(kind), Message: err.Error()}
		var ise *shared.InsufficientStockError
		if errors.As(err, &ise) {
			resp.Available = &ise.Available
		}
		writeJSON(w, http.StatusConflict, resp)
	case shared.KindStateConflict, shared.KindConcurrencyConflict:
		writeError(w, http.StatusConflict, string(kind), err.Error())
	default:
		writeError(w, http.StatusInternalServerError, string(shared.KindInternal), "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
