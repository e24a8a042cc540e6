package requests

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/middleware"
	"blood-ledger/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/requests", func(rr chi.Router) {
		rr.Post("/", createRequestHandler(svc))
		rr.Get("/", listRequestsHandler(svc))

		rr.Route("/{requestID}", func(ir chi.Router) {
			ir.Get("/", getRequestHandler(svc))
			ir.Post("/accept", acceptRequestHandler(svc))
			ir.Post("/reject", rejectRequestHandler(svc))
		})
	})
}

type createRequestRequest struct {
	SupplierKind string `json:"supplier_kind"` // default lab
	SupplierID   string `json:"supplier_id"`
	BloodGroup   string `json:"blood_group"`
	Units        int    `json:"units"`
	Remarks      string `json:"remarks,omitempty"`
}

type facilityResponse struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type requestResponse struct {
	ID          string           `json:"id"`
	Requester   facilityResponse `json:"requester"`
	Supplier    facilityResponse `json:"supplier"`
	BloodGroup  string           `json:"blood_group"`
	Units       int              `json:"units"`
	Remarks     string           `json:"remarks,omitempty"`
	State       State            `json:"state"`
	CreatedAt   time.Time        `json:"created_at"`
	ProcessedAt *time.Time       `json:"processed_at,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
}

// createRequestHandler godoc
// @Summary Pedir sangre a un proveedor
// @Description La instalación del caller pide unidades a un proveedor aprobado. El request queda pending; no se valida stock hasta la aceptación.
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createRequestRequest true "Proveedor, grupo y unidades"
// @Success 201 {object} requestResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse "proveedor no aprobado"
// @Router /requests [post]
func createRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		requester, ok := claims.Facility()
		if !ok {
			writeError(w, http.StatusForbidden, "forbidden", "caller has no facility")
			return
		}

		var req createRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, string(shared.KindValidation), "invalid json")
			return
		}
		group, err := shared.ParseBloodGroup(req.BloodGroup)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		kind := shared.OwnerKind(req.SupplierKind)
		if strings.TrimSpace(req.SupplierKind) == "" {
			kind = shared.OwnerLab
		}

		out, err := svc.Create(r.Context(), CreateInput{
			Requester:  requester,
			Supplier:   shared.OwnerRef{Kind: kind, ID: req.SupplierID},
			BloodGroup: group,
			Units:      req.Units,
			Remarks:    req.Remarks,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRequestResponse(out))
	}
}

// listRequestsHandler godoc
// @Summary Listar requests de la instalación
// @Description Requests donde participa la instalación del caller, más nuevo primero. Un admin puede indicar facility_id.
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param role query string false "requester o supplier"
// @Param state query string false "pending, accepted o rejected"
// @Param facility_id query string false "Solo admin"
// @Success 200 {array} requestResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Router /requests [get]
func listRequestsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		q := r.URL.Query()
		facilityID, ok := callerFacilityID(claims, q.Get("facility_id"))
		if !ok {
			writeError(w, http.StatusForbidden, "forbidden", "caller has no facility")
			return
		}

		role, err := ParseRole(q.Get("role"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		filter := ListFilter{FacilityID: facilityID, Role: role}
		if raw := q.Get("state"); raw != "" {
			st, err := ParseState(raw)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			filter.State = st
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]requestResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toRequestResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getRequestHandler godoc
// @Summary Ver un request
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del request"
// @Success 200 {object} requestResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /requests/{requestID} [get]
func getRequestHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		out, err := svc.Get(r.Context(), chi.URLParam(r, "requestID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if !claims.IsAdmin() && !out.Involves(claims.FacilityID) {
			writeError(w, http.StatusForbidden, "forbidden", "forbidden")
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(out))
	}
}

// acceptRequestHandler godoc
// @Summary Aceptar un request
// @Description Solo el proveedor decide. Mueve el stock del proveedor al solicitante en una sola unidad de trabajo; si no alcanza responde 409 con available y el request sigue pending. Un request ya procesado responde 409.
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del request"
// @Success 200 {object} requestResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse "stock insuficiente o request ya procesado"
// @Router /requests/{requestID}/accept [post]
func acceptRequestHandler(svc *Service) http.HandlerFunc {
	return processRequestHandler(svc, ActionAccept)
}

// rejectRequestHandler godoc
// @Summary Rechazar un request
// @Description Solo el proveedor decide. No mueve stock y deja una entrada en el historial del proveedor. Un request ya procesado responde 409.
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del request"
// @Success 200 {object} requestResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse "request ya procesado"
// @Router /requests/{requestID}/reject [post]
func rejectRequestHandler(svc *Service) http.HandlerFunc {
	return processRequestHandler(svc, ActionReject)
}

func processRequestHandler(svc *Service, action Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		requestID := chi.URLParam(r, "requestID")
		current, err := svc.Get(r.Context(), requestID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if !claims.IsAdmin() && current.Supplier.ID != strings.TrimSpace(claims.FacilityID) {
			writeError(w, http.StatusForbidden, "forbidden", "only the supplier can process a request")
			return
		}

		out, err := svc.Process(r.Context(), requestID, action)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(out))
	}
}

// callerFacilityID: el admin puede mirar cualquier instalación.
func callerFacilityID(claims auth.Claims, requested string) (string, bool) {
	requested = strings.TrimSpace(requested)
	if claims.IsAdmin() && requested != "" {
		return requested, true
	}
	f, ok := claims.Facility()
	if !ok {
		return "", false
	}
	return f.ID, true
}

func toRequestResponse(r BloodRequest) requestResponse {
	return requestResponse{
		ID:          r.ID,
		Requester:   facilityResponse{Kind: string(r.Requester.Kind), ID: r.Requester.ID},
		Supplier:    facilityResponse{Kind: string(r.Supplier.Kind), ID: r.Supplier.ID},
		BloodGroup:  string(r.BloodGroup),
		Units:       r.Units,
		Remarks:     r.Remarks,
		State:       r.State,
		CreatedAt:   r.CreatedAt,
		ProcessedAt: r.ProcessedAt,
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
