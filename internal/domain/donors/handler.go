package donors

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/middleware"
	"blood-ledger/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/donors/{donorID}", func(dr chi.Router) {
		dr.Get("/eligibility", eligibilityHandler(svc))
		dr.Post("/donations", recordDonationHandler(svc))
		dr.Get("/donations", listDonationsHandler(svc))
		dr.Patch("/donations/{donationID}", setVerifiedHandler(svc))
	})
}

type eligibilityResponse struct {
	DonorID          string     `json:"donor_id"`
	Eligible         bool       `json:"eligible"`
	Verdict          string     `json:"verdict"`
	RemainingDays    int        `json:"remaining_days,omitempty"`
	NextEligibleDate *time.Time `json:"next_eligible_date,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

type recordDonationRequest struct {
	BloodGroup string `json:"blood_group,omitempty"` // vacío = el del donante
	Quantity   int    `json:"quantity,omitempty"`    // 0 = 1
	Remarks    string `json:"remarks,omitempty"`

	// Solo admin.
	FacilityKind string `json:"facility_kind,omitempty"`
	FacilityID   string `json:"facility_id,omitempty"`
}

type setVerifiedRequest struct {
	Verified *bool `json:"verified"`
}

type donationResponse struct {
	ID           string    `json:"id"`
	DonorID      string    `json:"donor_id"`
	DonationDate time.Time `json:"donation_date"`
	FacilityKind string    `json:"facility_kind"`
	FacilityID   string    `json:"facility_id"`
	BloodGroup   string    `json:"blood_group"`
	Quantity     int       `json:"quantity"`
	Verified     bool      `json:"verified"`
	Remarks      string    `json:"remarks,omitempty"`
}

type errorResponse struct {
	Error       string     `json:"error"`
	Message     string     `json:"message"`
	NextAllowed *time.Time `json:"next_allowed,omitempty"`
}

// eligibilityHandler godoc
// @Summary Elegibilidad de un donante
// @Description Evalúa edad, peso y cooldown de 90 días con el reloj del servidor. Visible para el propio donante, instalaciones y admin.
// @Tags donors
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Donor-ID header string false "Solo en modo dev, donante del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param donorID path string true "ID del donante"
// @Success 200 {object} eligibilityResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /donors/{donorID}/eligibility [get]
func eligibilityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		donorID := chi.URLParam(r, "donorID")
		if !canRead(claims, donorID) {
			writeError(w, http.StatusForbidden, "forbidden", "forbidden")
			return
		}

		d, st, err := svc.Eligibility(r.Context(), donorID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, eligibilityResponse{
			DonorID:          d.ID,
			Eligible:         st.Eligible(),
			Verdict:          string(st.Verdict),
			RemainingDays:    st.RemainingDays,
			NextEligibleDate: st.NextEligibleDate,
			LastDonationDate: d.LastDonationDate,
		})
	}
}

// recordDonationHandler godoc
// @Summary Registrar una donación
// @Description La instalación del caller registra la donación y recibe las unidades en su stock. Exige 3 meses calendario desde la última donación; si no se cumplen responde 422 con next_allowed.
// @Tags donors
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param donorID path string true "ID del donante"
// @Param payload body recordDonationRequest false "Grupo, cantidad y observaciones"
// @Success 201 {object} donationResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse "cooldown"
// @Router /donors/{donorID}/donations [post]
func recordDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}

		var req recordDonationRequest
		// body opcional
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, string(shared.KindValidation), "invalid json")
			return
		}

		facility, ok := claims.Facility()
		if claims.IsAdmin() && strings.TrimSpace(req.FacilityID) != "" {
			facility = shared.OwnerRef{Kind: shared.OwnerKind(req.FacilityKind), ID: req.FacilityID}
			ok = true
		}
		if !ok {
			writeError(w, http.StatusForbidden, "forbidden", "only facilities record donations")
			return
		}

		in := RecordInput{
			DonorID:           chi.URLParam(r, "donorID"),
			RecordingFacility: facility,
			Quantity:          req.Quantity,
			Remarks:           req.Remarks,
		}
		if strings.TrimSpace(req.BloodGroup) != "" {
			g, err := shared.ParseBloodGroup(req.BloodGroup)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			in.BloodGroup = g
		}

		out, err := svc.RecordDonation(r.Context(), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDonationResponse(out))
	}
}

// listDonationsHandler godoc
// @Summary Historial de donaciones
// @Tags donors
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param Authorization header string false "Bearer token en producción"
// @Param donorID path string true "ID del donante"
// @Success 200 {array} donationResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /donors/{donorID}/donations [get]
func listDonationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		donorID := chi.URLParam(r, "donorID")
		if !canRead(claims, donorID) {
			writeError(w, http.StatusForbidden, "forbidden", "forbidden")
			return
		}

		items, err := svc.ListDonations(r.Context(), donorID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// setVerifiedHandler godoc
// @Summary Marcar una donación como verificada o no
// @Description Solo la instalación que registró la donación o un admin.
// @Tags donors
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param X-Debug-Role header string false "Solo en modo dev: lab, hospital, donor o admin"
// @Param X-Debug-Facility-ID header string false "Solo en modo dev, instalación del caller"
// @Param Authorization header string false "Bearer token en producción"
// @Param donorID path string true "ID del donante"
// @Param donationID path string true "ID de la donación"
// @Param payload body setVerifiedRequest true "Nuevo valor"
// @Success 200 {object} donationResponse
// @Failure 400 {object} errorResponse
// @Failure 401 {object} errorResponse
// @Failure 403 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /donors/{donorID}/donations/{donationID} [patch]
func setVerifiedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
			return
		}
		facility, isFacility := claims.Facility()
		if !isFacility && !claims.IsAdmin() {
			writeError(w, http.StatusForbidden, "forbidden", "forbidden")
			return
		}

		var req setVerifiedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Verified == nil {
			writeError(w, http.StatusBadRequest, string(shared.KindValidation), "verified required")
			return
		}

		donorID, donationID := chi.URLParam(r, "donorID"), chi.URLParam(r, "donationID")
		current, err := svc.GetDonation(r.Context(), donorID, donationID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		// RecordingFacility no cambia después del registro.
		if !claims.IsAdmin() && current.RecordingFacility.ID != facility.ID {
			writeError(w, http.StatusForbidden, "forbidden", "only the recording facility can verify a donation")
			return
		}

		out, err := svc.SetVerified(r.Context(), donorID, donationID, *req.Verified)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDonationResponse(out))
	}
}

// canRead: el propio donante, cualquier instalación o admin.
func canRead(claims auth.Claims, donorID string) bool {
	if claims.IsAdmin() {
		return true
	}
	if _, ok := claims.Facility(); ok {
		return true
	}
	return claims.Role == auth.RoleDonor && claims.DonorID == strings.TrimSpace(donorID)
}

func toDonationResponse(d Donation) donationResponse {
	return donationResponse{
		ID:           d.ID,
		DonorID:      d.DonorID,
		DonationDate: d.DonationDate,
		FacilityKind: string(d.RecordingFacility.Kind),
		FacilityID:   d.RecordingFacility.ID,
		BloodGroup:   string(d.BloodGroup),
		Quantity:     d.Quantity,
		Verified:     d.Verified,
		Remarks:      d.Remarks,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	kind := shared.KindOf(err)
	switch kind {
	case shared.KindValidation:
		writeError(w, http.StatusBadRequest, string(kind), err.Error())
	case shared.KindNotFound:
		writeError(w, http.StatusNotFound, string(kind), err.Error())
	case shared.KindCooldownViolation:
		resp := errorResponse{Error: string(kind), Message: err.Error()}
		var ce *shared.CooldownError
		if errors.As(err, &ce) {
			next := ce.NextAllowed
			resp.NextAllowed = &next
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case shared.KindInsufficientStock, shared.KindStateConflict, shared.KindConcurrencyConflict:
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
