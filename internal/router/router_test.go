package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blood-ledger/internal/adapters/directory/static"
	"blood-ledger/internal/adapters/storage/memory"
	"blood-ledger/internal/adapters/storage/seed"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/platform/metrics"
	"blood-ledger/internal/router"
)

type caller struct {
	userID   string
	role     string
	facility string
	donor    string
}

var (
	labOne   = caller{userID: "u-lab", role: "lab", facility: "lab-1"}
	hospital = caller{userID: "u-hosp", role: "hospital", facility: "h-1"}
	bruno    = caller{userID: "u-bruno", role: "donor", donor: "donor-bruno"}
	ana      = caller{userID: "u-ana", role: "donor", donor: "donor-ana"}
	nobody   = caller{}
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	err := seed.Dev(context.Background(), store, seed.DevOptions{
		Suppliers:   []shared.OwnerRef{shared.Lab("lab-1")},
		UnitsPerLab: 20,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Store:     store,
		Directory: static.New(shared.Lab("lab-1")),
		Metrics:   metrics.New("blood_ledger"),
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_RequestLifecycle(t *testing.T) {
	ts := newServer(t)

	// 1) Health sin identidad
	{
		st, _ := doReq(t, ts.URL, "GET", "/health", nobody, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 health, got %d", st)
		}
	}

	// 2) Sin identidad no hay acceso al ledger
	{
		st, _ := doReq(t, ts.URL, "GET", "/stock/lab-1", nobody, nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// 3) Stock sembrado del lab
	if got := available(t, ts.URL, "lab-1", "O+"); got != 20 {
		t.Fatalf("expected 20 seeded units, got %d", got)
	}

	// 4) Hospital pide 5 unidades
	reqID := createRequest(t, ts.URL, hospital, "lab-1", "O+", 5)

	// 5) El hospital no puede aceptar su propio pedido
	{
		st, _ := doReq(t, ts.URL, "POST", "/requests/"+reqID+"/accept", hospital, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 accept by requester, got %d", st)
		}
	}

	// 6) El lab acepta y las unidades se mueven
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+reqID+"/accept", labOne, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
		var resp struct {
			State string `json:"state"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.State != "accepted" {
			t.Fatalf("expected accepted, got %q", resp.State)
		}
	}
	if got := available(t, ts.URL, "lab-1", "O+"); got != 15 {
		t.Fatalf("expected 15 left at supplier, got %d", got)
	}
	if got := available(t, ts.URL, "h-1", "O+"); got != 5 {
		t.Fatalf("expected 5 at requester, got %d", got)
	}

	// 7) Segunda aceptación => conflicto de estado
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+reqID+"/accept", labOne, nil)
		if st != http.StatusConflict || !strings.Contains(string(body), "state_conflict") {
			t.Fatalf("expected 409 state_conflict, got %d body=%s", st, string(body))
		}
	}

	// 8) Pedido mayor al stock: 409 con available y queda pending
	bigID := createRequest(t, ts.URL, hospital, "lab-1", "O+", 30)
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+bigID+"/accept", labOne, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 insufficient stock, got %d body=%s", st, string(body))
		}
		var resp struct {
			Error     string `json:"error"`
			Available *int   `json:"available"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Error != "insufficient_stock" || resp.Available == nil || *resp.Available != 15 {
			t.Fatalf("expected insufficient_stock with available=15, got body=%s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/requests/"+bigID, hospital, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"state":"pending"`) {
			t.Fatalf("expected pending request, got %d body=%s", st, string(body))
		}
	}

	// 9) El lab lo rechaza
	{
		st, body := doReq(t, ts.URL, "POST", "/requests/"+bigID+"/reject", labOne, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"state":"rejected"`) {
			t.Fatalf("expected 200 rejected, got %d body=%s", st, string(body))
		}
	}

	// 10) Listado filtrado por rol y estado
	{
		st, body := doReq(t, ts.URL, "GET", "/requests?role=supplier&state=accepted", labOne, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != reqID {
			t.Fatalf("expected only the accepted request, got body=%s", string(body))
		}
	}

	// 11) Historial del lab, más reciente primero
	{
		entries := auditEntries(t, ts.URL, labOne)
		if len(entries) != 4 {
			t.Fatalf("expected 4 audit entries for lab-1, got %d", len(entries))
		}
		if entries[0].EventType != "Request Rejected" {
			t.Fatalf("expected newest entry to be the rejection, got %q", entries[0].EventType)
		}
	}
	{
		entries := auditEntries(t, ts.URL, hospital)
		if len(entries) != 1 || entries[0].EventType != "Blood Received" {
			t.Fatalf("expected one Blood Received entry for h-1, got %+v", entries)
		}
	}

	// 12) Proveedor no aprobado
	{
		st, body := doReq(t, ts.URL, "POST", "/requests", hospital, map[string]any{
			"supplier_id": "lab-2",
			"blood_group": "O+",
			"units":       1,
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unapproved supplier, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_EndToEnd_Donations(t *testing.T) {
	ts := newServer(t)

	// Ana donó hace 6 meses: se puede registrar
	{
		st, body := doReq(t, ts.URL, "POST", "/donors/donor-ana/donations", hospital, nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 donation, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), `"blood_group":"O+"`) {
			t.Fatalf("expected donor blood group fallback, body=%s", string(body))
		}
	}
	if got := available(t, ts.URL, "h-1", "O+"); got != 1 {
		t.Fatalf("expected 1 unit credited to h-1, got %d", got)
	}

	// Segunda donación inmediata: 422 con next_allowed
	{
		st, body := doReq(t, ts.URL, "POST", "/donors/donor-ana/donations", hospital, nil)
		if st != http.StatusUnprocessableEntity || !strings.Contains(string(body), "next_allowed") {
			t.Fatalf("expected 422 cooldown, got %d body=%s", st, string(body))
		}
	}

	// El donante no registra donaciones
	{
		st, _ := doReq(t, ts.URL, "POST", "/donors/donor-ana/donations", ana, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 donation by donor, got %d", st)
		}
	}

	// Historial visible para el propio donante
	{
		st, body := doReq(t, ts.URL, "GET", "/donors/donor-ana/donations", ana, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 donations, got %d body=%s", st, string(body))
		}
		var items []struct {
			Verified bool `json:"verified"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || !items[0].Verified {
			t.Fatalf("expected one verified donation, body=%s", string(body))
		}
	}

	// Bruno donó hace 10 días
	{
		st, body := doReq(t, ts.URL, "GET", "/donors/donor-bruno/eligibility", bruno, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 eligibility, got %d body=%s", st, string(body))
		}
		var resp struct {
			Eligible      bool   `json:"eligible"`
			Verdict       string `json:"verdict"`
			RemainingDays int    `json:"remaining_days"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Eligible || resp.Verdict != "ineligible_cooldown" || resp.RemainingDays != 80 {
			t.Fatalf("expected cooldown with 80 days, got body=%s", string(body))
		}
	}

	// Un donante no ve a otro
	{
		st, _ := doReq(t, ts.URL, "GET", "/donors/donor-bruno/eligibility", ana, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 reading another donor, got %d", st)
		}
	}

	// Donante inexistente
	{
		st, _ := doReq(t, ts.URL, "GET", "/donors/nobody/eligibility", hospital, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 unknown donor, got %d", st)
		}
	}
}

func TestHTTP_MetricsAndDocs(t *testing.T) {
	ts := newServer(t)

	_ = available(t, ts.URL, "lab-1", "A-")

	st, body := doReq(t, ts.URL, "GET", "/metrics", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), `blood_ledger_operations_total{kind="ok",operation="stock.available"}`) {
		t.Fatalf("expected stock.available counter, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", nobody, nil)
	if st != http.StatusOK || !strings.Contains(string(body), "/requests/{requestID}/accept") {
		t.Fatalf("expected swagger doc, got %d", st)
	}
}

type auditEntry struct {
	EventType string `json:"event_type"`
}

func auditEntries(t *testing.T, baseURL string, c caller) []auditEntry {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/audit", c, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 audit, got %d body=%s", st, string(body))
	}
	var resp struct {
		Entries []auditEntry `json:"entries"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Entries
}

func available(t *testing.T, baseURL, facilityID, group string) int {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/stock/"+facilityID+"/"+group, labOne, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 available, got %d body=%s", st, string(body))
	}
	var resp struct {
		Available int `json:"available"`
	}
	_ = json.Unmarshal(body, &resp)
	return resp.Available
}

func createRequest(t *testing.T, baseURL string, c caller, supplierID, group string, units int) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/requests", c, map[string]any{
		"supplier_id": supplierID,
		"blood_group": group,
		"units":       units,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create request, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID    string `json:"id"`
		State string `json:"state"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" || resp.State != "pending" {
		t.Fatalf("create request: unexpected body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path string, c caller, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-Debug-User-ID", c.userID)
		req.Header.Set("X-Debug-Role", c.role)
		req.Header.Set("X-Debug-Facility-ID", c.facility)
		req.Header.Set("X-Debug-Donor-ID", c.donor)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
