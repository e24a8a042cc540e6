package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/platform/httpclient"
)

var (
	ErrDirectoryNotConfigured = errors.New("facility directory not configured")
	ErrDirectoryUnauthorized  = errors.New("facility directory unauthorized")
	ErrDirectoryUpstream      = errors.New("facility directory upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
}

// Client consulta el servicio de instalaciones.
// Contrato: GET /v1/facilities/{kind}/{id} -> {"id", "kind", "approved_supplier"}.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type facilityResponse struct {
	ID               string `json:"id"`
	Kind             string `json:"kind"`
	ApprovedSupplier bool   `json:"approved_supplier"`
}

// IsApprovedSupplier implementa directory.FacilityDirectory.
// Una instalación desconocida (404) no es proveedor aprobado.
func (c *Client) IsApprovedSupplier(ctx context.Context, supplier shared.OwnerRef) (bool, error) {
	if !c.IsConfigured() {
		return false, ErrDirectoryNotConfigured
	}

	path := fmt.Sprintf("/v1/facilities/%s/%s",
		url.PathEscape(string(supplier.Kind)), url.PathEscape(supplier.ID))

	var out facilityResponse
	err := c.http.DoJSON(ctx, http.MethodGet, path, map[string]string{c.apiKeyHeader: c.apiKey}, nil, &out)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			switch he.StatusCode {
			case http.StatusNotFound:
				return false, nil
			case http.StatusUnauthorized, http.StatusForbidden:
				return false, ErrDirectoryUnauthorized
			}
		}
		return false, fmt.Errorf("%w: %v", ErrDirectoryUpstream, err)
	}

	if out.Kind != "" && !strings.EqualFold(out.Kind, string(supplier.Kind)) {
		return false, nil
	}
	return out.ApprovedSupplier, nil
}
