package marketing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

var _ ports.CampaignSource = (*Client)(nil)

const (
	defaultTimeout  = 20 * time.Second
	maxResponseSize = 4 << 20
	queryDateLayout = "2006-01-02"
)

// Client adaptador HTTP del gabinete de publicidad del marketplace.
type Client struct {
	baseURL    string
	login      string
	password   string
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 20 s.
func NewClient(baseURL, login, password string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		login:      login,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Protocolo ────────────────────────────────────────────────────────────────

type loginRequest struct {
	Login      string `json:"login"`
	Password   string `json:"password"`
	MerchantID string `json:"merchantId"`
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
}

// flexID ids que el API a veces manda como número y a veces como string.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id inválido: %s", string(b))
	}
	*f = flexID(n.String())
	return nil
}

type campaignPayload struct {
	ID           flexID          `json:"id"`
	Title        string          `json:"title"`
	State        string          `json:"state"`
	Cost         decimal.Decimal `json:"cost"`
	Views        int64           `json:"views"`
	Clicks       int64           `json:"clicks"`
	Transactions int64           `json:"transactions"`
	GMV          decimal.Decimal `json:"gmv"`
}

type campaignsResponse struct {
	Campaigns []campaignPayload `json:"campaigns"`
}

type productPayload struct {
	SKU  flexID          `json:"sku"`
	Cost decimal.Decimal `json:"cost"`
}

type productsResponse struct {
	Products []productPayload `json:"products"`
}

// ── Puerto ───────────────────────────────────────────────────────────────────

// Login POST /auth/login.
func (c *Client) Login(ctx context.Context, merchantID string) (string, error) {
	body, err := json.Marshal(loginRequest{Login: c.login, Password: c.password, MerchantID: merchantID})
	if err != nil {
		return "", fmt.Errorf("marketing.Login: serializar: %w", err)
	}
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/auth/login", "", bytes.NewReader(body), &out); err != nil {
		return "", fmt.Errorf("marketing.Login: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("marketing.Login: respuesta sin token")
	}
	return out.AccessToken, nil
}

// ListCampaigns GET /merchants/{id}/campaigns?from=&to=.
func (c *Client) ListCampaigns(ctx context.Context, token, merchantID string, from, to time.Time) ([]entity.MarketingCampaign, error) {
	endpoint := fmt.Sprintf("%s/merchants/%s/campaigns?%s", c.baseURL, url.PathEscape(merchantID), rangeQuery(from, to))
	var out campaignsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &out); err != nil {
		return nil, fmt.Errorf("marketing.ListCampaigns: %w", err)
	}
	campaigns := make([]entity.MarketingCampaign, 0, len(out.Campaigns))
	for _, p := range out.Campaigns {
		campaigns = append(campaigns, entity.MarketingCampaign{
			ID:           string(p.ID),
			Name:         p.Title,
			State:        p.State,
			Cost:         p.Cost,
			Views:        p.Views,
			Clicks:       p.Clicks,
			Transactions: p.Transactions,
			GMV:          p.GMV,
		})
	}
	return campaigns, nil
}

// CampaignProducts GET /merchants/{id}/campaigns/{cid}/products?from=&to=.
func (c *Client) CampaignProducts(ctx context.Context, token, merchantID, campaignID string, from, to time.Time) ([]entity.CampaignLine, error) {
	endpoint := fmt.Sprintf("%s/merchants/%s/campaigns/%s/products?%s",
		c.baseURL, url.PathEscape(merchantID), url.PathEscape(campaignID), rangeQuery(from, to))
	var out productsResponse
	if err := c.do(ctx, http.MethodGet, endpoint, token, nil, &out); err != nil {
		return nil, fmt.Errorf("marketing.CampaignProducts: %w", err)
	}
	lines := make([]entity.CampaignLine, 0, len(out.Products))
	for _, p := range out.Products {
		lines = append(lines, entity.CampaignLine{SKU: string(p.SKU), Cost: p.Cost})
	}
	return lines, nil
}

func rangeQuery(from, to time.Time) string {
	q := url.Values{}
	q.Set("from", from.UTC().Format(queryDateLayout))
	q.Set("to", to.UTC().Format(queryDateLayout))
	return q.Encode()
}

// do ejecuta la llamada y decodifica el cuerpo en out. 401/403 = domain.ErrSessionExpired.
func (c *Client) do(ctx context.Context, method, endpoint, token string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("llamada HTTP: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("leer respuesta: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrSessionExpired
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("deserializar respuesta: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
