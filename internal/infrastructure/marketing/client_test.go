package marketing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/marketing"
)

var (
	from = time.Date(2026, 1, 11, 20, 0, 0, 0, time.UTC)
	to   = time.Date(2026, 2, 10, 20, 0, 0, 0, time.UTC)
)

func newServer(t *testing.T, h http.HandlerFunc) *marketing.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return marketing.NewClient(srv.URL+"/", "seller", "secret", time.Second)
}

// ─── Login ────────────────────────────────────────────────────────────────────

func TestClient_Login_EnviaCredencialesYDevuelveToken(t *testing.T) {
	var got map[string]string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"accessToken":"tok-1"}`))
	})

	token, err := c.Login(context.Background(), "m-42")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, "seller", got["login"])
	assert.Equal(t, "secret", got["password"])
	assert.Equal(t, "m-42", got["merchantId"])
}

func TestClient_Login_SinToken(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := c.Login(context.Background(), "m-42")
	assert.Error(t, err)
}

// ─── Campañas ─────────────────────────────────────────────────────────────────

func TestClient_ListCampaigns_DecodificaYEnviaRango(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/merchants/m-42/campaigns", r.URL.Path)
		assert.Equal(t, "2026-01-11", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-02-10", r.URL.Query().Get("to"))
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"campaigns":[
			{"id":101,"title":"Весна","state":"ACTIVE","cost":"1500.50","views":1000,"clicks":40,"transactions":3,"gmv":6000},
			{"id":"c-2","title":"Пауза","state":"PAUSED","cost":0,"views":0,"clicks":0,"transactions":0,"gmv":0}
		]}`))
	})

	campaigns, err := c.ListCampaigns(context.Background(), "tok-1", "m-42", from, to)
	require.NoError(t, err)
	require.Len(t, campaigns, 2)

	assert.Equal(t, "101", campaigns[0].ID)
	assert.Equal(t, "Весна", campaigns[0].Name)
	assert.True(t, decimal.RequireFromString("1500.50").Equal(campaigns[0].Cost))
	assert.Equal(t, int64(3), campaigns[0].Transactions)
	assert.True(t, decimal.NewFromInt(6000).Equal(campaigns[0].GMV))
	assert.Equal(t, "c-2", campaigns[1].ID)
}

func TestClient_ListCampaigns_401EsSesionExpirada(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := c.ListCampaigns(context.Background(), "viejo", "m-42", from, to)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

func TestClient_ListCampaigns_ErrorDelServidor(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("mantenimiento"))
	})
	_, err := c.ListCampaigns(context.Background(), "tok", "m-42", from, to)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionExpired)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_ListCampaigns_JSONInvalido(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"campaigns":[{"id":true}]}`))
	})
	_, err := c.ListCampaigns(context.Background(), "tok", "m-42", from, to)
	assert.Error(t, err)
}

// ─── Productos por campaña ────────────────────────────────────────────────────

func TestClient_CampaignProducts(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/merchants/m-42/campaigns/101/products", r.URL.Path)
		_, _ = w.Write([]byte(`{"products":[{"sku":"P1","cost":120.5},{"sku":778899,"cost":"30"}]}`))
	})

	lines, err := c.CampaignProducts(context.Background(), "tok", "m-42", "101", from, to)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "P1", lines[0].SKU)
	assert.True(t, decimal.RequireFromString("120.5").Equal(lines[0].Cost))
	assert.Equal(t, "778899", lines[1].SKU)
}

func TestClient_ContextoCancelado(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CampaignProducts(ctx, "tok", "m-42", "101", from, to)
	assert.ErrorIs(t, err, context.Canceled)
}

// ─── Sesiones ─────────────────────────────────────────────────────────────────

func TestMemorySessionStore_GetSetDelete(t *testing.T) {
	s := marketing.NewMemorySessionStore()

	_, ok := s.Get("s1")
	assert.False(t, ok)

	s.Set("s1", "tok")
	got, ok := s.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, "tok", got)

	s.Delete("s1")
	_, ok = s.Get("s1")
	assert.False(t, ok)
}

func TestMemorySessionStore_Concurrente(t *testing.T) {
	s := marketing.NewMemorySessionStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Set("s1", "tok")
			s.Get("s1")
		}()
	}
	wg.Wait()
	got, _ := s.Get("s1")
	assert.Equal(t, "tok", got)
}
