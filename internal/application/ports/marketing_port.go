package ports

import (
	"context"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// CampaignSource puerto de salida hacia el gabinete de publicidad del marketplace.
// Un token vencido se reporta como domain.ErrSessionExpired.
type CampaignSource interface {
	// Login obtiene un token de sesión nuevo para la cuenta del comerciante.
	Login(ctx context.Context, merchantID string) (string, error)
	// ListCampaigns campañas con sus métricas en [from, to].
	ListCampaigns(ctx context.Context, token, merchantID string, from, to time.Time) ([]entity.MarketingCampaign, error)
	// CampaignProducts gasto por SKU de una campaña en [from, to].
	CampaignProducts(ctx context.Context, token, merchantID, campaignID string, from, to time.Time) ([]entity.CampaignLine, error)
}

// SessionStore guarda el token de marketing por tienda.
// Refrescos concurrentes para la misma tienda son aceptables (último en escribir gana).
type SessionStore interface {
	Get(storeID string) (string, bool)
	Set(storeID, token string)
	Delete(storeID string)
}
