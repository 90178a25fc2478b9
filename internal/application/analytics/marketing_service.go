package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/internal/domain/analytics"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

const (
	defaultMarketingWindowDays  = 30
	defaultMarketingConcurrency = 4
)

var _ MarketingLoader = (*MarketingService)(nil)

// MarketingOptions parámetros de la carga de campañas.
type MarketingOptions struct {
	WindowDays  int           // siempre los últimos N días desde ahora, no la ventana del reporte
	Concurrency int           // llamadas simultáneas de productos por campaña
	LoadTimeout time.Duration // tope de toda la carga; 0 = sin tope, cada llamada ya lleva el timeout del transporte
}

// MarketingService carga campañas y gasto por SKU desde el gabinete de publicidad.
// Política de fallas: un único refresco de sesión + reintento; si vuelve a fallar, datos vacíos.
type MarketingService struct {
	source   ports.CampaignSource
	sessions ports.SessionStore
	log      *logger.Logger
	opts     MarketingOptions
	now      func() time.Time
}

// NewMarketingService construye el servicio.
func NewMarketingService(source ports.CampaignSource, sessions ports.SessionStore, log *logger.Logger, opts MarketingOptions) *MarketingService {
	if opts.WindowDays <= 0 {
		opts.WindowDays = defaultMarketingWindowDays
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultMarketingConcurrency
	}
	return &MarketingService{
		source:   source,
		sessions: sessions,
		log:      log,
		opts:     opts,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *MarketingService) WithClock(now func() time.Time) *MarketingService {
	s.now = now
	return s
}

// Load devuelve los datos de publicidad de la tienda. Nunca retorna error.
func (s *MarketingService) Load(ctx context.Context, store *entity.Store) analytics.MarketingData {
	empty := analytics.NewMarketingData(nil, nil)
	if s.source == nil || store == nil || store.MerchantID == "" {
		return empty
	}
	if s.opts.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.LoadTimeout)
		defer cancel()
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -s.opts.WindowDays)
	log := s.log.Child(s.log.With().Str("store_id", store.ID).Str("merchant_id", store.MerchantID))

	token, campaigns, err := s.listWithRefresh(ctx, store, from, to)
	if err != nil {
		log.Warn().Err(err).Msg("marketing: sin datos de campañas, se continúa sin publicidad")
		return empty
	}

	lines := s.campaignLines(ctx, log, token, store.MerchantID, campaigns, from, to)
	return analytics.NewMarketingData(campaigns, lines)
}

// listWithRefresh lista campañas con a lo sumo un refresco de sesión.
// Sin token en caché el login inicial cuenta como ese único refresco.
func (s *MarketingService) listWithRefresh(ctx context.Context, store *entity.Store, from, to time.Time) (string, []entity.MarketingCampaign, error) {
	token, ok := s.sessions.Get(store.ID)
	refreshed := false
	if !ok {
		var err error
		if token, err = s.refresh(ctx, store); err != nil {
			return "", nil, err
		}
		refreshed = true
	}

	campaigns, err := s.source.ListCampaigns(ctx, token, store.MerchantID, from, to)
	if err == nil {
		return token, campaigns, nil
	}
	if refreshed {
		return "", nil, err
	}

	s.log.Debug().Err(err).Str("store_id", store.ID).Msg("marketing: refrescando sesión")
	s.sessions.Delete(store.ID)
	if token, err = s.refresh(ctx, store); err != nil {
		return "", nil, err
	}
	campaigns, err = s.source.ListCampaigns(ctx, token, store.MerchantID, from, to)
	if err != nil {
		return "", nil, err
	}
	return token, campaigns, nil
}

func (s *MarketingService) refresh(ctx context.Context, store *entity.Store) (string, error) {
	token, err := s.source.Login(ctx, store.MerchantID)
	if err != nil {
		return "", err
	}
	s.sessions.Set(store.ID, token)
	return token, nil
}

// campaignLines consulta en paralelo el gasto por SKU de cada campaña con costo.
// Una falla solo anula el aporte de esa campaña.
func (s *MarketingService) campaignLines(
	ctx context.Context,
	log *logger.Logger,
	token, merchantID string,
	campaigns []entity.MarketingCampaign,
	from, to time.Time,
) []entity.CampaignLine {
	results := make([][]entity.CampaignLine, len(campaigns))

	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, c := range campaigns {
		if !c.Cost.IsPositive() {
			continue
		}
		g.Go(func() error {
			lines, err := s.source.CampaignProducts(ctx, token, merchantID, c.ID, from, to)
			if err != nil {
				log.Warn().Err(err).Str("campaign_id", c.ID).Msg("marketing: productos de campaña no disponibles")
				return nil
			}
			results[i] = lines
			return nil
		})
	}
	_ = g.Wait()

	var out []entity.CampaignLine
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}
