// Package erpdata orquesta la carga de datos del ERP: define los puertos de
// autenticación y lectura, agrega las tres cargas bajo un resultado común y
// registra los conteos de entradas.
package erpdata

import (
	"context"
	"fmt"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

// Kind tipo de carga.
type Kind string

const (
	KindSales         Kind = "sales"
	KindPurchases     Kind = "purchases"
	KindManufacturing Kind = "manufacturing"
)

// Valid true si el tipo de carga existe.
func (k Kind) Valid() bool {
	switch k {
	case KindSales, KindPurchases, KindManufacturing:
		return true
	}
	return false
}

// DefaultLimit tope de cabeceras por carga (las más recientes primero).
const DefaultLimit = 100

// ── Puertos ────────────────────────────────────────────────────────────────────

// Authenticator sesión contra el ERP.
type Authenticator interface {
	Authenticate(ctx context.Context) error
	Authenticated() bool
}

// DataFetcher lectura de registros del ERP.
type DataFetcher interface {
	FetchSales(ctx context.Context, limit int) ([]entity.SaleOrder, error)
	FetchPurchases(ctx context.Context, limit int) ([]entity.PurchaseOrder, error)
	FetchManufacturingOrders(ctx context.Context, limit int) ([]entity.ManufacturingOrder, error)
}

// ── Resultado ──────────────────────────────────────────────────────────────────

// Result resultado de una carga; solo la rama del Kind pedido viene poblada.
type Result struct {
	Kind      Kind
	Sales     []entity.SaleOrder
	Purchases []entity.PurchaseOrder
	Mfg       []entity.ManufacturingOrder
}

// Count cantidad de entradas cargadas.
func (r *Result) Count() int {
	switch r.Kind {
	case KindSales:
		return len(r.Sales)
	case KindPurchases:
		return len(r.Purchases)
	case KindManufacturing:
		return len(r.Mfg)
	}
	return 0
}

// ── Servicio ───────────────────────────────────────────────────────────────────

// Service caso de uso de carga de datos.
type Service struct {
	auth    Authenticator
	fetcher DataFetcher
	log     *logger.Logger
}

// NewService construye el servicio con sus puertos.
func NewService(auth Authenticator, fetcher DataFetcher, log *logger.Logger) *Service {
	return &Service{auth: auth, fetcher: fetcher, log: log}
}

// Connect prueba la conexión autenticando contra el ERP.
func (s *Service) Connect(ctx context.Context) error {
	if err := s.auth.Authenticate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("conexión ERP rechazada")
		return err
	}
	s.log.Info().Msg("sesión ERP establecida")
	return nil
}

// Fetch ejecuta la carga del tipo pedido. Requiere sesión autenticada.
func (s *Service) Fetch(ctx context.Context, kind Kind, limit int) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de carga %q", domain.ErrInvalidInput, kind)
	}
	if !s.auth.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	res := &Result{Kind: kind}
	var err error
	switch kind {
	case KindSales:
		res.Sales, err = s.fetcher.FetchSales(ctx, limit)
	case KindPurchases:
		res.Purchases, err = s.fetcher.FetchPurchases(ctx, limit)
	case KindManufacturing:
		res.Mfg, err = s.fetcher.FetchManufacturingOrders(ctx, limit)
	}
	if err != nil {
		s.log.Error().Err(err).Str("tipo", string(kind)).Msg("carga ERP fallida")
		return nil, err
	}

	s.log.Info().Str("tipo", string(kind)).Int("entradas", res.Count()).Msg("carga ERP completada")
	return res, nil
}
