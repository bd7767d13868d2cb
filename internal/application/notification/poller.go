// Package notification entrega las notificaciones de stock de forma periódica.
package notification

import (
	"context"
	"errors"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// Source calcula el conjunto de notificaciones de una empresa.
type Source interface {
	Notifications(ctx context.Context, companyID string, now time.Time) (*dto.NotificationsResponse, error)
}

// TickRecorder registra el resultado de cada vuelta del sondeo.
type TickRecorder interface {
	PollTick(err error)
}

// Poller recalcula las notificaciones a intervalo fijo para una sesión.
// Sin backoff, sin jitter y sin deduplicar: cada vuelta emite el conjunto completo.
type Poller struct {
	source   Source
	interval time.Duration
	ticks    TickRecorder
	log      *logger.Logger
	now      func() time.Time
}

// NewPoller construye el sondeo. ticks puede ser nil.
func NewPoller(source Source, interval time.Duration, ticks TickRecorder, log *logger.Logger) *Poller {
	return &Poller{source: source, interval: interval, ticks: ticks, log: log, now: time.Now}
}

// Interval intervalo configurado.
func (p *Poller) Interval() time.Duration { return p.interval }

// Run emite un cálculo inmediato y luego uno por intervalo hasta que ctx se cancela
// (devuelve nil) o emit falla (devuelve ese error). Un fallo al calcular se registra
// y se espera a la siguiente vuelta.
func (p *Poller) Run(ctx context.Context, companyID string, emit func(*dto.NotificationsResponse) error) error {
	if p.interval <= 0 {
		return errors.New("notification: intervalo de sondeo inválido")
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.tick(ctx, companyID, emit); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *Poller) tick(ctx context.Context, companyID string, emit func(*dto.NotificationsResponse) error) error {
	if ctx.Err() != nil {
		return nil
	}
	res, err := p.source.Notifications(ctx, companyID, p.now())
	if p.ticks != nil {
		p.ticks.PollTick(err)
	}
	if err != nil {
		if ctx.Err() == nil {
			p.log.Warn().Err(err).Str("company_id", companyID).Msg("sondeo de notificaciones")
		}
		return nil
	}
	return emit(res)
}
