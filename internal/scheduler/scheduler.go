// Package scheduler refresca el catálogo en segundo plano para que el carrito
// vea los cambios de stock hechos desde otras cajas.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Scheduler struct {
	sched   *cron.Cron
	catalog Refresher
	timeout time.Duration
}

// New registra el refresco del catálogo con la expresión dada. Una expresión
// vacía devuelve un scheduler sin trabajos.
func New(spec string, catalog Refresher, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		sched:   cron.New(cron.WithParser(cronParser)),
		catalog: catalog,
		timeout: timeout,
	}
	if spec == "" {
		return s, nil
	}
	if _, err := s.sched.AddFunc(spec, s.refreshCatalog); err != nil {
		return nil, fmt.Errorf("invalid catalog refresh spec %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop detiene el cron y espera a que termine el trabajo en curso
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.sched.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) refreshCatalog() {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("catalog refresh job panic", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.catalog.Refresh(ctx); err != nil {
		zap.L().Warn("scheduled catalog refresh failed", zap.Error(err))
	}
}
