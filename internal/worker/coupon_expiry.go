package worker

import (
	"context"
	"time"
)

// CouponRepository деактивирует купоны с истекшим сроком
type CouponRepository interface {
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// Metrics метрики фоновых задач
type Metrics interface {
	AddCouponsExpired(n int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// CouponExpirySweeper периодически снимает с публикации просроченные купоны
type CouponExpirySweeper struct {
	repo     CouponRepository
	metrics  Metrics
	logger   Logger
	interval time.Duration
	now      func() time.Time
}

// NewCouponExpirySweeper создает воркер с указанным интервалом
func NewCouponExpirySweeper(repo CouponRepository, metrics Metrics, logger Logger, interval time.Duration) *CouponExpirySweeper {
	return &CouponExpirySweeper{
		repo:     repo,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Start запускает цикл до отмены контекста, первый проход выполняется сразу
// При неположительном интервале воркер не запускается
func (w *CouponExpirySweeper) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Error("CouponExpirySweeper: non-positive interval %s, sweeper disabled", w.interval)
		return
	}

	w.logger.Info("CouponExpirySweeper: started, interval=%s", w.interval)

	w.RunOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("CouponExpirySweeper: stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce деактивирует просроченные купоны и возвращает их количество
func (w *CouponExpirySweeper) RunOnce(ctx context.Context) int64 {
	n, err := w.repo.DeactivateExpired(ctx, w.now())
	if err != nil {
		w.logger.Error("CouponExpirySweeper: failed to deactivate expired coupons: %v", err)
		return 0
	}

	if n > 0 {
		w.logger.Info("CouponExpirySweeper: deactivated %d expired coupons", n)
		w.metrics.AddCouponsExpired(n)
	}

	return n
}
