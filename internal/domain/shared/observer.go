package shared

import (
	"context"
	"time"
)

// Observer recibe el resultado de cada operación del ledger (metrics).
type Observer interface {
	Observe(ctx context.Context, operation string, kind Kind, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) Observe(context.Context, string, Kind, time.Duration) {}

// NopObserver descarta todo; default cuando no se configura metrics.
func NopObserver() Observer { return nopObserver{} }

// Track se usa con defer al inicio de cada operación:
//
//	defer shared.Track(ctx, s.obs, "stock.credit", time.Now(), &err)
func Track(ctx context.Context, obs Observer, operation string, start time.Time, errp *error) {
	if obs == nil {
		return
	}
	var err error
	if errp != nil {
		err = *errp
	}
	obs.Observe(ctx, operation, KindOf(err), time.Since(start))
}
