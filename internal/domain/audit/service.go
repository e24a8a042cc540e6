package audit

import (
	"context"
	"sort"
	"strings"
	"time"

	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/platform/logger"
)

type Service struct {
	runner TxRunner
	obs    shared.Observer
	notify *Notifier
	now    func() time.Time
}

func NewService(runner TxRunner, obs shared.Observer, notify *Notifier) *Service {
	if obs == nil {
		obs = shared.NopObserver()
	}
	return &Service{
		runner: runner,
		obs:    obs,
		notify: notify,
		now:    time.Now,
	}
}

type AppendInput struct {
	FacilityID  string
	EventType   EventType
	Description string
	ReferenceID string
}

// NewEntry valida y arma una entrada; Seq lo asigna el repositorio.
func NewEntry(in AppendInput, now time.Time) (Entry, error) {
	facilityID := strings.TrimSpace(in.FacilityID)
	if facilityID == "" {
		return Entry{}, shared.Invalid("audit facility id required")
	}
	if strings.TrimSpace(string(in.EventType)) == "" {
		return Entry{}, shared.Invalid("audit event type required")
	}
	return Entry{
		FacilityID:  facilityID,
		EventType:   in.EventType,
		Description: strings.TrimSpace(in.Description),
		Date:        now.UTC(),
		ReferenceID: strings.TrimSpace(in.ReferenceID),
	}, nil
}

// Append agrega una entrada suelta (fuera de otra operación del ledger).
func (s *Service) Append(ctx context.Context, in AppendInput) (out Entry, err error) {
	defer shared.Track(ctx, s.obs, "audit.append", time.Now(), &err)

	e, err := NewEntry(in, s.now())
	if err != nil {
		return Entry{}, err
	}

	err = shared.RetryOnConflict(ctx, func() error {
		return s.runner.RunAuditTx(ctx, func(ctx context.Context, repo Repository) error {
			stored, err := repo.Append(ctx, e)
			if err != nil {
				return err
			}
			out = stored
			return nil
		})
	})
	if err != nil {
		return Entry{}, shared.Internal(err)
	}

	s.notify.Notify(ctx, out)
	return out, nil
}

// Read devuelve el historial más reciente primero. El orden es una
// proyección de lectura; el store guarda por orden de inserción.
func (s *Service) Read(ctx context.Context, facilityID string) (out []Entry, err error) {
	defer shared.Track(ctx, s.obs, "audit.read", time.Now(), &err)

	facilityID = strings.TrimSpace(facilityID)
	if facilityID == "" {
		return nil, shared.Invalid("facility id required")
	}

	err = s.runner.RunAuditTx(ctx, func(ctx context.Context, repo Repository) error {
		items, err := repo.ListByFacility(ctx, facilityID)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, shared.Internal(err)
	}

	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst ordena por fecha descendente; empates por Seq descendente.
func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.After(entries[j].Date)
		}
		return entries[i].Seq > entries[j].Seq
	})
}

// Publisher publica entradas ya commiteadas hacia afuera (ej: Kafka).
type Publisher interface {
	Publish(ctx context.Context, e Entry) error
}

// Notifier publica después del commit. Best-effort: si falla, se loguea y
// la operación del ledger sigue siendo exitosa. Un Notifier nil no hace nada.
type Notifier struct {
	pub Publisher
	log logger.Logger
}

func NewNotifier(pub Publisher, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Notifier{pub: pub, log: log}
}

func (n *Notifier) Notify(ctx context.Context, entries ...Entry) {
	if n == nil || n.pub == nil {
		return
	}
	for _, e := range entries {
		if err := n.pub.Publish(ctx, e); err != nil {
			n.log.Warn("audit publish failed", map[string]any{
				"facility_id": e.FacilityID,
				"seq":         e.Seq,
				"event_type":  string(e.EventType),
				"error":       err.Error(),
			})
		}
	}
}
