package memory

import (
	"context"

	"blood-ledger/internal/domain/audit"
)

type auditRepo struct{ t *tx }

func (r auditRepo) Append(ctx context.Context, e audit.Entry) (audit.Entry, error) {
	s := r.t.s
	id := e.FacilityID

	// La primera escritura de la transacción sobre un historial guarda una
	// copia para poder restaurarlo completo.
	if !r.t.touchedTrails[id] {
		r.t.touchedTrails[id] = true
		prevRing, hadRing := s.trails[id]
		var snapshot *audit.Ring
		if hadRing {
			snapshot = prevRing.Clone()
		}
		prevSeq := s.seqs[id]
		r.t.onRollback(func() {
			if hadRing {
				s.trails[id] = snapshot
			} else {
				delete(s.trails, id)
			}
			if prevSeq == 0 {
				delete(s.seqs, id)
			} else {
				s.seqs[id] = prevSeq
			}
		})
	}

	ring, ok := s.trails[id]
	if !ok {
		ring = audit.NewRing(audit.Capacity)
		s.trails[id] = ring
	}
	s.seqs[id]++
	e.Seq = s.seqs[id]
	ring.Push(e)
	return e, nil
}

func (r auditRepo) ListByFacility(ctx context.Context, facilityID string) ([]audit.Entry, error) {
	ring, ok := r.t.s.trails[facilityID]
	if !ok {
		return []audit.Entry{}, nil
	}
	return ring.Items(), nil
}
