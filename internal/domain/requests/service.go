package requests

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"

	"github.com/google/uuid"
)

// Service es el orquestador de transferencias entre instalaciones.
type Service struct {
	runner    TxRunner
	directory SupplierDirectory
	obs       shared.Observer
	notify    *audit.Notifier
	now       func() time.Time
	newID     func() string
}

func NewService(runner TxRunner, directory SupplierDirectory, obs shared.Observer, notify *audit.Notifier) *Service {
	if obs == nil {
		obs = shared.NopObserver()
	}
	return &Service{
		runner:    runner,
		directory: directory,
		obs:       obs,
		notify:    notify,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

type CreateInput struct {
	Requester  shared.OwnerRef
	Supplier   shared.OwnerRef
	BloodGroup shared.BloodGroup
	Units      int
	Remarks    string
}

// Create deja un request Pending. No mira stock: puede llegar después.
func (s *Service) Create(ctx context.Context, in CreateInput) (out BloodRequest, err error) {
	defer shared.Track(ctx, s.obs, "requests.create", time.Now(), &err)

	requester, err := in.Requester.Validate()
	if err != nil {
		return BloodRequest{}, err
	}
	supplier, err := in.Supplier.Validate()
	if err != nil {
		return BloodRequest{}, err
	}
	if requester.ID == supplier.ID {
		return BloodRequest{}, shared.Invalid("requester and supplier must differ")
	}
	if !in.BloodGroup.Valid() {
		return BloodRequest{}, shared.Invalid("unknown blood group %q", in.BloodGroup)
	}
	if in.Units < 1 {
		return BloodRequest{}, shared.Invalid("units must be at least 1, got %d", in.Units)
	}
	if in.Units > stock.MaxQuantity {
		return BloodRequest{}, shared.Invalid("units must be at most %d, got %d", stock.MaxQuantity, in.Units)
	}

	// Fuera de la transacción: no se retienen locks durante la llamada al directorio.
	if s.directory == nil {
		return BloodRequest{}, shared.Internal(fmt.Errorf("facility directory not configured"))
	}
	ok, err := s.directory.IsApprovedSupplier(ctx, supplier)
	if err != nil {
		return BloodRequest{}, shared.Internal(err)
	}
	if !ok {
		return BloodRequest{}, shared.NotFound("approved supplier", supplier.String())
	}

	now := s.now().UTC()
	r := BloodRequest{
		ID:         s.newID(),
		Requester:  requester,
		Supplier:   supplier,
		BloodGroup: in.BloodGroup,
		Units:      in.Units,
		Remarks:    strings.TrimSpace(in.Remarks),
		State:      StatePending,
		CreatedAt:  now,
	}

	var logged audit.Entry
	err = shared.RetryOnConflict(ctx, func() error {
		return s.runner.RunRequestTx(ctx, func(ctx context.Context, tx Tx) error {
			if err := tx.Requests().Create(ctx, r); err != nil {
				return err
			}
			var err error
			logged, err = appendAudit(ctx, tx, supplier.ID, audit.EventRequestReceived, r.ID, now,
				fmt.Sprintf("%s requested %d unit(s) of %s", requester.ID, r.Units, r.BloodGroup))
			return err
		})
	})
	if err != nil {
		return BloodRequest{}, shared.Internal(err)
	}

	s.notify.Notify(ctx, logged)
	return r, nil
}

// Process ejecuta la única transición permitida del request.
//
// Accept debita al supplier, acredita al requester, marca Accepted y audita
// en ambas instalaciones dentro de la misma unidad de trabajo. Si el débito
// falla el request queda Pending y se devuelve *shared.InsufficientStockError.
// Un request ya procesado devuelve shared.ErrStateConflict.
func (s *Service) Process(ctx context.Context, requestID string, action Action) (out BloodRequest, err error) {
	defer shared.Track(ctx, s.obs, "requests.process."+string(action), time.Now(), &err)

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return BloodRequest{}, shared.Invalid("request id required")
	}
	if action != ActionAccept && action != ActionReject {
		return BloodRequest{}, shared.Invalid("unknown action %q", action)
	}

	var logged []audit.Entry
	err = shared.RetryOnConflict(ctx, func() error {
		logged = logged[:0]
		return s.runner.RunRequestTx(ctx, func(ctx context.Context, tx Tx) error {
			r, err := tx.Requests().GetForUpdate(ctx, requestID)
			if err != nil {
				return err
			}
			if r.State != StatePending {
				return fmt.Errorf("%w: request %s already %s", shared.ErrStateConflict, r.ID, r.State)
			}

			now := s.now().UTC()
			switch action {
			case ActionReject:
				e, err := appendAudit(ctx, tx, r.Supplier.ID, audit.EventRequestRejected, r.ID, now,
					fmt.Sprintf("Rejected request from %s for %d unit(s) of %s", r.Requester.ID, r.Units, r.BloodGroup))
				if err != nil {
					return err
				}
				logged = append(logged, e)
				r.State = StateRejected

			case ActionAccept:
				entries, err := transfer(ctx, tx, r, now)
				if err != nil {
					return err
				}
				logged = append(logged, entries...)
				r.State = StateAccepted
			}

			r.ProcessedAt = &now
			if err := tx.Requests().Update(ctx, r); err != nil {
				return err
			}
			out = r
			return nil
		})
	})
	if err != nil {
		return BloodRequest{}, shared.Internal(err)
	}

	s.notify.Notify(ctx, logged...)
	return out, nil
}

// transfer mueve las unidades y deja una entrada en cada instalación.
func transfer(ctx context.Context, tx Tx, r BloodRequest, now time.Time) ([]audit.Entry, error) {
	debited, err := stock.ApplyDebit(ctx, tx.Stock(), stock.Movement{
		Owner:      r.Supplier,
		BloodGroup: r.BloodGroup,
		Quantity:   r.Units,
	}, now)
	if err != nil {
		return nil, err
	}
	credited, err := stock.ApplyCredit(ctx, tx.Stock(), stock.Movement{
		Owner:      r.Requester,
		BloodGroup: r.BloodGroup,
		Quantity:   r.Units,
	}, now)
	if err != nil {
		return nil, err
	}

	supplierEntry, err := appendAudit(ctx, tx, r.Supplier.ID, audit.EventRequestAccepted, r.ID, now,
		fmt.Sprintf("Sent %d unit(s) of %s to %s; %d left", r.Units, r.BloodGroup, r.Requester.ID, debited.Quantity))
	if err != nil {
		return nil, err
	}
	requesterEntry, err := appendAudit(ctx, tx, r.Requester.ID, audit.EventRequestFulfilled, r.ID, now,
		fmt.Sprintf("Received %d unit(s) of %s from %s; now %d", r.Units, r.BloodGroup, r.Supplier.ID, credited.Quantity))
	if err != nil {
		return nil, err
	}
	return []audit.Entry{supplierEntry, requesterEntry}, nil
}

func (s *Service) Get(ctx context.Context, requestID string) (out BloodRequest, err error) {
	defer shared.Track(ctx, s.obs, "requests.get", time.Now(), &err)

	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return BloodRequest{}, shared.Invalid("request id required")
	}

	err = s.runner.RunRequestTx(ctx, func(ctx context.Context, tx Tx) error {
		r, err := tx.Requests().Get(ctx, requestID)
		if err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return BloodRequest{}, shared.Internal(err)
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (out []BloodRequest, err error) {
	defer shared.Track(ctx, s.obs, "requests.list", time.Now(), &err)

	filter.FacilityID = strings.TrimSpace(filter.FacilityID)
	if filter.FacilityID == "" {
		return nil, shared.Invalid("facility id required")
	}
	if filter.State != "" && !filter.State.Valid() {
		return nil, shared.Invalid("unknown request state %q", filter.State)
	}

	err = s.runner.RunRequestTx(ctx, func(ctx context.Context, tx Tx) error {
		items, err := tx.Requests().List(ctx, filter)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, shared.Internal(err)
	}
	return out, nil
}

// Involves indica si la instalación participa del request (para autorización).
func (r BloodRequest) Involves(facilityID string) bool {
	return r.Requester.ID == facilityID || r.Supplier.ID == facilityID
}

func appendAudit(ctx context.Context, tx stock.Tx, facilityID string, ev audit.EventType, refID string, now time.Time, desc string) (audit.Entry, error) {
	e, err := audit.NewEntry(audit.AppendInput{
		FacilityID:  facilityID,
		EventType:   ev,
		Description: desc,
		ReferenceID: refID,
	}, now)
	if err != nil {
		return audit.Entry{}, err
	}
	return tx.Audit().Append(ctx, e)
}
