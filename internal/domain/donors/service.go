package donors

import (
	"context"
	"fmt"
	"strings"
	"time"

	"blood-ledger/internal/domain/audit"
	"blood-ledger/internal/domain/eligibility"
	"blood-ledger/internal/domain/shared"
	"blood-ledger/internal/domain/stock"

	"github.com/google/uuid"
)

type Service struct {
	runner TxRunner
	obs    shared.Observer
	notify *audit.Notifier
	now    func() time.Time
	newID  func() string
}

func NewService(runner TxRunner, obs shared.Observer, notify *audit.Notifier) *Service {
	if obs == nil {
		obs = shared.NopObserver()
	}
	return &Service{
		runner: runner,
		obs:    obs,
		notify: notify,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

type RecordInput struct {
	DonorID           string
	RecordingFacility shared.OwnerRef
	BloodGroup        shared.BloodGroup // opcional; vacío = el del donante
	Quantity          int               // 0 = 1
	Remarks           string
}

// RecordDonation registra la donación, acredita el stock de la instalación
// y audita, todo en una unidad. Aplica el gate de 3 meses calendario.
func (s *Service) RecordDonation(ctx context.Context, in RecordInput) (out Donation, err error) {
	defer shared.Track(ctx, s.obs, "donors.record_donation", time.Now(), &err)

	donorID := strings.TrimSpace(in.DonorID)
	if donorID == "" {
		return Donation{}, shared.Invalid("donor id required")
	}
	facility, err := in.RecordingFacility.Validate()
	if err != nil {
		return Donation{}, err
	}
	if in.BloodGroup != "" && !in.BloodGroup.Valid() {
		return Donation{}, shared.Invalid("unknown blood group %q", in.BloodGroup)
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 || qty > stock.MaxQuantity {
		return Donation{}, shared.Invalid("quantity must be between 1 and %d, got %d", stock.MaxQuantity, in.Quantity)
	}
	remarks := strings.TrimSpace(in.Remarks)

	var logged audit.Entry
	err = shared.RetryOnConflict(ctx, func() error {
		return s.runner.RunDonorTx(ctx, func(ctx context.Context, tx Tx) error {
			d, err := tx.Donors().GetForUpdate(ctx, donorID)
			if err != nil {
				return err
			}

			now := s.now().UTC()
			if !eligibility.MinimumGapSatisfied(d.LastDonationDate, now) {
				return &shared.CooldownError{
					DonorID:     d.ID,
					LastDonated: *d.LastDonationDate,
					NextAllowed: eligibility.NextRecordableDate(*d.LastDonationDate),
				}
			}

			group := in.BloodGroup
			if group == "" {
				group = d.BloodGroup
			}
			if !group.Valid() {
				return shared.Invalid("donor %s has no blood group on record", d.ID)
			}

			d.BloodGroup = group
			d.LastDonationDate = &now
			if err := tx.Donors().Update(ctx, d); err != nil {
				return err
			}

			donation := Donation{
				ID:                s.newID(),
				DonorID:           d.ID,
				DonationDate:      now,
				RecordingFacility: facility,
				BloodGroup:        group,
				Quantity:          qty,
				Verified:          true,
				Remarks:           remarks,
			}
			if err := tx.Donors().AppendDonation(ctx, donation); err != nil {
				return err
			}

			credited, err := stock.ApplyCredit(ctx, tx.Stock(), stock.Movement{
				Owner:      facility,
				BloodGroup: group,
				Quantity:   qty,
			}, now)
			if err != nil {
				return err
			}

			e, err := audit.NewEntry(audit.AppendInput{
				FacilityID: facility.ID,
				EventType:  audit.EventDonation,
				Description: fmt.Sprintf("%s donated %d unit(s) of %s; now %d",
					d.Name, qty, group, credited.Quantity),
				ReferenceID: donation.ID,
			}, now)
			if err != nil {
				return err
			}
			logged, err = tx.Audit().Append(ctx, e)
			if err != nil {
				return err
			}

			out = donation
			return nil
		})
	})
	if err != nil {
		return Donation{}, shared.Internal(err)
	}

	s.notify.Notify(ctx, logged)
	return out, nil
}

// Eligibility lee el perfil y evalúa con el reloj del servicio.
func (s *Service) Eligibility(ctx context.Context, donorID string) (d Donor, st eligibility.Status, err error) {
	defer shared.Track(ctx, s.obs, "donors.eligibility", time.Now(), &err)

	d, err = s.Get(ctx, donorID)
	if err != nil {
		return Donor{}, eligibility.Status{}, err
	}
	return d, eligibility.Evaluate(d.Age, d.Weight, d.LastDonationDate, s.now().UTC()), nil
}

func (s *Service) Get(ctx context.Context, donorID string) (out Donor, err error) {
	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return Donor{}, shared.Invalid("donor id required")
	}
	err = s.runner.RunDonorTx(ctx, func(ctx context.Context, tx Tx) error {
		d, err := tx.Donors().Get(ctx, donorID)
		if err != nil {
			return err
		}
		out = d
		return nil
	})
	if err != nil {
		return Donor{}, shared.Internal(err)
	}
	return out, nil
}

// ListDonations devuelve el historial del donante, más reciente primero.
func (s *Service) ListDonations(ctx context.Context, donorID string) (out []Donation, err error) {
	defer shared.Track(ctx, s.obs, "donors.list_donations", time.Now(), &err)

	donorID = strings.TrimSpace(donorID)
	if donorID == "" {
		return nil, shared.Invalid("donor id required")
	}
	err = s.runner.RunDonorTx(ctx, func(ctx context.Context, tx Tx) error {
		if _, err := tx.Donors().Get(ctx, donorID); err != nil {
			return err
		}
		items, err := tx.Donors().ListDonations(ctx, donorID)
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

// GetDonation busca una donación del donante. NotFound si el donante o la
// donación no existen.
func (s *Service) GetDonation(ctx context.Context, donorID, donationID string) (out Donation, err error) {
	defer shared.Track(ctx, s.obs, "donors.get_donation", time.Now(), &err)

	donationID = strings.TrimSpace(donationID)
	if donationID == "" {
		return Donation{}, shared.Invalid("donation id required")
	}
	items, err := s.ListDonations(ctx, donorID)
	if err != nil {
		return Donation{}, err
	}
	for _, d := range items {
		if d.ID == donationID {
			return d, nil
		}
	}
	return Donation{}, shared.NotFound("donation", donationID)
}

// SetVerified es la única mutación permitida sobre una donación ya registrada.
func (s *Service) SetVerified(ctx context.Context, donorID, donationID string, verified bool) (out Donation, err error) {
	defer shared.Track(ctx, s.obs, "donors.set_verified", time.Now(), &err)

	donorID = strings.TrimSpace(donorID)
	donationID = strings.TrimSpace(donationID)
	if donorID == "" || donationID == "" {
		return Donation{}, shared.Invalid("donor id and donation id required")
	}
	err = shared.RetryOnConflict(ctx, func() error {
		return s.runner.RunDonorTx(ctx, func(ctx context.Context, tx Tx) error {
			d, err := tx.Donors().SetDonationVerified(ctx, donorID, donationID, verified)
			if err != nil {
				return err
			}
			out = d
			return nil
		})
	})
	if err != nil {
		return Donation{}, shared.Internal(err)
	}
	return out, nil
}
