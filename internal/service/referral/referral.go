package referral

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Request struct {
	FullName    string
	ReferralFee float64
	Description string
	// DateAdded defaults to today when empty.
	DateAdded string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]schema.GuestReferral, error)
	Create(ctx context.Context, req Request) (*schema.GuestReferral, error)
	Update(ctx context.Context, id string, req Request) (*schema.GuestReferral, error)
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type referralService struct {
	db  *repo.Client
	now func() time.Time
}

func New(db *repo.Client) Service {
	return &referralService{db: db, now: time.Now}
}

func (s *referralService) build(req Request) (schema.GuestReferral, error) {
	r := schema.GuestReferral{
		FullName:    strings.TrimSpace(req.FullName),
		ReferralFee: req.ReferralFee,
		Description: strings.TrimSpace(req.Description),
		DateAdded:   strings.TrimSpace(req.DateAdded),
	}
	if r.FullName == "" {
		return r, ErrFullNameRequired
	}
	if r.ReferralFee < 0 {
		return r, ErrNegativeFee
	}
	if r.DateAdded == "" {
		r.DateAdded = s.now().UTC().Format("2006-01-02")
	}
	return r, nil
}

func (s *referralService) List(ctx context.Context) ([]schema.GuestReferral, error) {
	out, err := s.db.Referrals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	return out, nil
}

func (s *referralService) Create(ctx context.Context, req Request) (*schema.GuestReferral, error) {
	r, err := s.build(req)
	if err != nil {
		return nil, err
	}
	out, err := s.db.Referrals.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create referral: %w", err)
	}
	return out, nil
}

func (s *referralService) Update(ctx context.Context, id string, req Request) (*schema.GuestReferral, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	r, err := s.build(req)
	if err != nil {
		return nil, err
	}
	r.ID = oid
	out, err := s.db.Referrals.Update(ctx, r)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update referral: %w", err)
	}
	return out, nil
}

func (s *referralService) Delete(ctx context.Context, id string) error {
	oid, err := repo.ParseID(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.db.Referrals.Delete(ctx, oid); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete referral: %w", err)
	}
	return nil
}
