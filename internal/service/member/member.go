package member

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// PhoneRegion is the default region for numbers written without a country
// code.
const PhoneRegion = "IR"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Request struct {
	FullName     string
	Position     string
	FatherName   string
	NationalCode string
	PhoneNumber  string
	Email        string
	Education    string
	Address      string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context) ([]schema.TeamMember, error)
	Get(ctx context.Context, id string) (*schema.TeamMember, error)
	Create(ctx context.Context, req Request) (*schema.TeamMember, error)
	Update(ctx context.Context, id string, req Request) (*schema.TeamMember, error)
	Delete(ctx context.Context, id string) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type memberService struct {
	db       *repo.Client
	validate *validator.Validate
}

func New(db *repo.Client) Service {
	return &memberService{db: db, validate: validator.New()}
}

func (s *memberService) List(ctx context.Context) ([]schema.TeamMember, error) {
	ms, err := s.db.Members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return ms, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*schema.TeamMember, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	m, err := s.db.Members.Get(ctx, oid)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *memberService) Create(ctx context.Context, req Request) (*schema.TeamMember, error) {
	m, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	created, err := s.db.Members.Create(ctx, m)
	if err != nil {
		if repo.IsDuplicate(err) {
			return nil, ErrDuplicateNationalID
		}
		return nil, fmt.Errorf("create member: %w", err)
	}
	return created, nil
}

func (s *memberService) Update(ctx context.Context, id string, req Request) (*schema.TeamMember, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	m, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	m.ID = oid
	updated, err := s.db.Members.Update(ctx, m)
	if err != nil {
		switch {
		case repo.IsNotFound(err):
			return nil, ErrNotFound
		case repo.IsDuplicate(err):
			return nil, ErrDuplicateNationalID
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return updated, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	oid, err := repo.ParseID(id)
	if err != nil {
		return ErrNotFound
	}
	if err := s.db.Members.Delete(ctx, oid); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}

// normalize trims the request, checks it and formats the phone number as
// E.164.
func (s *memberService) normalize(req Request) (schema.TeamMember, error) {
	m := schema.TeamMember{
		FullName:     strings.TrimSpace(req.FullName),
		Position:     strings.TrimSpace(req.Position),
		FatherName:   strings.TrimSpace(req.FatherName),
		NationalCode: strings.TrimSpace(req.NationalCode),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Education:    strings.TrimSpace(req.Education),
		Address:      strings.TrimSpace(req.Address),
	}
	if m.FullName == "" {
		return m, ErrFullNameRequired
	}
	if s.validate.Var(m.NationalCode, "len=10,numeric") != nil {
		return m, ErrInvalidNationalCode
	}
	if m.Email != "" && s.validate.Var(m.Email, "email") != nil {
		return m, ErrInvalidEmail
	}
	phone, err := NormalizePhone(req.PhoneNumber)
	if err != nil {
		return m, err
	}
	m.PhoneNumber = phone
	return m, nil
}

// NormalizePhone parses a number, defaulting to PhoneRegion, and returns it
// in E.164 form. An empty number stays empty.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, PhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
