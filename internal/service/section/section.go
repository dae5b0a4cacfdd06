package section

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/repo"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// FieldInput is one field of an item or flat section as submitted.
type FieldInput struct {
	Field            string
	Value            any
	IsActive         bool
	AssignedMemberID string
}

// FieldUpdate toggles a field and/or reassigns it. A nil pointer leaves that
// part unchanged; an empty member id clears the assignment.
type FieldUpdate struct {
	Field            string
	IsActive         *bool
	AssignedMemberID *string
}

type ItemRequest struct {
	Name   string
	Fields []FieldInput
}

type FieldView struct {
	Field            string `json:"field"`
	Value            any    `json:"value,omitempty"`
	IsActive         bool   `json:"is_active"`
	AssignedMemberID string `json:"assigned_member_id,omitempty"`
}

type ItemView struct {
	ID        string      `json:"id"`
	SectionID string      `json:"section_id"`
	Name      string      `json:"name"`
	Fields    []FieldView `json:"fields"`
}

type DetailsView struct {
	SectionID   string      `json:"section_id"`
	SectionName string      `json:"section_name"`
	Fields      []FieldView `json:"fields"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	ListByProject(ctx context.Context, projectID string) ([]schema.ProjectSection, error)
	Add(ctx context.Context, projectID, name string) (*schema.ProjectSection, error)
	SetActive(ctx context.Context, id string, active bool) (*schema.ProjectSection, error)
	Delete(ctx context.Context, id string) error

	ListItems(ctx context.Context, sectionID string) ([]ItemView, error)
	GetItem(ctx context.Context, sectionID, itemID string) (*ItemView, error)
	CreateItem(ctx context.Context, sectionID string, req ItemRequest) (*ItemView, error)
	UpdateItem(ctx context.Context, sectionID, itemID string, req ItemRequest) (*ItemView, error)
	DeleteItem(ctx context.Context, sectionID, itemID string) error
	UpdateItemField(ctx context.Context, sectionID, itemID string, req FieldUpdate) (*ItemView, error)

	GetDetails(ctx context.Context, sectionID string) (*DetailsView, error)
	SaveDetails(ctx context.Context, sectionID string, fields []FieldInput) (*DetailsView, error)
	UpdateDetailsField(ctx context.Context, sectionID string, req FieldUpdate) (*DetailsView, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type sectionService struct {
	db *repo.Client
}

func New(db *repo.Client) Service {
	return &sectionService{db: db}
}

func (s *sectionService) ListByProject(ctx context.Context, projectID string) ([]schema.ProjectSection, error) {
	pid, err := repo.ParseID(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if _, err := s.db.Projects.Get(ctx, pid); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	secs, err := s.db.Sections.ListByProject(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return secs, nil
}

func (s *sectionService) Add(ctx context.Context, projectID, name string) (*schema.ProjectSection, error) {
	canonical, ok := catalog.Canonical(name)
	if !ok {
		return nil, ErrUnknownSection
	}
	pid, err := repo.ParseID(projectID)
	if err != nil {
		return nil, ErrProjectNotFound
	}
	if _, err := s.db.Projects.Get(ctx, pid); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	if _, err := s.db.Sections.FindByName(ctx, pid, canonical); err == nil {
		return nil, ErrAlreadyExists
	} else if !repo.IsNotFound(err) {
		return nil, fmt.Errorf("find section: %w", err)
	}

	sec, err := s.db.Sections.Create(ctx, pid, canonical)
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	if !catalog.IsItemBearing(canonical) {
		if _, err := s.db.Flat.Upsert(ctx, canonical, sec.ID, map[string]schema.FlatField{}); err != nil {
			return nil, fmt.Errorf("create details: %w", err)
		}
	}
	return sec, nil
}

func (s *sectionService) SetActive(ctx context.Context, id string, active bool) (*schema.ProjectSection, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	sec, err := s.db.Sections.SetActive(ctx, oid, active)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update section: %w", err)
	}
	return sec, nil
}

func (s *sectionService) Delete(ctx context.Context, id string) error {
	sec, err := s.section(ctx, id)
	if err != nil {
		return err
	}
	ids := []bson.ObjectID{sec.ID}
	if catalog.IsItemBearing(sec.SectionName) {
		_, err = s.db.Items.DeleteBySections(ctx, ids)
	} else {
		_, err = s.db.Flat.DeleteBySections(ctx, ids)
	}
	if err != nil {
		return fmt.Errorf("delete section details: %w", err)
	}
	if err := s.db.Sections.Delete(ctx, sec.ID); err != nil && !repo.IsNotFound(err) {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

func (s *sectionService) ListItems(ctx context.Context, sectionID string) ([]ItemView, error) {
	sec, err := s.itemSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	items, err := s.db.Items.List(ctx, sec.SectionName, sec.ID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]ItemView, len(items))
	for i, it := range items {
		out[i] = itemView(sec.SectionName, it)
	}
	return out, nil
}

func (s *sectionService) GetItem(ctx context.Context, sectionID, itemID string) (*ItemView, error) {
	sec, it, err := s.item(ctx, sectionID, itemID)
	if err != nil {
		return nil, err
	}
	v := itemView(sec.SectionName, *it)
	return &v, nil
}

func (s *sectionService) CreateItem(ctx context.Context, sectionID string, req ItemRequest) (*ItemView, error) {
	sec, err := s.itemSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	it, err := s.buildItem(ctx, sec.SectionName, req)
	if err != nil {
		return nil, err
	}
	it.SectionID = sec.ID

	created, err := s.db.Items.Create(ctx, sec.SectionName, it)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	v := itemView(sec.SectionName, *created)
	return &v, nil
}

func (s *sectionService) UpdateItem(ctx context.Context, sectionID, itemID string, req ItemRequest) (*ItemView, error) {
	sec, cur, err := s.item(ctx, sectionID, itemID)
	if err != nil {
		return nil, err
	}
	it, err := s.buildItem(ctx, sec.SectionName, req)
	if err != nil {
		return nil, err
	}
	it.ID, it.SectionID = cur.ID, cur.SectionID

	updated, err := s.db.Items.Update(ctx, sec.SectionName, it)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}
	v := itemView(sec.SectionName, *updated)
	return &v, nil
}

func (s *sectionService) DeleteItem(ctx context.Context, sectionID, itemID string) error {
	sec, it, err := s.item(ctx, sectionID, itemID)
	if err != nil {
		return err
	}
	if err := s.db.Items.Delete(ctx, sec.SectionName, it.ID); err != nil {
		if repo.IsNotFound(err) {
			return ErrItemNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (s *sectionService) UpdateItemField(ctx context.Context, sectionID, itemID string, req FieldUpdate) (*ItemView, error) {
	sec, it, err := s.item(ctx, sectionID, itemID)
	if err != nil {
		return nil, err
	}
	current := repo.ItemFields(sec.SectionName, *it).Resolve(sec.SectionName)
	next, err := s.applyUpdate(ctx, sec.SectionName, current, req)
	if err != nil {
		return nil, err
	}

	member, err := memberRef(next.AssignedMemberID)
	if err != nil {
		return nil, err
	}
	updated, err := s.db.Items.SetField(ctx, sec.SectionName, it.ID, next.Field, next.IsActive, member)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("update item field: %w", err)
	}
	v := itemView(sec.SectionName, *updated)
	return &v, nil
}

// ---------------------------------------------------------------------------
// Flat details
// ---------------------------------------------------------------------------

func (s *sectionService) GetDetails(ctx context.Context, sectionID string) (*DetailsView, error) {
	sec, err := s.flatSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	d, err := s.db.Flat.Get(ctx, sec.SectionName, sec.ID)
	if err != nil && !repo.IsNotFound(err) {
		return nil, fmt.Errorf("get details: %w", err)
	}
	var fields commission.Fields
	if d != nil {
		fields = repo.FlatFields(sec.SectionName, *d)
	}
	return detailsView(*sec, fields), nil
}

func (s *sectionService) SaveDetails(ctx context.Context, sectionID string, in []FieldInput) (*DetailsView, error) {
	sec, err := s.flatSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	details := make(map[string]schema.FlatField, len(in))
	for _, f := range in {
		a, err := s.checkField(ctx, sec.SectionName, commission.FieldAssignment{
			Field: f.Field, IsActive: f.IsActive, AssignedMemberID: f.AssignedMemberID,
		})
		if err != nil {
			return nil, err
		}
		ff, err := repo.FlatFieldFrom(a)
		if err != nil {
			return nil, ErrMemberNotFound
		}
		details[a.Field] = ff
	}
	d, err := s.db.Flat.Upsert(ctx, sec.SectionName, sec.ID, details)
	if err != nil {
		return nil, fmt.Errorf("save details: %w", err)
	}
	return detailsView(*sec, repo.FlatFields(sec.SectionName, *d)), nil
}

func (s *sectionService) UpdateDetailsField(ctx context.Context, sectionID string, req FieldUpdate) (*DetailsView, error) {
	sec, err := s.flatSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	var current commission.Fields
	d, err := s.db.Flat.Get(ctx, sec.SectionName, sec.ID)
	switch {
	case err == nil:
		current = repo.FlatFields(sec.SectionName, *d)
	case !repo.IsNotFound(err):
		return nil, fmt.Errorf("get details: %w", err)
	}

	next, err := s.applyUpdate(ctx, sec.SectionName, current.Resolve(sec.SectionName), req)
	if err != nil {
		return nil, err
	}
	ff, err := repo.FlatFieldFrom(next)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	d, err = s.db.Flat.SetField(ctx, sec.SectionName, sec.ID, next.Field, ff)
	if err != nil {
		return nil, fmt.Errorf("update details field: %w", err)
	}
	return detailsView(*sec, repo.FlatFields(sec.SectionName, *d)), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (s *sectionService) section(ctx context.Context, id string) (*schema.ProjectSection, error) {
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrNotFound
	}
	sec, err := s.db.Sections.Get(ctx, oid)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	if !catalog.Valid(sec.SectionName) {
		return nil, ErrUnknownSection
	}
	return sec, nil
}

func (s *sectionService) itemSection(ctx context.Context, id string) (*schema.ProjectSection, error) {
	sec, err := s.section(ctx, id)
	if err != nil {
		return nil, err
	}
	if !catalog.IsItemBearing(sec.SectionName) {
		return nil, ErrNotItemSection
	}
	return sec, nil
}

func (s *sectionService) flatSection(ctx context.Context, id string) (*schema.ProjectSection, error) {
	sec, err := s.section(ctx, id)
	if err != nil {
		return nil, err
	}
	if catalog.IsItemBearing(sec.SectionName) {
		return nil, ErrNotFlatSection
	}
	return sec, nil
}

func (s *sectionService) item(ctx context.Context, sectionID, itemID string) (*schema.ProjectSection, *schema.ItemDetails, error) {
	sec, err := s.itemSection(ctx, sectionID)
	if err != nil {
		return nil, nil, err
	}
	oid, err := repo.ParseID(itemID)
	if err != nil {
		return nil, nil, ErrItemNotFound
	}
	it, err := s.db.Items.Get(ctx, sec.SectionName, oid)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, nil, ErrItemNotFound
		}
		return nil, nil, fmt.Errorf("get item: %w", err)
	}
	if it.SectionID != sec.ID {
		return nil, nil, ErrItemNotFound
	}
	return sec, it, nil
}

func (s *sectionService) buildItem(ctx context.Context, section string, req ItemRequest) (schema.ItemDetails, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return schema.ItemDetails{}, ErrItemNameMissing
	}
	it := schema.ItemDetails{
		ItemName:        name,
		Details:         make(map[string]schema.ItemField, len(req.Fields)),
		AssignedMembers: map[string]bson.ObjectID{},
	}
	for _, f := range req.Fields {
		a, err := s.checkField(ctx, section, commission.FieldAssignment{
			Field: f.Field, IsActive: f.IsActive, AssignedMemberID: f.AssignedMemberID,
		})
		if err != nil {
			return schema.ItemDetails{}, err
		}
		it.Details[a.Field] = schema.ItemField{Value: f.Value}
		if err := repo.ApplyItemField(&it, a); err != nil {
			return schema.ItemDetails{}, ErrMemberNotFound
		}
	}
	return it, nil
}

// checkField validates the field name against the catalog and that the
// assignee exists.
func (s *sectionService) checkField(ctx context.Context, section string, a commission.FieldAssignment) (commission.FieldAssignment, error) {
	a.Field = strings.TrimSpace(a.Field)
	if !catalog.HasField(section, a.Field) {
		return a, fmt.Errorf("%w: %q", ErrUnknownField, a.Field)
	}
	a.AssignedMemberID = strings.TrimSpace(a.AssignedMemberID)
	if a.AssignedMemberID == "" {
		return a, nil
	}
	mid, err := repo.ParseID(a.AssignedMemberID)
	if err != nil {
		return a, ErrMemberNotFound
	}
	if _, err := s.db.Members.Get(ctx, mid); err != nil {
		if repo.IsNotFound(err) {
			return a, ErrMemberNotFound
		}
		return a, fmt.Errorf("get member: %w", err)
	}
	return a, nil
}

func (s *sectionService) applyUpdate(ctx context.Context, section string, current commission.Fields, req FieldUpdate) (commission.FieldAssignment, error) {
	if req.IsActive == nil && req.AssignedMemberID == nil {
		return commission.FieldAssignment{}, ErrNothingToUpdate
	}
	next, ok := current.Lookup(strings.TrimSpace(req.Field))
	if !ok {
		return next, fmt.Errorf("%w: %q", ErrUnknownField, req.Field)
	}
	next = mergeUpdate(next, req)
	return s.checkField(ctx, section, next)
}

// memberRef converts an assignee id for storage; empty means unassigned.
func memberRef(id string) (*bson.ObjectID, error) {
	if id == "" {
		return nil, nil
	}
	oid, err := repo.ParseID(id)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	return &oid, nil
}

// mergeUpdate applies the set parts of req to f.
func mergeUpdate(f commission.FieldAssignment, req FieldUpdate) commission.FieldAssignment {
	if req.IsActive != nil {
		f.IsActive = *req.IsActive
	}
	if req.AssignedMemberID != nil {
		f.AssignedMemberID = *req.AssignedMemberID
	}
	return f
}

func itemView(section string, it schema.ItemDetails) ItemView {
	fields := repo.ItemFields(section, it).Resolve(section)
	v := ItemView{
		ID:        it.ID.Hex(),
		SectionID: it.SectionID.Hex(),
		Name:      it.ItemName,
		Fields:    make([]FieldView, len(fields)),
	}
	for i, f := range fields {
		v.Fields[i] = FieldView{
			Field:            f.Field,
			Value:            it.Details[f.Field].Value,
			IsActive:         f.IsActive,
			AssignedMemberID: f.AssignedMemberID,
		}
	}
	return v
}

func detailsView(sec schema.ProjectSection, fields commission.Fields) *DetailsView {
	resolved := fields.Resolve(sec.SectionName)
	v := &DetailsView{
		SectionID:   sec.ID.Hex(),
		SectionName: sec.SectionName,
		Fields:      make([]FieldView, len(resolved)),
	}
	for i, f := range resolved {
		v.Fields[i] = FieldView{Field: f.Field, IsActive: f.IsActive, AssignedMemberID: f.AssignedMemberID}
	}
	return v
}
