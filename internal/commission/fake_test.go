package commission

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var errUpstream = errors.New("connection refused")

// fakeSource is an in-memory Source. Setting fail to a method name makes that
// method return errUpstream; ids listed in missing return ErrNotFound.
type fakeSource struct {
	projects []Project
	sections []Section
	items    map[string][]Item
	details  map[string]*Details
	weights  []SectionWeight
	percent  Percentages
	incomes  map[string]*Income

	fail    string
	missing map[string]bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		items:   map[string][]Item{},
		details: map[string]*Details{},
		incomes: map[string]*Income{},
		missing: map[string]bool{},
	}
}

func (f *fakeSource) addProject(id, name string) {
	f.projects = append(f.projects, Project{ID: id, Name: name})
}

func (f *fakeSource) addSection(id, projectID, name string) Section {
	s := Section{ID: id, ProjectID: projectID, Name: name, IsActive: true}
	f.sections = append(f.sections, s)
	return s
}

func (f *fakeSource) addItem(sectionID, name string, fields ...FieldAssignment) {
	f.items[sectionID] = append(f.items[sectionID], Item{
		ID:        fmt.Sprintf("%s-%s", sectionID, name),
		SectionID: sectionID,
		Name:      name,
		Fields:    fields,
	})
}

func (f *fakeSource) setDetails(sectionID string, fields ...FieldAssignment) {
	f.details[sectionID] = &Details{ID: sectionID + "-d", SectionID: sectionID, Fields: fields}
}

func (f *fakeSource) setIncome(projectID string, entries map[string]float64) {
	in := &Income{ProjectID: projectID, Entries: map[string]IncomeEntry{}}
	for k, v := range entries {
		in.Entries[k] = IncomeEntry{Value: v, IsActive: true}
	}
	f.incomes[projectID] = in
}

func (f *fakeSource) check(method string) error {
	if f.fail == method {
		return errUpstream
	}
	return nil
}

func (f *fakeSource) ListProjects(ctx context.Context) ([]Project, error) {
	if err := f.check("ListProjects"); err != nil {
		return nil, err
	}
	return append([]Project(nil), f.projects...), nil
}

func (f *fakeSource) ListProjectsAfter(ctx context.Context, after string, limit int) ([]Project, error) {
	if err := f.check("ListProjectsAfter"); err != nil {
		return nil, err
	}
	sorted := append([]Project(nil), f.projects...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var out []Project
	for _, p := range sorted {
		if after != "" && p.ID <= after {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSource) GetProject(ctx context.Context, id string) (Project, error) {
	if err := f.check("GetProject"); err != nil {
		return Project{}, err
	}
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrNotFound
}

func (f *fakeSource) ListSections(ctx context.Context, projectID string) ([]Section, error) {
	if err := f.check("ListSections"); err != nil {
		return nil, err
	}
	if f.missing[projectID] {
		return nil, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	var out []Section
	for _, s := range f.sections {
		if projectID == "" || s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) ListItems(ctx context.Context, section Section) ([]Item, error) {
	if err := f.check("ListItems"); err != nil {
		return nil, err
	}
	if f.missing[section.ID] {
		return nil, ErrNotFound
	}
	return f.items[section.ID], nil
}

func (f *fakeSource) GetDetails(ctx context.Context, section Section) (*Details, error) {
	if err := f.check("GetDetails"); err != nil {
		return nil, err
	}
	if f.missing[section.ID] {
		return nil, ErrNotFound
	}
	return f.details[section.ID], nil
}

func (f *fakeSource) ListSectionWeights(ctx context.Context) ([]SectionWeight, error) {
	if err := f.check("ListSectionWeights"); err != nil {
		return nil, err
	}
	return f.weights, nil
}

func (f *fakeSource) LatestSystemPercentages(ctx context.Context) (Percentages, error) {
	if err := f.check("LatestSystemPercentages"); err != nil {
		return nil, err
	}
	return f.percent, nil
}

func (f *fakeSource) GetProjectIncome(ctx context.Context, projectID string) (*Income, error) {
	if err := f.check("GetProjectIncome"); err != nil {
		return nil, err
	}
	return f.incomes[projectID], nil
}
