package commission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
)

const (
	memberA = "member-a"
	memberB = "member-b"
)

// designFixture: design section with two weighted fields, the second one
// switched off, income on the first.
func designFixture() *fakeSource {
	f := newFakeSource()
	fields := catalog.Fields(catalog.Design)
	a, b := fields[0], fields[1]

	f.addProject("p1", "Villa")
	f.addSection("s1", "p1", catalog.Design)
	f.setDetails("s1",
		FieldAssignment{Field: a, IsActive: true, AssignedMemberID: memberA},
		FieldAssignment{Field: b, IsActive: false, AssignedMemberID: memberB},
	)
	// the rest of the catalog fields are explicitly off
	for _, name := range fields[2:] {
		f.details["s1"].Fields = append(f.details["s1"].Fields, FieldAssignment{Field: name})
	}
	f.weights = []SectionWeight{
		{SectionName: catalog.Design, FieldName: a, Weight: 60},
		{SectionName: catalog.Design, FieldName: b, Weight: 40},
	}
	f.percent = Percentages{catalog.Design: 10}
	f.setIncome("p1", map[string]float64{
		catalog.IncomeKey(catalog.Design, "", a): 1_000_000,
		catalog.IncomeKey(catalog.Design, "", b): 500_000,
	})
	return f
}

// purchasingFixture: one item, one weighted field, no house cut.
func purchasingFixture() *fakeSource {
	f := newFakeSource()
	budget := "بودجه"

	f.addProject("p1", "Shop")
	f.addSection("s1", "p1", catalog.Purchasing)
	f.addItem("s1", "Item1", FieldAssignment{Field: budget, IsActive: true, AssignedMemberID: memberA})
	f.weights = []SectionWeight{{SectionName: catalog.Purchasing, FieldName: budget, Weight: 50}}
	f.setIncome("p1", map[string]float64{
		catalog.IncomeKey(catalog.Purchasing, "Item1", budget): 200_000,
	})
	return f
}

func TestMemberCommissionsDesignScenario(t *testing.T) {
	agg := NewAggregator(designFixture())

	lines, err := agg.MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, "p1", l.ProjectID)
	assert.Equal(t, "Villa", l.ProjectName)
	assert.Equal(t, catalog.Design, l.SectionName)
	assert.Empty(t, l.ItemName)
	assert.InDelta(t, 100.0, l.Weight, 1e-9)
	assert.Equal(t, 10.0, l.SystemPercent)
	assert.Equal(t, int64(900_000), l.Commission)
}

func TestMemberCommissionsInactiveFieldOmitted(t *testing.T) {
	agg := NewAggregator(designFixture())

	lines, err := agg.MemberCommissions(context.Background(), memberB)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMemberCommissionsPurchasingScenario(t *testing.T) {
	agg := NewAggregator(purchasingFixture())

	lines, err := agg.MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Item1", lines[0].ItemName)
	assert.InDelta(t, 50.0, lines[0].Weight, 1e-9)
	assert.Equal(t, int64(100_000), lines[0].Commission)
}

func TestMemberCommissionsNoWeights(t *testing.T) {
	f := purchasingFixture()
	f.weights = nil

	lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMemberCommissionsZeroIncomeOmitted(t *testing.T) {
	f := purchasingFixture()
	f.setIncome("p1", map[string]float64{})

	lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMemberCommissionsZeroCommissionKept(t *testing.T) {
	// income and weight are positive, so the line is reported even though
	// nothing is left for the member
	t.Run("house keeps everything", func(t *testing.T) {
		f := designFixture()
		f.percent = Percentages{catalog.Design: 100}

		lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 100.0, lines[0].SystemPercent)
		assert.Zero(t, lines[0].Commission)
	})

	t.Run("income rounds to zero", func(t *testing.T) {
		f := designFixture()
		f.percent = nil
		a := catalog.Fields(catalog.Design)[0]
		f.weights = []SectionWeight{{SectionName: catalog.Design, FieldName: a, Weight: 100}}
		f.setIncome("p1", map[string]float64{catalog.IncomeKey(catalog.Design, "", a): 0.4})

		lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 0.4, lines[0].Income)
		assert.Equal(t, 100.0, lines[0].Weight)
		assert.Zero(t, lines[0].Commission)
	})
}

func TestMemberCommissionsMissingIncomeSkipsProject(t *testing.T) {
	f := purchasingFixture()
	delete(f.incomes, "p1")

	lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMemberCommissionsMissingFieldEntryIsActive(t *testing.T) {
	// A catalog field with no stored assignment counts as active, so its
	// weight stays in the pool and dilutes nothing.
	f := purchasingFixture()
	second := catalog.Fields(catalog.Purchasing)[0]
	f.weights = append(f.weights, SectionWeight{SectionName: catalog.Purchasing, FieldName: second, Weight: 50})

	lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 50.0, lines[0].Weight, 1e-9)
}

func TestMemberCommissionsSkipsVanishedRecords(t *testing.T) {
	f := purchasingFixture()
	f.addProject("p2", "Gone")
	f.setIncome("p2", map[string]float64{"x": 1})
	f.missing["p2"] = true

	lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestMemberCommissionsSkipsUnknownSection(t *testing.T) {
	f := purchasingFixture()
	f.addSection("s9", "p1", "legacy")

	lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestMemberCommissionsUpstreamFailure(t *testing.T) {
	for _, method := range []string{
		"ListProjects", "ListSections", "ListItems", "ListSectionWeights",
		"LatestSystemPercentages", "GetProjectIncome",
	} {
		t.Run(method, func(t *testing.T) {
			f := purchasingFixture()
			f.fail = method

			lines, err := NewAggregator(f).MemberCommissions(context.Background(), memberA)
			if !errors.Is(err, errUpstream) {
				t.Errorf("MemberCommissions() error = %v, want upstream failure", err)
			}
			if lines != nil {
				t.Errorf("MemberCommissions() returned partial result %v", lines)
			}
		})
	}
}

func TestMemberCommissionsEmptyMember(t *testing.T) {
	lines, err := NewAggregator(purchasingFixture()).MemberCommissions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestMemberCommissionsPage(t *testing.T) {
	f := purchasingFixture()
	budget := "بودجه"
	for _, id := range []string{"p2", "p3"} {
		f.addProject(id, "Shop "+id)
		f.addSection("s-"+id, id, catalog.Purchasing)
		f.addItem("s-"+id, "Item1", FieldAssignment{Field: budget, IsActive: true, AssignedMemberID: memberA})
		f.setIncome(id, map[string]float64{catalog.IncomeKey(catalog.Purchasing, "Item1", budget): 200_000})
	}
	agg := NewAggregator(f)

	first, err := agg.MemberCommissionsPage(context.Background(), memberA, "", 2)
	require.NoError(t, err)
	assert.True(t, first.HasMore)
	assert.Equal(t, "p2", first.NextCursor)
	assert.Len(t, first.Lines, 2)

	second, err := agg.MemberCommissionsPage(context.Background(), memberA, first.NextCursor, 2)
	require.NoError(t, err)
	assert.False(t, second.HasMore)
	assert.Empty(t, second.NextCursor)
	require.Len(t, second.Lines, 1)
	assert.Equal(t, "p3", second.Lines[0].ProjectID)
}

func TestMemberAssignments(t *testing.T) {
	agg := NewAggregator(designFixture())

	got, err := agg.MemberAssignments(context.Background(), memberB)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].IsActive)
	assert.Equal(t, catalog.Fields(catalog.Design)[1], got[0].FieldName)
}

func TestSummarizeMembers(t *testing.T) {
	agg := NewAggregator(designFixture(), WithConcurrency(2))

	got, err := agg.SummarizeMembers(context.Background(), []string{memberA, memberB, "nobody"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, MemberTotal{MemberID: memberA, Commission: 900_000, Lines: 1}, got[0])
	assert.Equal(t, int64(0), got[1].Commission)
	assert.Equal(t, "nobody", got[2].MemberID)
}

func TestSummarizeMembersFailure(t *testing.T) {
	f := designFixture()
	f.fail = "ListProjects"

	_, err := NewAggregator(f).SummarizeMembers(context.Background(), []string{memberA, memberB})
	assert.ErrorIs(t, err, errUpstream)
}

func TestProjectBreakdown(t *testing.T) {
	agg := NewAggregator(designFixture())

	got, err := agg.ProjectBreakdown(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Villa", got.ProjectName)
	require.Len(t, got.Units, 1)

	u := got.Units[0]
	assert.Len(t, u.Fields, len(catalog.Fields(catalog.Design)))
	assert.Equal(t, int64(900_000), u.Fields[0].Commission)
	assert.Equal(t, int64(100_000), u.Fields[0].SystemShare)
	assert.Equal(t, 40.0, u.Fields[1].OriginalWeight)
	assert.Zero(t, u.Fields[1].Weight)
	assert.Zero(t, u.Fields[1].Commission)
	assert.Equal(t, int64(900_000), got.TotalCommission)
	assert.Equal(t, map[string]int64{memberA: 900_000}, got.MemberTotals)
}

func TestProjectBreakdownMissingProject(t *testing.T) {
	got, err := NewAggregator(designFixture()).ProjectBreakdown(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, got.Units)
	assert.Zero(t, got.TotalCommission)
}

func TestPreview(t *testing.T) {
	fields := catalog.Fields(catalog.Design)
	table, _ := NewWeightTable([]SectionWeight{
		{SectionName: catalog.Design, FieldName: fields[0], Weight: 60},
		{SectionName: catalog.Design, FieldName: fields[1], Weight: 40},
	})

	got, err := Preview(catalog.Design, []PreviewField{
		{Field: fields[0], IsActive: true, Income: 1_000_000},
		{Field: fields[1], IsActive: false, Income: 1_000_000},
	}, table, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(900_000), got.TotalCommission)
	assert.InDelta(t, 100.0, got.Fields[0].Weight, 1e-9)

	_, err = Preview("unknown", nil, table, 0)
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestFieldsResolve(t *testing.T) {
	fields := catalog.Fields(catalog.Consultation)
	got := Fields{
		{Field: "not in catalog", IsActive: true},
		{Field: fields[1], IsActive: false, AssignedMemberID: memberA},
	}.Resolve(catalog.Consultation)

	require.Len(t, got, len(fields))
	assert.Equal(t, fields, got.Names())
	assert.True(t, got[0].IsActive)
	assert.False(t, got[1].IsActive)
	assert.Equal(t, memberA, got[1].AssignedMemberID)
}
