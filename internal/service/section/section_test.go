package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

func TestMergeUpdate(t *testing.T) {
	off := false
	member := "abc"
	clear := ""
	base := commission.FieldAssignment{Field: "f", IsActive: true, AssignedMemberID: "old"}

	tests := []struct {
		name string
		req  FieldUpdate
		want commission.FieldAssignment
	}{
		{"toggle only", FieldUpdate{IsActive: &off}, commission.FieldAssignment{Field: "f", IsActive: false, AssignedMemberID: "old"}},
		{"reassign only", FieldUpdate{AssignedMemberID: &member}, commission.FieldAssignment{Field: "f", IsActive: true, AssignedMemberID: "abc"}},
		{"clear member", FieldUpdate{AssignedMemberID: &clear}, commission.FieldAssignment{Field: "f", IsActive: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeUpdate(base, tt.req))
		})
	}
}

func TestMemberRef(t *testing.T) {
	ref, err := memberRef("")
	require.NoError(t, err)
	assert.Nil(t, ref)

	id := bson.NewObjectID()
	ref, err = memberRef(id.Hex())
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, id, *ref)

	_, err = memberRef("not-an-id")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestItemView(t *testing.T) {
	fields := catalog.Fields(catalog.Collaboration)
	member := bson.NewObjectID()
	it := schema.ItemDetails{
		ID:       bson.NewObjectID(),
		ItemName: "Tiles",
		Details: map[string]schema.ItemField{
			fields[0]: {Value: "120", IsActive: schema.Flag(false)},
		},
		AssignedMembers: map[string]bson.ObjectID{fields[1]: member},
	}

	v := itemView(catalog.Collaboration, it)
	require.Len(t, v.Fields, len(fields))
	assert.Equal(t, "Tiles", v.Name)
	assert.Equal(t, "120", v.Fields[0].Value)
	assert.False(t, v.Fields[0].IsActive)
	assert.True(t, v.Fields[1].IsActive)
	assert.Equal(t, member.Hex(), v.Fields[1].AssignedMemberID)
	assert.Nil(t, v.Fields[2].Value)
}

func TestDetailsViewFillsCatalog(t *testing.T) {
	sec := schema.ProjectSection{ID: bson.NewObjectID(), SectionName: catalog.Contracting}
	v := detailsView(sec, nil)

	require.Len(t, v.Fields, len(catalog.Fields(catalog.Contracting)))
	for _, f := range v.Fields {
		assert.True(t, f.IsActive, f.Field)
		assert.Empty(t, f.AssignedMemberID)
	}
}
