package commission

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	core "github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
	svc "github.com/Alijeyrad/taadol_backend/internal/service/commission"
)

func TestRenderMember(t *testing.T) {
	var buf bytes.Buffer
	renderMember(&buf, &svc.MemberReport{
		Member: &schema.TeamMember{FullName: "Sara", Position: "Designer"},
		Lines: []core.Line{{
			ProjectName:   "Villa",
			SectionName:   "طراحی",
			FieldName:     "نقشه",
			Weight:        100,
			SystemPercent: 10,
			Commission:    900_000,
		}},
		Total: 900_000,
	})

	out := buf.String()
	assert.Contains(t, out, "Sara (Designer)")
	assert.Contains(t, out, "Villa")
	assert.Contains(t, out, "100.00")
	assert.Contains(t, out, "900,000")
}
