package database

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

// IndexSpec is the set of indexes one collection needs.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

func unique(keys bson.D, name string) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetUnique(true).SetName(name)}
}

func plain(keys bson.D, name string) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

// Indexes lists every index the application relies on.
func Indexes() []IndexSpec {
	specs := []IndexSpec{
		{schema.CollectionSectionWeights, []mongo.IndexModel{
			unique(bson.D{{Key: "sectionName", Value: 1}, {Key: "fieldName", Value: 1}}, "section_field_unique"),
		}},
		{schema.CollectionTeamMembers, []mongo.IndexModel{
			unique(bson.D{{Key: "nationalCode", Value: 1}}, "national_code_unique"),
		}},
		{schema.CollectionProjectSections, []mongo.IndexModel{
			plain(bson.D{{Key: "projectId", Value: 1}}, "project_id"),
		}},
		{schema.CollectionProjectIncomes, []mongo.IndexModel{
			unique(bson.D{{Key: "projectId", Value: 1}}, "project_id_unique"),
		}},
		{schema.CollectionProjectTaxes, []mongo.IndexModel{
			unique(bson.D{{Key: "projectId", Value: 1}}, "project_id_unique"),
		}},
		{schema.CollectionEmployeeSalaries, []mongo.IndexModel{
			unique(bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}}, "employee_date_unique"),
		}},
		{schema.CollectionSystemExpenses, []mongo.IndexModel{
			unique(bson.D{{Key: "date", Value: 1}}, "date_unique"),
		}},
		{schema.CollectionSystemPercentages, []mongo.IndexModel{
			plain(bson.D{{Key: "createdAt", Value: -1}}, "created_at_desc"),
		}},
	}
	for _, s := range catalog.Sections() {
		specs = append(specs, IndexSpec{s.Collection, []mongo.IndexModel{
			plain(bson.D{{Key: "sectionId", Value: 1}}, "section_id"),
		}})
	}
	return specs
}

// EnsureIndexes creates missing indexes. A failing collection is logged and
// reported in the returned error; the remaining collections are still tried.
func EnsureIndexes(ctx context.Context, d *DB) error {
	var failed []string
	for _, spec := range Indexes() {
		names, err := d.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models)
		if err != nil {
			slog.Error("failed to create indexes", "collection", spec.Collection, "error", err)
			failed = append(failed, spec.Collection)
			continue
		}
		slog.Debug("indexes ensured", "collection", spec.Collection, "indexes", names)
	}
	if len(failed) > 0 {
		return fmt.Errorf("index creation failed for %v", failed)
	}
	return nil
}
