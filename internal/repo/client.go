package repo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Client groups the stores of every collection the service uses.
type Client struct {
	db *mongo.Database

	Projects    *ProjectStore
	Sections    *SectionStore
	Items       *ItemStore
	Flat        *FlatStore
	Members     *MemberStore
	Weights     *WeightStore
	Percentages *PercentageStore
	Incomes     *IncomeStore
	Taxes       *TaxStore
	Salaries    *SalaryStore
	Expenses    *ExpenseStore
	Referrals   *ReferralStore
}

func NewClient(db *mongo.Database) *Client {
	c := &Client{db: db}
	c.Projects = &ProjectStore{db: db}
	c.Sections = &SectionStore{db: db}
	c.Items = &ItemStore{db: db}
	c.Flat = &FlatStore{db: db}
	c.Members = &MemberStore{db: db}
	c.Weights = &WeightStore{db: db}
	c.Percentages = &PercentageStore{db: db}
	c.Incomes = &IncomeStore{db: db}
	c.Taxes = &TaxStore{db: db}
	c.Salaries = &SalaryStore{db: db}
	c.Expenses = &ExpenseStore{db: db}
	c.Referrals = &ReferralStore{db: db}
	return c
}

func (c *Client) Database() *mongo.Database {
	return c.db
}

// ParseID converts a hex string into an ObjectID.
func ParseID(s string) (bson.ObjectID, error) {
	id, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.ObjectID{}, ErrInvalidID
	}
	return id, nil
}

// ParseIDs converts hex strings, failing on the first invalid one.
func ParseIDs(ss []string) ([]bson.ObjectID, error) {
	out := make([]bson.ObjectID, 0, len(ss))
	for _, s := range ss {
		id, err := ParseID(s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

var now = func() time.Time { return time.Now().UTC() }
