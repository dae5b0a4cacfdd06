// Package catalog holds the fixed set of project sections and the ordered
// task fields of each one. Section names are the literal strings persisted in
// the database and used inside income keys, so they must never be translated.
package catalog

import "strings"

// Kind tells whether a section owns named items or a single details record.
type Kind int

const (
	KindFlat Kind = iota
	KindItems
)

func (k Kind) String() string {
	if k == KindItems {
		return "items"
	}
	return "flat"
}

const (
	Purchasing    = "خرید"
	Collaboration = "همکاری"
	Sales         = "فروش"
	Design        = "طراحی"
	Contracting   = "پیمانکاری"
	Consultation  = "مشاوره"
)

// Section describes one catalog entry.
type Section struct {
	Name string
	// Slug is the ASCII alias accepted by the API and CLI.
	Slug string
	Kind Kind
	// Collection is the MongoDB collection storing the section's items or details.
	Collection string
	// ProfitField is the projectincomes key holding the section's net subtotal.
	ProfitField string
	Fields      []string
}

var sections = []Section{
	{
		Name:        Purchasing,
		Slug:        "purchasing",
		Kind:        KindItems,
		Collection:  "purchasedetails",
		ProfitField: "purchaseProfit",
		Fields: []string{
			"متراژ",
			"استعلام قیمت",
			"هماهنگی با نصاب",
			"بودجه",
			"سفارش",
			"تحویل باربری",
			"گرفتن فاکتور نهایی",
		},
	},
	{
		Name:        Collaboration,
		Slug:        "collaboration",
		Kind:        KindItems,
		Collection:  "collaborationdetails",
		ProfitField: "collaborationProfit",
		Fields: []string{
			"بازدید",
			"ابعاد و اندازه",
			"براورد مالی",
			"برآورد زمانی",
			"قرارداد",
			"گرفتن بودجه",
			"تهیه جنس",
			"نظارت بر اجرای درست",
			"گرفتن فاکتور نهایی",
			"تحویل نهایی پروژه",
		},
	},
	{
		Name:        Sales,
		Slug:        "sales",
		Kind:        KindItems,
		Collection:  "saledetails",
		ProfitField: "salesProfit",
		Fields: []string{
			"متراژ",
			"۳ سطح پیشنهاد",
			"هماهنگی زمان و اندازه با نصاب",
			"گرفتن موجودی",
			"بودجه",
			"سفارش",
			"تحویل بار",
		},
	},
	{
		Name:        Design,
		Slug:        "design",
		Kind:        KindFlat,
		Collection:  "designdetails",
		ProfitField: "designProfit",
		Fields: []string{
			"برداشت میدانی",
			"ترسیم وضع موجود",
			"طراحی اولیه",
			"نقشه نهایی 2d",
			"نقشه آماده 3d(نما-مقطع-پلان-روف-محوطه)",
			"3D Modeling",
			"3D Rendering & Animation",
			"نقشه اجرایی فاز ۱",
			"نقشه اجرایی فاز ۲",
			"آلبوم عکس و نقشه",
		},
	},
	{
		Name:        Contracting,
		Slug:        "contracting",
		Kind:        KindFlat,
		Collection:  "contractingdetails",
		ProfitField: "contractingProfit",
		Fields: []string{
			"فاصله زمانی",
			"سختی کار",
			"تحویل نهایی کار و آلبوم",
			"ارجاع توسط",
		},
	},
	{
		Name:        Consultation,
		Slug:        "consultation",
		Kind:        KindFlat,
		Collection:  "consultationdetails",
		ProfitField: "consultationProfit",
		Fields: []string{
			"بازدید",
			"پر کردن چک لیست",
			"مشاوره",
		},
	},
}

var (
	byName = make(map[string]int, len(sections))
	bySlug = make(map[string]int, len(sections))
)

func init() {
	for i, s := range sections {
		byName[s.Name] = i
		bySlug[s.Slug] = i
	}
}

// Sections returns every section in display order. The slice is a copy.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		s.Fields = append([]string(nil), s.Fields...)
		out[i] = s
	}
	return out
}

// Names returns the section names in display order.
func Names() []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Name
	}
	return out
}

// Lookup finds a section by its persisted name or its ASCII slug.
func Lookup(name string) (Section, bool) {
	name = strings.TrimSpace(name)
	i, ok := byName[name]
	if !ok {
		i, ok = bySlug[strings.ToLower(name)]
	}
	if !ok {
		return Section{}, false
	}
	s := sections[i]
	s.Fields = append([]string(nil), s.Fields...)
	return s, true
}

// Canonical maps a slug or name to the persisted section name.
func Canonical(name string) (string, bool) {
	s, ok := Lookup(name)
	return s.Name, ok
}

func Valid(name string) bool {
	_, ok := byName[name]
	return ok
}

// Fields returns the ordered field list of a section, nil for unknown names.
func Fields(section string) []string {
	i, ok := byName[section]
	if !ok {
		return nil
	}
	return append([]string(nil), sections[i].Fields...)
}

func IsItemBearing(section string) bool {
	i, ok := byName[section]
	return ok && sections[i].Kind == KindItems
}

func HasField(section, field string) bool {
	i, ok := byName[section]
	if !ok {
		return false
	}
	for _, f := range sections[i].Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Collection returns the details collection of a section.
func Collection(section string) (string, bool) {
	i, ok := byName[section]
	if !ok {
		return "", false
	}
	return sections[i].Collection, true
}

// IncomeKey builds the composite key under which a field's income is stored.
// Flat sections use "section_field", item sections "section_item_field".
func IncomeKey(section, item, field string) string {
	if IsItemBearing(section) {
		return section + "_" + item + "_" + field
	}
	return section + "_" + field
}

// SectionOfKey returns the section name an income key belongs to.
func SectionOfKey(key string) (string, bool) {
	name, _, found := strings.Cut(key, "_")
	if !found || !Valid(name) {
		return "", false
	}
	return name, true
}
