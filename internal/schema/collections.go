package schema

// Collection names shared with the existing database.
const (
	CollectionProjects          = "projects"
	CollectionProjectSections   = "projectsections"
	CollectionTeamMembers       = "teammembers"
	CollectionSectionWeights    = "sectionweights"
	CollectionSystemPercentages = "systempercentages"
	CollectionProjectIncomes    = "projectincomes"
	CollectionProjectTaxes      = "projecttaxes"
	CollectionEmployeeSalaries  = "employeesalaries"
	CollectionSystemExpenses    = "systemexpenses"
	CollectionGuestReferrals    = "guestreferrals"
)
