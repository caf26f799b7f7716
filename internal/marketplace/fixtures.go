package marketplace

import (
	"fmt"
	"time"

	"github.com/datafoundry/bazaar/internal/model"
)

// FixtureUser is the profile demo mode reports for /users/me.
var FixtureUser = model.User{
	Username: "admin",
	Name:     "Administrator",
	Email:    "admin@datamarketplace.com",
	Role:     model.RoleAdmin,
}

// fixtureSeed drives deterministic fixture timestamps.
var fixtureSeed = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type fixtureSpec struct {
	name           string
	description    string
	businessLine   string
	domain         string
	subDomain      string
	owner          string
	steward        string
	tags           []string
	maturity       model.MaturityLevel
	classification model.ClassificationType
	quality        int
	usage          int
	rating         float64
	elements       int
	ageDays        int
}

var fixtureSpecs = []fixtureSpec{
	{
		name:           "Customer Master Data",
		description:    "Golden record of all retail and commercial customers, deduplicated across source systems and refreshed nightly.",
		businessLine:   "Retail Banking",
		domain:         "Customer",
		subDomain:      "Master Data",
		owner:          "Maria Jansen",
		steward:        "Pieter de Vries",
		tags:           []string{"customer", "golden-record", "pii"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationConfidential,
		quality:        95, usage: 1840, rating: 4.6, elements: 120, ageDays: 2,
	},
	{
		name:           "Transaction History",
		description:    "Ledger of all account transactions with merchant enrichment, spanning seven years of history.",
		businessLine:   "Retail Banking",
		domain:         "Payments",
		subDomain:      "Transactions",
		owner:          "Maria Jansen",
		steward:        "Lucas Bakker",
		tags:           []string{"transactions", "payments", "history"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationConfidential,
		quality:        92, usage: 2310, rating: 4.4, elements: 45, ageDays: 1,
	},
	{
		name:           "Mortgage Portfolio",
		description:    "Active mortgage contracts with collateral valuations and risk gradings.",
		businessLine:   "Mortgages",
		domain:         "Lending",
		subDomain:      "Mortgages",
		owner:          "Sophie Visser",
		steward:        "Pieter de Vries",
		tags:           []string{"mortgages", "lending", "risk"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationRestricted,
		quality:        88, usage: 640, rating: 4.1, elements: 88, ageDays: 5,
	},
	{
		name:           "Fraud Alerts",
		description:    "Real-time fraud detection alerts with investigation outcomes and false-positive labels.",
		businessLine:   "Risk & Compliance",
		domain:         "Risk",
		subDomain:      "Fraud",
		owner:          "Ahmed El Idrissi",
		steward:        "Sophie Visser",
		tags:           []string{"fraud", "alerts", "risk"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationSensitive,
		quality:        90, usage: 980, rating: 4.3, elements: 32, ageDays: 3,
	},
	{
		name:           "Branch Performance Metrics",
		description:    "Monthly branch-level KPIs covering footfall, conversion, and satisfaction scores.",
		businessLine:   "Retail Banking",
		domain:         "Operations",
		subDomain:      "Branches",
		owner:          "Lucas Bakker",
		steward:        "Maria Jansen",
		tags:           []string{"kpi", "branches", "reporting"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationInternal,
		quality:        82, usage: 410, rating: 3.9, elements: 27, ageDays: 12,
	},
	{
		name:           "Marketing Campaign Responses",
		description:    "Campaign touchpoints and response outcomes across email, app, and direct mail channels.",
		businessLine:   "Marketing",
		domain:         "Customer",
		subDomain:      "Campaigns",
		owner:          "Emma Smit",
		steward:        "Lucas Bakker",
		tags:           []string{"marketing", "campaigns", "customer"},
		maturity:       model.MaturityPrepared,
		classification: model.ClassificationInternal,
		quality:        76, usage: 290, rating: 3.6, elements: 41, ageDays: 20,
	},
	{
		name:           "Credit Risk Scores",
		description:    "Behavioral and application credit scores with model version lineage.",
		businessLine:   "Risk & Compliance",
		domain:         "Risk",
		subDomain:      "Credit",
		owner:          "Ahmed El Idrissi",
		steward:        "Sophie Visser",
		tags:           []string{"credit", "scoring", "risk"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationRestricted,
		quality:        93, usage: 1120, rating: 4.5, elements: 56, ageDays: 4,
	},
	{
		name:           "ATM Network Status",
		description:    "Operational status and cash levels for the ATM fleet, refreshed every five minutes.",
		businessLine:   "Operations",
		domain:         "Operations",
		subDomain:      "ATM",
		owner:          "Lucas Bakker",
		steward:        "Emma Smit",
		tags:           []string{"atm", "operations", "real-time"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationInternal,
		quality:        85, usage: 730, rating: 4.0, elements: 18, ageDays: 1,
	},
	{
		name:           "Regulatory Reporting Extracts",
		description:    "Pre-validated extracts feeding the quarterly regulatory submissions.",
		businessLine:   "Risk & Compliance",
		domain:         "Compliance",
		subDomain:      "Reporting",
		owner:          "Sophie Visser",
		steward:        "Ahmed El Idrissi",
		tags:           []string{"regulatory", "compliance", "reporting"},
		maturity:       model.MaturityPublished,
		classification: model.ClassificationConfidential,
		quality:        91, usage: 350, rating: 4.2, elements: 210, ageDays: 8,
	},
	{
		name:           "Customer Churn Predictions",
		description:    "Weekly churn propensity scores per customer with driving feature attributions.",
		businessLine:   "Marketing",
		domain:         "Customer",
		subDomain:      "Analytics",
		owner:          "Emma Smit",
		steward:        "Maria Jansen",
		tags:           []string{"churn", "analytics", "customer"},
		maturity:       model.MaturityPrepared,
		classification: model.ClassificationInternal,
		quality:        79, usage: 520, rating: 3.8, elements: 35, ageDays: 6,
	},
	{
		name:           "Legacy Loan Book",
		description:    "Archived loan contracts from the pre-merger core system.",
		businessLine:   "Mortgages",
		domain:         "Lending",
		subDomain:      "Archive",
		owner:          "Sophie Visser",
		steward:        "Pieter de Vries",
		tags:           []string{"loans", "archive"},
		maturity:       model.MaturityDeprecated,
		classification: model.ClassificationConfidential,
		quality:        61, usage: 40, rating: 2.9, elements: 74, ageDays: 400,
	},
	{
		name:           "Payment Terminal Telemetry",
		description:    "Device health and transaction throughput telemetry from merchant payment terminals.",
		businessLine:   "Operations",
		domain:         "Payments",
		subDomain:      "Terminals",
		owner:          "Lucas Bakker",
		steward:        "Ahmed El Idrissi",
		tags:           []string{"payments", "telemetry", "operations"},
		maturity:       model.MaturityDraft,
		classification: model.ClassificationInternal,
		quality:        68, usage: 150, rating: 3.2, elements: 22, ageDays: 15,
	},
}

// FixtureDatasets builds the demo dataset collection. The set is
// deterministic so tests can assert on ordering and paging.
func FixtureDatasets() []model.Dataset {
	datasets := make([]model.Dataset, len(fixtureSpecs))
	for i, spec := range fixtureSpecs {
		id := fmt.Sprintf("ds-%03d", i+1)
		updated := fixtureSeed.AddDate(0, 0, -spec.ageDays)

		datasets[i] = model.Dataset{
			ID:             id,
			TechnicalID:    fmt.Sprintf("SRC-%03d", i+1),
			SourceSystemID: fmt.Sprintf("SRC-%03d", i+1),
			SourceSystem:   "Core Banking",
			Name:           spec.name,
			Description:    spec.description,
			BusinessLine:   spec.businessLine,
			BusinessEntity: "DataFoundry NL",
			Location:       "Amsterdam",
			Domain:         spec.domain,
			SubDomain:      spec.subDomain,
			Owner: model.DataOwner{
				ID:   fmt.Sprintf("own-%03d", i+1),
				Name: spec.owner,
			},
			Steward: model.DataSteward{
				ID:   fmt.Sprintf("stw-%03d", i+1),
				Name: spec.steward,
			},
			Maturity:       spec.maturity,
			Lifecycle:      model.LifecycleActive,
			Classification: spec.classification,
			LegalGround:    "Legitimate interest",
			CIARating:      "C2-I2-A2",
			Tags:           spec.tags,
			Metrics: model.DatasetMetrics{
				QualityScore:  spec.quality,
				Completeness:  spec.quality,
				Accuracy:      90,
				Timeliness:    95,
				UsageCount:    spec.usage,
				AverageRating: spec.rating,
			},
			ElementCount: spec.elements,
			CreatedAt:    updated.AddDate(-1, 0, 0),
			UpdatedAt:    updated,
		}
	}

	datasets[0].Preview = &model.DatasetPreview{
		Columns: []model.PreviewColumn{
			{Name: "cust_id", BusinessName: "Customer ID", DataType: "string"},
			{Name: "full_name", BusinessName: "Full Name", DataType: "string"},
			{Name: "segment", BusinessName: "Segment", DataType: "string"},
		},
		SampleData: [][]string{
			{"C-10001", "J. van den Berg", "Retail"},
			{"C-10002", "A. de Groot", "Private"},
			{"C-10003", "M. Willems", "Retail"},
		},
		RowCount: 1_240_000,
	}

	datasets[0].RelatedDatasets = []model.RelatedDataset{
		{ID: "ds-002", Name: "Transaction History", RelationshipType: "derived", SimilarityScore: 0.82},
		{ID: "ds-010", Name: "Customer Churn Predictions", RelationshipType: "linked", SimilarityScore: 0.64},
	}

	datasets[1].Ratings = []model.DatasetRating{
		{
			ID:        "rt-001",
			UserID:    "pdevries",
			UserName:  "Pieter de Vries",
			Rating:    5,
			Comment:   "Merchant enrichment is excellent and the refresh is reliable.",
			CreatedAt: fixtureSeed.AddDate(0, 0, -10),
		},
		{
			ID:        "rt-002",
			UserID:    "esmit",
			UserName:  "Emma Smit",
			Rating:    4,
			Comment:   "Solid coverage, though weekend batches occasionally lag.",
			CreatedAt: fixtureSeed.AddDate(0, 0, -3),
		},
	}

	return datasets
}

// FixtureOrganizations builds the demo organization directory. Names match
// the business lines on the fixture datasets so organization filtering works.
func FixtureOrganizations() []model.Organization {
	datasets := FixtureDatasets()

	byLine := make(map[string][]string)
	for _, d := range datasets {
		byLine[d.BusinessLine] = append(byLine[d.BusinessLine], d.ID)
	}

	specs := []struct {
		id          string
		name        string
		description string
	}{
		{"org-retail", "Retail Banking", "Consumer banking products and the branch network."},
		{"org-mortgages", "Mortgages", "Residential and commercial mortgage lending."},
		{"org-risk", "Risk & Compliance", "Enterprise risk management and regulatory affairs."},
		{"org-marketing", "Marketing", "Campaign management and customer analytics."},
		{"org-operations", "Operations", "Payments infrastructure and channel operations."},
	}

	orgs := make([]model.Organization, len(specs))
	for i, spec := range specs {
		ids := byLine[spec.name]
		orgs[i] = model.Organization{
			ID:          spec.id,
			Name:        spec.name,
			Description: spec.description,
			Website:     "https://datamarketplace.local/" + spec.id,
			DatasetIDs:  ids,
			Verified:    true,
			CreatedAt:   fixtureSeed.AddDate(-2, 0, 0),
			Metrics: model.OrganizationMetrics{
				DatasetCount:         len(ids),
				AverageDatasetRating: 4.0,
				ActiveUsers:          25 * (i + 1),
			},
		}
	}

	return orgs
}

// NewFixtureCatalog wires the standard demo fixture set into a memory catalog.
func NewFixtureCatalog() *MemoryCatalog {
	return NewMemoryCatalog(FixtureDatasets(), FixtureOrganizations(), FixtureUser)
}
