// Package dashboard holds the fixed datasets behind the data contracts,
// compliance and publishing views. The data is a placeholder; nothing here
// talks to the backend or persists edits.
package dashboard

// Contract is one data contract row of the SLA dashboard.
type Contract struct {
	ID         string
	Name       string
	Dataset    string
	Owner      string
	SLA        string
	Freshness  string
	Status     string
	Violations int
}

// Policy is one compliance rule, either a retention or an access policy.
type Policy struct {
	ID           string
	Name         string
	Kind         string // "retention" or "access"
	Scope        string
	Rule         string
	Status       string
	LastReviewed string
}

// Destination is one publishing target for curated metadata.
type Destination struct {
	ID            string
	Name          string
	Kind          string
	Target        string
	Schedule      string
	LastPublished string
	Status        string
}

// Contract and policy statuses used by the fixtures.
const (
	StatusHealthy  = "healthy"
	StatusAtRisk   = "at_risk"
	StatusBreached = "breached"
	StatusActive   = "active"
	StatusDraft    = "draft"
	StatusPaused   = "paused"
)

var contracts = []Contract{
	{ID: "dc-001", Name: "Orders freshness", Dataset: "sales.orders", Owner: "data-platform", SLA: "hourly", Freshness: "23m", Status: StatusHealthy},
	{ID: "dc-002", Name: "Customer profile completeness", Dataset: "crm.customers", Owner: "crm-team", SLA: "daily", Freshness: "6h", Status: StatusHealthy},
	{ID: "dc-003", Name: "Payments reconciliation", Dataset: "finance.payments", Owner: "finance-eng", SLA: "hourly", Freshness: "4h", Status: StatusBreached, Violations: 3},
	{ID: "dc-004", Name: "Inventory snapshots", Dataset: "supply.inventory", Owner: "supply-chain", SLA: "daily", Freshness: "22h", Status: StatusAtRisk, Violations: 1},
	{ID: "dc-005", Name: "Clickstream landing", Dataset: "web.events_raw", Owner: "data-platform", SLA: "15m", Freshness: "9m", Status: StatusHealthy},
}

var policies = []Policy{
	{ID: "pol-001", Name: "PII column retention", Kind: "retention", Scope: "crm.*", Rule: "delete after 365d", Status: StatusActive, LastReviewed: "2026-05-12"},
	{ID: "pol-002", Name: "Raw event expiry", Kind: "retention", Scope: "web.events_raw", Rule: "expire partitions after 90d", Status: StatusActive, LastReviewed: "2026-03-02"},
	{ID: "pol-003", Name: "Finance ledger hold", Kind: "retention", Scope: "finance.*", Rule: "retain 7y", Status: StatusActive, LastReviewed: "2026-01-20"},
	{ID: "pol-004", Name: "Analyst read access", Kind: "access", Scope: "sales.*", Rule: "group:analysts roles/bigquery.dataViewer", Status: StatusActive, LastReviewed: "2026-06-30"},
	{ID: "pol-005", Name: "Contractor masking", Kind: "access", Scope: "crm.customers", Rule: "mask email, phone for group:contractors", Status: StatusDraft, LastReviewed: "2026-07-15"},
}

var destinations = []Destination{
	{ID: "pub-001", Name: "Catalog sync", Kind: "catalog", Target: "dataplex-catalog", Schedule: "on accept", LastPublished: "2026-08-29 14:02", Status: StatusActive},
	{ID: "pub-002", Name: "Docs portal export", Kind: "static-site", Target: "gs://docs-portal/metadata", Schedule: "nightly", LastPublished: "2026-08-30 02:00", Status: StatusActive},
	{ID: "pub-003", Name: "Slack announcements", Kind: "webhook", Target: "#data-announcements", Schedule: "on accept", LastPublished: "2026-08-28 09:41", Status: StatusPaused},
	{ID: "pub-004", Name: "Warehouse labels", Kind: "bigquery", Target: "table and column labels", Schedule: "hourly", LastPublished: "2026-08-30 07:00", Status: StatusActive},
}

// Contracts returns the SLA dashboard rows.
func Contracts() []Contract {
	out := make([]Contract, len(contracts))
	copy(out, contracts)
	return out
}

// Policies returns the compliance rows.
func Policies() []Policy {
	out := make([]Policy, len(policies))
	copy(out, policies)
	return out
}

// Destinations returns the publishing rows.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// ContractsByStatus narrows the contract rows to one status. An empty
// status returns everything.
func ContractsByStatus(status string) []Contract {
	if status == "" {
		return Contracts()
	}
	var out []Contract
	for _, c := range contracts {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// PoliciesByKind narrows the compliance rows to "retention" or "access".
// An empty kind returns everything.
func PoliciesByKind(kind string) []Policy {
	if kind == "" {
		return Policies()
	}
	var out []Policy
	for _, p := range policies {
		if p.Kind == kind {
			out = append(out, p)
		}
	}
	return out
}
