package model

import "time"

// Sub-records reference their company only by display name until linkage
// resolves them against the deduplicated entity set. CompanyKey is filled
// in by the linker; CompanyID by the store.

// FundingRound is a single announced or disclosed raise.
type FundingRound struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	CompanyName string `json:"company_name" db:"company_name"`
	CompanyKey  string `json:"company_key,omitempty" db:"company_key"`
	CompanyID   int64  `json:"company_id,omitempty" db:"company_id"`

	RoundType              string     `json:"round_type" db:"round_type"`
	RoundName              string     `json:"round_name,omitempty" db:"round_name"`
	Amount                 float64    `json:"amount,omitempty" db:"amount"`
	Currency               string     `json:"currency" db:"currency"`
	AmountUSD              float64    `json:"amount_usd,omitempty" db:"amount_usd"`
	IsDisclosed            bool       `json:"is_disclosed" db:"is_disclosed"`
	AnnouncedDate          *time.Time `json:"announced_date,omitempty" db:"announced_date"`
	LeadInvestors          []string   `json:"lead_investors,omitempty" db:"lead_investors"`
	ParticipatingInvestors []string   `json:"participating_investors,omitempty" db:"participating_investors"`

	Source    string `json:"source" db:"source"`
	SourceURL string `json:"source_url,omitempty" db:"source_url"`
}

// Metric is a point-in-time operating metric (users, GMV, revenue, ...).
type Metric struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	CompanyName string `json:"company_name" db:"company_name"`
	CompanyKey  string `json:"company_key,omitempty" db:"company_key"`
	CompanyID   int64  `json:"company_id,omitempty" db:"company_id"`

	MetricType      string     `json:"metric_type" db:"metric_type"`
	Value           float64    `json:"value" db:"value"`
	Currency        string     `json:"currency,omitempty" db:"currency"`
	Unit            string     `json:"unit,omitempty" db:"unit"`
	PeriodType      string     `json:"period_type,omitempty" db:"period_type"`
	PeriodDate      *time.Time `json:"period_date,omitempty" db:"period_date"`
	ConfidenceLevel string     `json:"confidence_level" db:"confidence_level"`

	Source    string `json:"source" db:"source"`
	SourceURL string `json:"source_url,omitempty" db:"source_url"`
}

// RegulatoryInfo is a license or registration fact from a regulator.
type RegulatoryInfo struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	CompanyName string `json:"company_name" db:"company_name"`
	CompanyKey  string `json:"company_key,omitempty" db:"company_key"`
	CompanyID   int64  `json:"company_id,omitempty" db:"company_id"`

	LicenseType        string     `json:"license_type" db:"license_type"`
	LicenseNumber      string     `json:"license_number,omitempty" db:"license_number"`
	Status             string     `json:"status" db:"status"`
	IssueDate          *time.Time `json:"issue_date,omitempty" db:"issue_date"`
	Verified           bool       `json:"verified" db:"verified"`
	VerificationSource string     `json:"verification_source,omitempty" db:"verification_source"`
}

// Update types.
const (
	UpdateFunding = "funding"
	UpdateNews    = "news"
)

// CompanyUpdate is a news-style event attached to a company.
type CompanyUpdate struct {
	ID          int64  `json:"id,omitempty" db:"id"`
	CompanyName string `json:"company_name" db:"company_name"`
	CompanyKey  string `json:"company_key,omitempty" db:"company_key"`
	CompanyID   int64  `json:"company_id,omitempty" db:"company_id"`

	UpdateType  string     `json:"update_type" db:"update_type"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description,omitempty" db:"description"`
	SourceName  string     `json:"source_name" db:"source_name"`
	SourceURL   string     `json:"source_url,omitempty" db:"source_url"`
	UpdateDate  *time.Time `json:"update_date,omitempty" db:"update_date"`
}
