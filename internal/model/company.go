// Package model defines the unified data model shared by the fetch units,
// the triangulation engine and the store.
package model

import (
	"strings"
	"time"
)

// VerificationStatus grades how well a company is corroborated across sources.
type VerificationStatus string

const (
	StatusUnverified      VerificationStatus = "unverified"
	StatusSelfReported    VerificationStatus = "self_reported"
	StatusCrossReferenced VerificationStatus = "cross_referenced"
	StatusVerified        VerificationStatus = "verified"
)

// StatusForSourceCount maps provenance-set size to a verification status.
// It is the only way status is ever assigned.
func StatusForSourceCount(n int) VerificationStatus {
	switch {
	case n >= 3:
		return StatusVerified
	case n == 2:
		return StatusCrossReferenced
	case n == 1:
		return StatusSelfReported
	default:
		return StatusUnverified
	}
}

// Company is the merged, deduplicated record for one real-world company.
type Company struct {
	ID        int64  `json:"id,omitempty" db:"id"`
	EntityKey string `json:"entity_key" db:"entity_key"`

	Name             string   `json:"name" db:"name"`
	Website          string   `json:"website,omitempty" db:"website"`
	Sector           string   `json:"sector,omitempty" db:"sector"`
	SubSector        string   `json:"sub_sector,omitempty" db:"sub_sector"`
	BusinessModel    string   `json:"business_model,omitempty" db:"business_model"`
	ShortDescription string   `json:"short_description,omitempty" db:"short_description"`
	LongDescription  string   `json:"long_description,omitempty" db:"long_description"`
	FoundedYear      int      `json:"founded_year,omitempty" db:"founded_year"`
	TeamSize         int      `json:"team_size,omitempty" db:"team_size"`
	Founders         []string `json:"founders,omitempty" db:"founders"`
	Headquarters     string   `json:"headquarters,omitempty" db:"headquarters"`

	LinkedInURL   string `json:"linkedin_url,omitempty" db:"linkedin_url"`
	TwitterURL    string `json:"twitter_url,omitempty" db:"twitter_url"`
	CrunchbaseURL string `json:"crunchbase_url,omitempty" db:"crunchbase_url"`

	// Provenance: every source that contributed, with the page it came from.
	Sources    []string          `json:"sources" db:"sources"`
	SourceURLs map[string]string `json:"source_urls,omitempty" db:"source_urls"`

	VerificationStatus VerificationStatus `json:"verification_status" db:"verification_status"`
	QualityScore       int                `json:"quality_score" db:"quality_score"`

	CACVerified    bool `json:"cac_verified" db:"cac_verified"`
	CBNLicensed    bool `json:"cbn_licensed" db:"cbn_licensed"`
	SECRegistered  bool `json:"sec_registered" db:"sec_registered"`
	NAICOMLicensed bool `json:"naicom_licensed" db:"naicom_licensed"`

	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// HasSource reports whether the named source already contributed.
func (c *Company) HasSource(name string) bool {
	for _, s := range c.Sources {
		if s == name {
			return true
		}
	}
	return false
}

// AddSource records a contributing source and recomputes the verification
// status. Adding a source that is already present is a no-op.
func (c *Company) AddSource(name, url string) {
	if name == "" || c.HasSource(name) {
		return
	}
	c.Sources = append(c.Sources, name)
	if c.SourceURLs == nil {
		c.SourceURLs = make(map[string]string)
	}
	c.SourceURLs[name] = url
	c.VerificationStatus = StatusForSourceCount(len(c.Sources))
}

// MergeFrom folds another observation of the same company into c.
//
//   - long description: prefer strictly longer
//   - short description, website, founded year, team size, social URLs,
//     sector, business model: fill only if empty
//   - sub-sector: fill only if empty (sector intentionally does not share
//     this rule with sub-sector beyond the plain fill above)
//   - founders: ordered union
//   - regulatory flags: OR
//   - provenance: gains every source of other, which may change status
func (c *Company) MergeFrom(other *Company) {
	if other == nil {
		return
	}

	if other.LongDescription != "" && len(other.LongDescription) > len(c.LongDescription) {
		c.LongDescription = other.LongDescription
	}
	if c.ShortDescription == "" {
		c.ShortDescription = other.ShortDescription
	}

	for _, f := range other.Founders {
		if !containsFold(c.Founders, f) {
			c.Founders = append(c.Founders, f)
		}
	}

	if c.Website == "" {
		c.Website = other.Website
	}
	if c.FoundedYear == 0 {
		c.FoundedYear = other.FoundedYear
	}
	if c.TeamSize == 0 {
		c.TeamSize = other.TeamSize
	}
	if c.LinkedInURL == "" {
		c.LinkedInURL = other.LinkedInURL
	}
	if c.TwitterURL == "" {
		c.TwitterURL = other.TwitterURL
	}
	if c.CrunchbaseURL == "" {
		c.CrunchbaseURL = other.CrunchbaseURL
	}
	if c.Sector == "" {
		c.Sector = other.Sector
	}
	if c.SubSector == "" {
		c.SubSector = other.SubSector
	}
	if c.BusinessModel == "" {
		c.BusinessModel = other.BusinessModel
	}
	if c.Headquarters == "" {
		c.Headquarters = other.Headquarters
	}

	c.CACVerified = c.CACVerified || other.CACVerified
	c.CBNLicensed = c.CBNLicensed || other.CBNLicensed
	c.SECRegistered = c.SECRegistered || other.SECRegistered
	c.NAICOMLicensed = c.NAICOMLicensed || other.NAICOMLicensed

	for _, src := range other.Sources {
		c.AddSource(src, other.SourceURLs[src])
	}
}

func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}
