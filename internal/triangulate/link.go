package triangulate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lemina/intel-cli/internal/model"
)

// extractSubRecords pulls funding rounds, updates and metrics out of the raw
// aggregate in the same deterministic source order as deduplication. Their
// company references are still weak display names at this point.
func (t *Triangulator) extractSubRecords(order []string, bySource map[string][]model.RawRecord, res *Result) {
	for _, source := range order {
		for _, rec := range bySource[source] {
			name := rec.Str("name")
			if name == "" {
				continue
			}

			src := rec.Source()
			if src == "" {
				src = source
			}

			if funding := rec.Map("funding"); funding != nil {
				disclosed := true
				if b, ok := funding["is_disclosed"].(bool); ok {
					disclosed = b
				}
				fr := model.FundingRound{
					CompanyName:            name,
					RoundType:              funding.Str("round_type"),
					RoundName:              funding.Str("round_name"),
					Amount:                 floatOf(funding["amount"]),
					Currency:               funding.Str("currency"),
					AmountUSD:              floatOf(funding["amount_usd"]),
					IsDisclosed:            disclosed,
					LeadInvestors:          funding.StrList("lead_investors"),
					ParticipatingInvestors: funding.StrList("participating_investors"),
					Source:                 src,
					SourceURL:              rec.SourceURL(),
				}
				if fr.RoundType == "" {
					fr.RoundType = "seed"
				}
				if fr.Currency == "" {
					fr.Currency = "usd"
				}
				res.FundingRounds = append(res.FundingRounds, fr)
			}

			updateType := model.UpdateNews
			if rec.Map("funding") != nil {
				updateType = model.UpdateFunding
			}
			res.Updates = append(res.Updates, model.CompanyUpdate{
				CompanyName: name,
				UpdateType:  updateType,
				Title:       fmt.Sprintf("%s - %s article", name, src),
				Description: rec.Str("short_description"),
				SourceName:  src,
				SourceURL:   rec.SourceURL(),
			})

			rawMetrics, _ := rec["metrics"].([]any)
			for _, m := range rawMetrics {
				mm, ok := m.(map[string]any)
				if !ok {
					continue
				}
				raw := model.RawRecord(mm)
				res.Metrics = append(res.Metrics, model.Metric{
					CompanyName:     name,
					MetricType:      raw.Str("metric_type"),
					Value:           floatOf(raw["value"]),
					Currency:        raw.Str("currency"),
					Unit:            raw.Str("unit"),
					ConfidenceLevel: "low",
					Source:          src,
					SourceURL:       rec.SourceURL(),
				})
			}

			rawLicenses, _ := rec["regulatory"].([]any)
			for _, l := range rawLicenses {
				lm, ok := l.(map[string]any)
				if !ok {
					continue
				}
				raw := model.RawRecord(lm)
				if raw.Str("license_type") == "" {
					continue
				}
				status := raw.Str("status")
				if status == "" {
					status = "active"
				}
				verified, _ := raw["verified"].(bool)
				res.Regulatory = append(res.Regulatory, model.RegulatoryInfo{
					CompanyName:        name,
					LicenseType:        raw.Str("license_type"),
					LicenseNumber:      raw.Str("license_number"),
					Status:             status,
					Verified:           verified,
					VerificationSource: src,
				})
			}
		}
	}
}

// link re-resolves every sub-record's weak name reference against the final
// entity set using the same matching rule as deduplication. Records that
// match nothing keep an empty key and are counted, never discarded.
func (t *Triangulator) link(entries []*entry, res *Result) {
	resolve := func(name string) string {
		if e := bestNameMatch(entries, NormalizeName(name)); e != nil {
			return e.company.EntityKey
		}
		return ""
	}

	for i := range res.FundingRounds {
		key := resolve(res.FundingRounds[i].CompanyName)
		res.FundingRounds[i].CompanyKey = key
		if key == "" {
			res.Unlinked++
			zap.L().Warn("triangulate: unlinked funding round",
				zap.String("company_name", res.FundingRounds[i].CompanyName),
			)
		}
	}
	for i := range res.Updates {
		key := resolve(res.Updates[i].CompanyName)
		res.Updates[i].CompanyKey = key
		if key == "" {
			res.Unlinked++
			zap.L().Warn("triangulate: unlinked update",
				zap.String("company_name", res.Updates[i].CompanyName),
			)
		}
	}
	for i := range res.Metrics {
		key := resolve(res.Metrics[i].CompanyName)
		res.Metrics[i].CompanyKey = key
		if key == "" {
			res.Unlinked++
			zap.L().Warn("triangulate: unlinked metric",
				zap.String("company_name", res.Metrics[i].CompanyName),
			)
		}
	}
	for i := range res.Regulatory {
		e := bestNameMatch(entries, NormalizeName(res.Regulatory[i].CompanyName))
		if e == nil {
			res.Unlinked++
			zap.L().Warn("triangulate: unlinked regulatory fact",
				zap.String("company_name", res.Regulatory[i].CompanyName),
			)
			continue
		}
		res.Regulatory[i].CompanyKey = e.company.EntityKey
		applyLicenseFlag(e.company, res.Regulatory[i].LicenseType)
	}
}

// applyLicenseFlag marks the matching regulator flag on the company for an
// attached license. Types are prefixed by regulator (cbn_psp, sec_fund, ...).
func applyLicenseFlag(c *model.Company, licenseType string) {
	switch {
	case strings.HasPrefix(licenseType, "cac"):
		c.CACVerified = true
	case strings.HasPrefix(licenseType, "cbn"):
		c.CBNLicensed = true
	case strings.HasPrefix(licenseType, "sec"):
		c.SECRegistered = true
	case strings.HasPrefix(licenseType, "naicom"):
		c.NAICOMLicensed = true
	}
}

func floatOf(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
