package pricing

import "strings"

// ExemptionList decides freight exemption by matching client names
// against an allow-list of known-exempt accounts. The list is injected
// from configuration and re-evaluated on every grand-total computation,
// so edits apply retroactively to not-yet-finalized quotations.
type ExemptionList struct {
	keywords []string
}

// NewExemptionList builds an exemption matcher. Blank entries are dropped.
func NewExemptionList(keywords []string) *ExemptionList {
	list := &ExemptionList{}
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k != "" {
			list.keywords = append(list.keywords, strings.ToUpper(k))
		}
	}
	return list
}

// IsFreightExempt reports whether either client name contains an
// allow-listed account keyword, case-insensitively.
func (l *ExemptionList) IsFreightExempt(legalName, tradeName string) bool {
	legal := strings.ToUpper(legalName)
	trade := strings.ToUpper(tradeName)
	for _, k := range l.keywords {
		if strings.Contains(legal, k) || strings.Contains(trade, k) {
			return true
		}
	}
	return false
}
