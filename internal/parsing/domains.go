package parsing

import "strings"

// Domain keyword tables. The strict table demands two keyword hits per
// domain and returns every qualifying domain; the loose table accepts
// a single hit but caps the result at three domains.
var strictDomainKeywords = map[string][]string{
	"technology":    {"software", "tech", "it", "programming", "development", "engineering"},
	"finance":       {"finance", "banking", "investment", "trading", "financial"},
	"healthcare":    {"healthcare", "medical", "hospital", "pharmaceutical", "clinical"},
	"education":     {"education", "teaching", "academic", "university", "school"},
	"retail":        {"retail", "sales", "customer", "commerce", "marketing"},
	"manufacturing": {"manufacturing", "production", "operations", "supply chain"},
	"consulting":    {"consulting", "advisory", "strategy", "management"},
	"government":    {"government", "public", "policy", "administration"},
	"nonprofit":     {"nonprofit", "ngo", "charity", "social", "community"},
}

var looseDomainKeywords = map[string][]string{
	"automobile":    {"automotive", "car", "vehicle", "ford", "toyota", "bmw", "honda", "nissan", "mercedes", "audi"},
	"e-commerce":    {"ecommerce", "amazon", "ebay", "shopify", "online retail", "marketplace", "digital commerce"},
	"government":    {"government", "public sector", "federal", "state", "municipal", "civil service", "policy"},
	"defense":       {"defense", "military", "army", "navy", "air force", "security", "homeland security"},
	"healthcare":    {"healthcare", "medical", "hospital", "pharmaceutical", "clinical", "patient care", "nursing"},
	"banking":       {"bank", "banking", "financial services", "credit", "loan", "mortgage", "investment banking"},
	"finance":       {"finance", "investment", "trading", "portfolio", "hedge fund", "private equity", "fintech"},
	"technology":    {"tech", "software", "it", "programming", "development", "artificial intelligence", "machine learning"},
	"education":     {"education", "teaching", "academic", "university", "school", "training", "curriculum"},
	"retail":        {"retail", "sales", "customer service", "merchandising", "store operations", "fashion"},
	"manufacturing": {"manufacturing", "production", "operations", "supply chain", "quality control", "lean"},
	"consulting":    {"consulting", "advisory", "strategy", "management consulting", "business consulting"},
}

// domainOrder fixes iteration order so repeated parses of the same
// text yield the same tag ordering.
var (
	strictDomainOrder = []string{
		"technology", "finance", "healthcare", "education", "retail",
		"manufacturing", "consulting", "government", "nonprofit",
	}
	looseDomainOrder = []string{
		"automobile", "e-commerce", "government", "defense", "healthcare",
		"banking", "finance", "technology", "education", "retail",
		"manufacturing", "consulting",
	}
)

// extractDomains tags the text with industry domains. A domain
// qualifies when at least threshold of its keywords occur; limit caps
// the list length, 0 meaning unlimited.
func extractDomains(text string, keywords map[string][]string, order []string, threshold, limit int) []string {
	lower := strings.ToLower(text)
	domains := []string{}
	for _, domain := range order {
		hits := 0
		for _, kw := range keywords[domain] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits >= threshold {
			domains = append(domains, domain)
			if limit > 0 && len(domains) >= limit {
				break
			}
		}
	}
	return domains
}
