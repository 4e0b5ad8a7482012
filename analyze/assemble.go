package analyze

import "github.com/chaffhq/chaff"

// Assemble merges one domain's pages, duplicate groups, and template count
// into the final result shape. Pure aggregation; no new policy decisions.
func Assemble(domain string, pages []*chaff.Page, groups []chaff.DuplicateGroup, templateCount int) chaff.DomainResult {
	result := chaff.DomainResult{
		Domain:              domain,
		Pages:               make([]chaff.PageResult, 0, len(pages)),
		DuplicateGroupCount: len(groups),
		TemplateCount:       templateCount,
	}

	for _, group := range groups {
		result.FlaggedNodeCount += len(group.Occurrences)
	}

	for _, page := range pages {
		pr := chaff.PageResult{
			URL:        page.URL,
			Status:     page.Status,
			FailReason: page.FailReason,
		}
		if page.Tree != nil {
			pr.Tree = page.Tree
			page.Tree.Walk(func(n *chaff.Node) {
				pr.TotalNodes++
				if n.Duplicate {
					pr.DuplicateNodes++
				}
			})
		}
		result.Pages = append(result.Pages, pr)
	}

	return result
}
