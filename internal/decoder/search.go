package decoder

import (
	"github.com/famomatic/yttui/internal/types"
)

type searchResponse struct {
	EstimatedResults string   `json:"estimatedResults"`
	Refinements      []string `json:"refinements"`
	Contents         struct {
		TwoColumnSearchResultsRenderer *struct {
			PrimaryContents struct {
				SectionListRenderer *struct {
					Contents []renderer `json:"contents"`
					SubMenu  *struct {
						SearchSubMenuRenderer struct {
							Groups []struct {
								SearchFilterGroupRenderer struct {
									Title   Text           `json:"title"`
									Filters []searchFilter `json:"filters"`
								} `json:"searchFilterGroupRenderer"`
							} `json:"groups"`
						} `json:"searchSubMenuRenderer"`
					} `json:"subMenu"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type searchFilter struct {
	SearchFilterRenderer struct {
		Label              Text      `json:"label"`
		Tooltip            string    `json:"tooltip"`
		Status             string    `json:"status"`
		NavigationEndpoint *Endpoint `json:"navigationEndpoint"`
	} `json:"searchFilterRenderer"`
}

// Search decodes the first page of search results. The estimated result
// count, related searches and filters are listed above the results.
func Search(raw []byte) (*Result, error) {
	var resp searchResponse
	if err := decodeJSON(ShapeSearch, raw, &resp); err != nil {
		return nil, err
	}
	cols := resp.Contents.TwoColumnSearchResultsRenderer
	if cols == nil || cols.PrimaryContents.SectionListRenderer == nil {
		return nil, shapeErr(ShapeSearch, "no sectionListRenderer")
	}
	section := cols.PrimaryContents.SectionListRenderer

	b := newBuilder(ShapeSearch)
	if resp.EstimatedResults != "" {
		b.push(types.Item{Title: spaced(types.Plain(resp.EstimatedResults + " results"))})
	}

	if len(resp.Refinements) > 0 {
		b.push(types.Item{Title: underlined("Search suggestions")})
		for _, r := range resp.Refinements {
			b.push(types.Item{
				Title:  types.Block{{types.Plain(r)}},
				Detail: types.Block{{types.Plain("Search for "), types.Bold(r)}},
				Node:   types.SearchNode(r, nil),
			})
		}
		b.push(blank())
	}

	if section.SubMenu != nil {
		b.push(types.Item{Title: underlined("Filters")})
		for _, g := range section.SubMenu.SearchSubMenuRenderer.Groups {
			b.push(types.Item{Title: underlined(g.SearchFilterGroupRenderer.Title.String())})
			for _, f := range g.SearchFilterGroupRenderer.Filters {
				b.push(f.item())
			}
		}
		b.push(blank())
	}

	if err := b.addAll(section.Contents); err != nil {
		return nil, err
	}
	return b.result(), nil
}

func (f searchFilter) item() types.Item {
	r := f.SearchFilterRenderer
	span := types.Plain(r.Label.String())
	switch r.Status {
	case "FILTER_STATUS_SELECTED":
		span.Bold = true
	case "FILTER_STATUS_DISABLED":
		span = types.Colored(r.Label.String(), mutedColor)
	}
	item := types.Item{
		Title:  types.Block{{span}},
		Detail: types.Lines(r.Tooltip),
	}
	if r.NavigationEndpoint != nil && r.NavigationEndpoint.SearchEndpoint != nil {
		se := r.NavigationEndpoint.SearchEndpoint
		item.Node = types.SearchNode(se.Query, types.StringPtr(se.Params))
	}
	return item
}

// SearchContinuation decodes more search results.
func SearchContinuation(raw []byte) (*Result, error) {
	return continuation(ShapeSearchContinuation, raw)
}
