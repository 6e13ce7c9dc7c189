package engine

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/studiowebux/crateview/internal/types"
)

// SummarySection is one list on the summary screen
type SummarySection int

const (
	SectionJustUpdated SummarySection = iota
	SectionMostDownloaded
	SectionNewCrates
	SectionMostRecentlyDownloaded
	SectionPopularKeywords
	SectionPopularCategories
	numSections
)

func (s SummarySection) String() string {
	switch s {
	case SectionJustUpdated:
		return "Just Updated"
	case SectionMostDownloaded:
		return "Most Downloaded"
	case SectionNewCrates:
		return "New Crates"
	case SectionMostRecentlyDownloaded:
		return "Most Recently Downloaded"
	case SectionPopularKeywords:
		return "Popular Keywords"
	case SectionPopularCategories:
		return "Popular Categories"
	}
	return "?"
}

// Sections lists the summary sections in cycle order
func Sections() []SummarySection {
	out := make([]SummarySection, 0, numSections)
	for s := SummarySection(0); s < numSections; s++ {
		out = append(out, s)
	}
	return out
}

func (s SummarySection) step(delta int) SummarySection {
	n := int(numSections)
	return SummarySection(((int(s)+delta)%n + n) % n)
}

// SummaryItem is one row of a summary section. Crate is set for the crate
// sections; Query is what SubmitSearch searches for.
type SummaryItem struct {
	Label  string
	Detail string
	Query  string
	Crate  *types.Crate
}

// SummaryItems flattens a section of the summary into rows
func SummaryItems(sum *types.Summary, section SummarySection) []SummaryItem {
	if sum == nil {
		return nil
	}

	crateItems := func(crates []types.Crate, detail func(types.Crate) string) []SummaryItem {
		items := make([]SummaryItem, len(crates))
		for i := range crates {
			c := crates[i]
			items[i] = SummaryItem{Label: c.Name, Detail: detail(c), Query: c.Name, Crate: &c}
		}
		return items
	}

	switch section {
	case SectionJustUpdated:
		return crateItems(sum.JustUpdated, func(c types.Crate) string {
			return "v" + c.MaxVersion
		})
	case SectionMostDownloaded:
		return crateItems(sum.MostDownloaded, func(c types.Crate) string {
			return humanize.Comma(int64(c.Downloads))
		})
	case SectionNewCrates:
		return crateItems(sum.NewCrates, func(c types.Crate) string {
			return "v" + c.MaxVersion
		})
	case SectionMostRecentlyDownloaded:
		return crateItems(sum.MostRecentlyDownloaded, func(c types.Crate) string {
			return humanize.Comma(int64(c.RecentDownloads))
		})
	case SectionPopularKeywords:
		items := make([]SummaryItem, len(sum.PopularKeywords))
		for i, k := range sum.PopularKeywords {
			items[i] = SummaryItem{
				Label:  k.Keyword,
				Detail: fmt.Sprintf("%s crates", humanize.Comma(int64(k.CratesCnt))),
				Query:  k.Keyword,
			}
		}
		return items
	case SectionPopularCategories:
		items := make([]SummaryItem, len(sum.PopularCategories))
		for i, c := range sum.PopularCategories {
			items[i] = SummaryItem{
				Label:  c.Category,
				Detail: fmt.Sprintf("%s crates", humanize.Comma(int64(c.CratesCnt))),
				Query:  c.Slug,
			}
		}
		return items
	}
	return nil
}
