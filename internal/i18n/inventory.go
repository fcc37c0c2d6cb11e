package i18n

import (
	"fmt"
	"sort"
)

// PageInfo summarizes the text entries present for one page.
type PageInfo struct {
	Page     int
	Count    int
	MinIndex int
	MaxIndex int
}

// Inventory lists the pages with text entries in a table, in page order.
func Inventory(table Table) []PageInfo {
	byPage := map[int][]int{}
	for raw := range table {
		key, ok := ParseKey(raw)
		if !ok || key.Kind != KindText {
			continue
		}
		byPage[key.Page] = append(byPage[key.Page], key.Index)
	}

	pages := make([]PageInfo, 0, len(byPage))
	for page, indexes := range byPage {
		sort.Ints(indexes)
		pages = append(pages, PageInfo{
			Page:     page,
			Count:    len(indexes),
			MinIndex: indexes[0],
			MaxIndex: indexes[len(indexes)-1],
		})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })
	return pages
}

// PageRanges groups consecutive page numbers into [start, end] runs,
// used to suggest translate command invocations.
func PageRanges(pages []PageInfo) [][2]int {
	var ranges [][2]int
	for _, info := range pages {
		if n := len(ranges); n > 0 && ranges[n-1][1]+1 == info.Page {
			ranges[n-1][1] = info.Page
			continue
		}
		ranges = append(ranges, [2]int{info.Page, info.Page})
	}
	return ranges
}

// FormatInventory renders the inventory report printed by the pages command.
func FormatInventory(pages []PageInfo) string {
	if len(pages) == 0 {
		return "No text strings found matching pattern text-<page>-<index>\n"
	}

	out := "Available pages and text strings:\n"
	total := 0
	for _, info := range pages {
		total += info.Count
		span := fmt.Sprintf("%d-%d", info.MinIndex, info.MaxIndex)
		if info.Count == 1 {
			span = fmt.Sprintf("%d", info.MinIndex)
		}
		out += fmt.Sprintf("Page %2d: %2d strings (text-%d-%s)\n", info.Page, info.Count, info.Page, span)
	}
	out += fmt.Sprintf("Total: %d pages, %d text strings\n", len(pages), total)

	out += "\nSuggested translate commands:\n"
	for _, r := range PageRanges(pages) {
		if r[0] == r[1] {
			out += fmt.Sprintf("manualkit translate %d\n", r[0])
		} else {
			out += fmt.Sprintf("manualkit translate %d %d\n", r[0], r[1])
		}
	}
	first, last := pages[0].Page, pages[len(pages)-1].Page
	out += fmt.Sprintf("\n# All pages at once:\nmanualkit translate %d %d\n", first, last)
	return out
}
