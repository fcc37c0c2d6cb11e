package i18n

import (
	"reflect"
	"strings"
	"testing"
)

func TestInventory(t *testing.T) {
	table := Table{
		"text-3-0":          "a",
		"text-3-2":          "b",
		"text-3-1":          "c",
		"text-5-0":          "d",
		"easyread-text-3-0": "skip",
		"img-3-0":           "skip",
	}

	got := Inventory(table)
	want := []PageInfo{
		{Page: 3, Count: 3, MinIndex: 0, MaxIndex: 2},
		{Page: 5, Count: 1, MinIndex: 0, MaxIndex: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Inventory = %v, want %v", got, want)
	}
}

func TestPageRanges(t *testing.T) {
	pages := []PageInfo{
		{Page: 1}, {Page: 2}, {Page: 3}, {Page: 7}, {Page: 9}, {Page: 10},
	}
	got := PageRanges(pages)
	want := [][2]int{{1, 3}, {7, 7}, {9, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PageRanges = %v, want %v", got, want)
	}
}

func TestFormatInventory(t *testing.T) {
	table := Table{"text-4-0": "a", "text-4-1": "b"}
	out := FormatInventory(Inventory(table))

	for _, fragment := range []string{
		"Page  4:  2 strings (text-4-0-1)",
		"Total: 1 pages, 2 text strings",
		"manualkit translate 4",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("FormatInventory output missing %q:\n%s", fragment, out)
		}
	}
}

func TestFormatInventory_Empty(t *testing.T) {
	out := FormatInventory(nil)
	if !strings.Contains(out, "No text strings found") {
		t.Errorf("Unexpected empty-inventory output: %s", out)
	}
}
