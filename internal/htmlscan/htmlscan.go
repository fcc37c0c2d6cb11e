// Package htmlscan reads the manual's HTML pages: section ids derived
// from filenames, data-id annotated elements, and img tags with their
// accessibility attributes.
package htmlscan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Page is one HTML page of the manual.
type Page struct {
	Path      string
	SectionID string // "26-0" for 26_0_adt.html, "0-0" for index.html
}

// excludedDirs are never scanned for pages.
var excludedDirs = map[string]bool{
	"old":    true,
	"skip":   true,
	"assets": true,
}

// FindPages lists the manual pages in dir: every *_adt.html plus
// index.html, sorted by path. Subdirectories are not searched.
func FindPages(dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading page directory: %w", err)
	}

	var pages []Page
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, "_adt.html") && name != "index.html" {
			continue
		}
		pages = append(pages, Page{
			Path:      filepath.Join(dir, name),
			SectionID: SectionIDFromName(name),
		})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages, nil
}

// SectionIDFromName derives the section id used in i18n keys from a
// page filename. "26_0_adt.html" becomes "26-0"; index.html is the
// cover section "0-0".
func SectionIDFromName(name string) string {
	if name == "index.html" {
		return "0-0"
	}
	base := strings.TrimSuffix(name, ".html")
	base = strings.TrimSuffix(base, "_adt")
	return strings.ReplaceAll(base, "_", "-")
}

// DataIDs returns the data-id attribute of every annotated element in
// the file, in document order.
func DataIDs(path string) ([]string, error) {
	root, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	var ids []string
	walk(root, func(n *html.Node) {
		if id, ok := attr(n, "data-id"); ok && id != "" {
			ids = append(ids, id)
		}
	})
	return ids, nil
}

// Image is an img tag with the attributes alt-text generation cares
// about.
type Image struct {
	Src        string
	DataID     string
	AriaLabel  string
	DataAriaID string
}

// Images returns every img tag in the file, in document order.
func Images(path string) ([]Image, error) {
	root, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	var images []Image
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "img" {
			return
		}
		img := Image{}
		img.Src, _ = attr(n, "src")
		img.DataID, _ = attr(n, "data-id")
		img.AriaLabel, _ = attr(n, "aria-label")
		img.DataAriaID, _ = attr(n, "data-aria-id")
		images = append(images, img)
	})
	return images, nil
}

// redundantAriaLabel reports whether an aria-label merely restates that
// the element is an image. Those labels duplicate the i18n alt text and
// confuse screen readers.
func redundantAriaLabel(label string) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	return strings.HasPrefix(lower, "imagen") ||
		strings.HasPrefix(lower, "image") ||
		strings.HasPrefix(lower, "ilustraci")
}

// StripImageAttrs removes redundant aria-label and data-aria-id
// attributes from img tags whose data-id the described predicate
// accepts, rewriting the file in place. It returns the number of
// attributes removed.
func StripImageAttrs(path string, described func(dataID string) bool) (int, error) {
	root, err := parseFile(path)
	if err != nil {
		return 0, err
	}

	removed := 0
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "img" {
			return
		}
		dataID, _ := attr(n, "data-id")
		if dataID == "" || !described(dataID) {
			return
		}
		if label, ok := attr(n, "aria-label"); ok && redundantAriaLabel(label) {
			removeAttr(n, "aria-label")
			removed++
		}
		if _, ok := attr(n, "data-aria-id"); ok {
			removeAttr(n, "data-aria-id")
			removed++
		}
	})

	if removed == 0 {
		return 0, nil
	}

	var buf strings.Builder
	if err := html.Render(&buf, root); err != nil {
		return 0, fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(buf.String()), 0644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return removed, nil
}

func parseFile(path string) (*html.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	root, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, name string) (string, bool) {
	if n.Type != html.ElementNode {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func removeAttr(n *html.Node, name string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Key != name {
			attrs = append(attrs, a)
		}
	}
	n.Attr = attrs
}
