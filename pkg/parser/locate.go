package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
)

// ErrTableNotFound is returned when no strategy finds a data table on the page
var ErrTableNotFound = errors.New("data table not found on page or in comments")

// LocateTier records which strategy found a table
type LocateTier int

const (
	// TierDirect is a table with a candidate id in the live document
	TierDirect LocateTier = iota + 1
	// TierCommentByID is a table with a candidate id inside an HTML comment
	TierCommentByID
	// TierCommentAny is the first table found inside any HTML comment
	TierCommentAny
)

func (t LocateTier) String() string {
	switch t {
	case TierDirect:
		return "direct"
	case TierCommentByID:
		return "comment-id"
	case TierCommentAny:
		return "comment-any"
	default:
		return "unknown"
	}
}

// Table is a located data table. It belongs to one page's extraction and is
// not shared across pages.
type Table struct {
	Selection *goquery.Selection
	ID        string
	Tier      LocateTier
}

// LocateTable finds the data table on a sports-reference page.
// The site renders some tables inside HTML comments, so the lookup runs in order:
//  1. a table whose id is a candidate, candidates tried in the given order
//  2. the same, searching each comment (document order) for each candidate
//  3. the first table inside any comment, whatever its id
func LocateTable(doc *goquery.Document, candidateIDs []string) (*Table, error) {
	// 1) direct
	for _, id := range candidateIDs {
		if t := findTableByID(doc.Selection, id); t != nil {
			return &Table{Selection: t, ID: id, Tier: TierDirect}, nil
		}
	}

	comments := commentTexts(doc.Nodes)

	// 2) inside comments, by id
	for _, c := range comments {
		for _, id := range candidateIDs {
			if !declaresID(c, id) {
				continue
			}
			fragment, err := ParseFragment(c)
			if err != nil {
				continue
			}
			if t := findTableByID(fragment.Selection, id); t != nil {
				return &Table{Selection: t, ID: id, Tier: TierCommentByID}, nil
			}
		}
	}

	// 3) fallback: first commented table
	for _, c := range comments {
		if !strings.Contains(strings.ToLower(c), "<table") {
			continue
		}
		fragment, err := ParseFragment(c)
		if err != nil {
			continue
		}
		if t := fragment.Find("table").First(); t.Length() > 0 {
			return &Table{Selection: t, ID: t.AttrOr("id", ""), Tier: TierCommentAny}, nil
		}
	}

	return nil, errors.Wrapf(ErrTableNotFound, "candidates %v", candidateIDs)
}

// ParseFragment parses markup taken from a comment into its own document.
// Nothing is shared with the outer document's parse.
func ParseFragment(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, errors.Wrap(err, "parse comment fragment")
	}
	return doc, nil
}

// findTableByID compares the id attribute directly so ids that are not valid
// CSS identifiers still match.
func findTableByID(root *goquery.Selection, id string) *goquery.Selection {
	t := root.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		tid, ok := s.Attr("id")
		return ok && tid == id
	}).First()
	if t.Length() == 0 {
		return nil
	}
	return t
}

func declaresID(markup, id string) bool {
	return strings.Contains(markup, `id="`+id+`"`) || strings.Contains(markup, `id='`+id+`'`)
}

// commentTexts returns the text of every comment node under roots, in document order
func commentTexts(roots []*html.Node) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.CommentNode {
			out = append(out, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range roots {
		walk(n)
	}
	return out
}
