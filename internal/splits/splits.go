// Package splits extracts split statistics from baseball-reference tables.
//
// Pages are expected to be sanitized already (see fetch.Sanitize) so that
// tables shipped inside HTML comments are part of the document. Lookups are
// best effort: a missing table or row is reported as "not found" rather than
// as an error, and callers skip the entity.
package splits

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table ids, row labels and stat keys used on baseball-reference split pages.
const (
	TableByInning    = "innng"
	LabelFirstInning = "1st inning"
	StatERA          = "earned_run_avg"
)

// Parse builds a document tree from sanitized HTML.
func Parse(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// FindTable returns the first table whose id attribute equals id.
func FindTable(doc *goquery.Document, id string) (*goquery.Selection, bool) {
	table := doc.Find(`table[id="` + id + `"]`).First()
	return table, table.Length() > 0
}

// FindRow locates table tableID and returns the first row whose header cell
// text equals rowLabel exactly. Rows are scanned in document order and the
// scan stops at the first match; later rows with the same label are ignored.
//
// The row's td cells are projected by their data-stat attribute, in cell
// order. Cells without data-stat are skipped. Values are not converted.
func FindRow(doc *goquery.Document, tableID, rowLabel string) (*Record, bool) {
	table, ok := FindTable(doc, tableID)
	if !ok {
		return nil, false
	}

	var match *goquery.Selection
	table.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		th := tr.Find("th").First()
		if th.Length() == 0 || th.Text() != rowLabel {
			return true
		}
		match = tr
		return false
	})
	if match == nil {
		return nil, false
	}

	return projectRow(match), true
}

// ExtractRow parses html and calls FindRow.
func ExtractRow(html, tableID, rowLabel string) (*Record, bool) {
	doc, err := Parse(html)
	if err != nil {
		return nil, false
	}
	return FindRow(doc, tableID, rowLabel)
}

func projectRow(tr *goquery.Selection) *Record {
	stats := make([]Stat, 0, 32)
	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		key, ok := td.Attr("data-stat")
		if !ok {
			return
		}
		stats = append(stats, Stat{Key: key, Value: td.Text()})
	})
	return &Record{stats: stats}
}
