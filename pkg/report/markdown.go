// Package report renders session ledgers and the quick reference as
// Markdown documents.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/charlie0129/unitconv/pkg/catalog"
	"github.com/charlie0129/unitconv/pkg/ledger"
)

// WriteLedger writes a report of one session: its recent conversions
// (newest first, at most recent of them), the full history and the
// favorites.
func WriteLedger(w io.Writer, snap ledger.Snapshot, recent int) error {
	md := markdown.NewMarkdown(w)

	md.H1("Unit Converter Session")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Theme", string(snap.Theme)},
			{"Conversions", strconv.Itoa(len(snap.History))},
			{"Favorites", strconv.Itoa(len(snap.Favorites))},
		},
	})
	md.PlainText("")

	md.H2("Recent Conversions")
	md.PlainText("")
	writeList(md, snap.RecentHistory(recent), "No conversions yet.")

	md.H2("Conversion History")
	md.PlainText("")
	writeList(md, snap.History, "No conversions yet.")

	md.H2("Favorites")
	md.PlainText("")
	if len(snap.Favorites) == 0 {
		md.Tip("Add a conversion to your favorites to see it here.")
		md.PlainText("")
	} else {
		md.BulletList(snap.Favorites...)
		md.PlainText("")
	}

	return md.Build()
}

// WriteHistory writes entries as a numbered list under a heading.
func WriteHistory(w io.Writer, entries []string) error {
	md := markdown.NewMarkdown(w)
	md.H1("Conversion History")
	md.PlainText("")
	writeList(md, entries, "No conversions yet.")
	return md.Build()
}

// WriteReference writes the quick reference of a category together with the
// conversions the catalog offers for it.
func WriteReference(w io.Writer, cat *catalog.Catalog, category catalog.Category) error {
	convs, err := cat.Conversions(category)
	if err != nil {
		return err
	}

	md := markdown.NewMarkdown(w)
	md.H1(fmt.Sprintf("%s %s Quick Reference", category.Icon(), category))
	md.PlainText("")
	md.BulletList(catalog.QuickReference(category)...)
	md.PlainText("")

	md.H2("Conversions")
	md.PlainText("")
	rows := make([][]string, len(convs))
	for i, c := range convs {
		rows[i] = []string{"`" + c.Key + "`", c.Label, c.From, c.To}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Key", "Conversion", "From", "To"},
		Rows:   rows,
	})
	md.PlainText("")

	return md.Build()
}

func writeList(md *markdown.Markdown, entries []string, empty string) {
	if len(entries) == 0 {
		md.PlainText(empty)
		md.PlainText("")
		return
	}
	md.OrderedList(entries...)
	md.PlainText("")
}
