package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/docforge/docforge/block"
)

var extractJSON bool

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "List the current document's blocks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		blocks, err := s.Blocks()
		if err != nil {
			return err
		}
		if extractJSON {
			return writeJSON(blocks)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Seq", "Kind", "Locator", "Style", "Text")
		for _, b := range blocks {
			var locator, style, text string
			switch v := b.(type) {
			case *block.Paragraph:
				locator = "p " + strconv.Itoa(v.Index)
				style, text = v.Style, v.Text
			case *block.Heading:
				locator = fmt.Sprintf("p %d (h%d)", v.Index, v.Level)
				style, text = v.Style, v.Text
			case *block.TableMeta:
				locator = fmt.Sprintf("tbl %d (%dx%d)", v.Index, v.Rows, v.Cols)
				style = v.Style
			case *block.TableCell:
				locator = fmt.Sprintf("tbl %d [%d,%d]", v.Table, v.Row, v.Col)
				if v.RowSpan > 1 || v.ColSpan > 1 {
					locator += fmt.Sprintf(" span %dx%d", v.RowSpan, v.ColSpan)
				}
				style, text = v.Style, v.Text
			}
			if err := table.Append([]string{
				strconv.Itoa(b.Seq()), b.Kind().String(), locator, style, truncate(text, 60),
			}); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find text in the current document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		res, err := s.SearchText(args[0])
		if err != nil {
			return err
		}
		if res.Total == 0 {
			fmt.Println("No matches.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Where", "Count", "Excerpt")
		for _, hit := range res.Hits {
			where := ""
			if hit.Paragraph != nil {
				where = "p " + strconv.Itoa(*hit.Paragraph)
			} else {
				where = fmt.Sprintf("tbl %d [%d,%d]", hit.Cell.Table, hit.Cell.Row, hit.Cell.Col)
			}
			if err := table.Append([]string{where, strconv.Itoa(hit.Count), hit.Excerpt}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		fmt.Printf("%d match(es)\n", res.Total)
		return nil
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "emit blocks as JSON")
}
