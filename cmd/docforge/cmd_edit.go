package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/edit"
	"github.com/docforge/docforge/session"
)

var (
	editParagraphIdx int
	editTableIdx     int
	editRowIdx       int
	editColIdx       int
	editStyle        string
	editAlign        string
	editPageBreak    bool
)

var editBlockCmd = &cobra.Command{
	Use:   "edit-block <text>",
	Short: "Replace a block's text, keeping its formatting",
	Long: `Replaces the text of one paragraph or table cell. The block's run
formatting is captured first, so passing back the block's current text
reformats in place and any other text keeps the first run's look.

Locate the block with --paragraph, or with --table, --row and --col.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}

		req := edit.BlockEdit{Text: args[0]}
		if cmd.Flags().Changed("paragraph") {
			idx := editParagraphIdx
			req.Paragraph = &idx
		}
		if cmd.Flags().Changed("table") || cmd.Flags().Changed("row") || cmd.Flags().Changed("col") {
			req.Cell = &edit.CellRef{Table: editTableIdx, Row: editRowIdx, Col: editColIdx}
		}
		if cmd.Flags().Changed("style") {
			style := editStyle
			req.Style = &style
		}
		if cmd.Flags().Changed("align") {
			a, ok := block.ParseAlignmentName(editAlign)
			if !ok {
				return fmt.Errorf("unknown alignment %q", editAlign)
			}
			req.Alignment = &a
		}
		if cmd.Flags().Changed("page-break") {
			pb := editPageBreak
			req.PageBreak = &pb
		}
		req.Runs, err = captureRuns(s, req)
		if err != nil {
			return err
		}

		if err := s.EditBlock(req); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Block updated.")
		return nil
	},
}

// captureRuns snapshots the target block's current run formatting from a
// fresh extraction, which is what makes the edit format-preserving.
func captureRuns(s *session.Session, req edit.BlockEdit) ([]block.RunFormat, error) {
	blocks, err := s.Blocks()
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		switch v := b.(type) {
		case *block.Paragraph:
			if req.Paragraph != nil && v.Index == *req.Paragraph {
				return v.Runs, nil
			}
		case *block.Heading:
			if req.Paragraph != nil && v.Index == *req.Paragraph {
				return v.Runs, nil
			}
		case *block.TableCell:
			if req.Cell != nil && v.Table == req.Cell.Table &&
				v.Row == req.Cell.Row && v.Col == req.Cell.Col {
				return v.Runs, nil
			}
		}
	}
	return nil, nil
}

var (
	sectionContent []string
	preserveTitle  bool
	keywordRange   int
)

var replaceSectionCmd = &cobra.Command{
	Use:   "replace-section <title>",
	Short: "Replace a heading-delimited section's paragraphs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		if err := s.ReplaceSection(args[0], sectionContent, preserveTitle); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Section replaced.")
		return nil
	},
}

var replaceKeywordCmd = &cobra.Command{
	Use:   "replace-keyword <keyword>",
	Short: "Replace the paragraph window around a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		if err := s.ReplaceByKeyword(args[0], sectionContent, keywordRange); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Section replaced.")
		return nil
	},
}

var replacePreview bool

var replaceCmd = &cobra.Command{
	Use:   "replace <query> <replacement>",
	Short: "Replace every occurrence of a text",
	Long: `Replaces every occurrence of query. Affected paragraphs are rewritten
as a single run, so character-level formatting inside them is lost. Use
--preview to see what would change without modifying the document.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		res, err := s.SearchAndReplace(args[0], args[1], replacePreview)
		if err != nil {
			return err
		}
		if res.Applied {
			if err := s.Save(); err != nil {
				return err
			}
			fmt.Printf("Replaced %d occurrence(s).\n", res.Total)
			return nil
		}
		fmt.Printf("Would replace %d occurrence(s).\n", res.Total)
		for _, hit := range res.Hits {
			fmt.Printf("  %s\n", hit.Excerpt)
		}
		return nil
	},
}

func init() {
	editBlockCmd.Flags().IntVar(&editParagraphIdx, "paragraph", 0, "top-level paragraph index")
	editBlockCmd.Flags().IntVar(&editTableIdx, "table", 0, "table index")
	editBlockCmd.Flags().IntVar(&editRowIdx, "row", 0, "logical row in the merge grid")
	editBlockCmd.Flags().IntVar(&editColIdx, "col", 0, "logical column in the merge grid")
	editBlockCmd.Flags().StringVar(&editStyle, "style", "", "paragraph style name override")
	editBlockCmd.Flags().StringVar(&editAlign, "align", "", "alignment override (left, center, right, justify)")
	editBlockCmd.Flags().BoolVar(&editPageBreak, "page-break", false, "page-break-before override")

	replaceSectionCmd.Flags().StringArrayVar(&sectionContent, "content", nil, "replacement paragraph (repeatable)")
	replaceSectionCmd.Flags().BoolVar(&preserveTitle, "preserve-title", true, "keep the section's title paragraph")
	replaceKeywordCmd.Flags().StringArrayVar(&sectionContent, "content", nil, "replacement paragraph (repeatable)")
	replaceKeywordCmd.Flags().IntVar(&keywordRange, "range", 2, "paragraphs to replace on each side of the keyword")

	replaceCmd.Flags().BoolVar(&replacePreview, "preview", false, "show matches without modifying the document")
}
