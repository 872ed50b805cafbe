package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docforge/docforge/block"
	"github.com/docforge/docforge/edit"
)

var (
	paraBold      bool
	paraItalic    bool
	paraUnderline bool
	paraFont      string
	paraSize      float64
	paraColor     string
	paraStyle     string
	paraAlign     string
)

var addParagraphCmd = &cobra.Command{
	Use:   "add-paragraph <text>",
	Short: "Append a paragraph to the current document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		opts := edit.ParagraphOptions{
			Bold:      paraBold,
			Italic:    paraItalic,
			Underline: paraUnderline,
			FontName:  paraFont,
			SizePt:    paraSize,
			Color:     paraColor,
			Style:     paraStyle,
		}
		if paraAlign != "" {
			a, ok := block.ParseAlignmentName(paraAlign)
			if !ok {
				return fmt.Errorf("unknown alignment %q", paraAlign)
			}
			opts.Alignment = a
		}
		idx, err := s.AddParagraph(args[0], opts)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Printf("Paragraph %d added.\n", idx)
		return nil
	},
}

var headingLevel int

var addHeadingCmd = &cobra.Command{
	Use:   "add-heading <text>",
	Short: "Append a heading paragraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		idx, err := s.AddHeading(args[0], headingLevel)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Printf("Heading added at paragraph %d.\n", idx)
		return nil
	},
}

var pageBreakCmd = &cobra.Command{
	Use:   "page-break",
	Short: "Append a page break",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		if err := s.AddPageBreak(); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Page break added.")
		return nil
	},
}

var marginTop, marginBottom, marginLeft, marginRight float64

var marginsCmd = &cobra.Command{
	Use:   "margins",
	Short: "Set page margins in centimeters",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		pick := func(name string, v *float64) *float64 {
			if cmd.Flags().Changed(name) {
				return v
			}
			return nil
		}
		err = s.SetPageMargins(
			pick("top", &marginTop), pick("bottom", &marginBottom),
			pick("left", &marginLeft), pick("right", &marginRight),
		)
		if err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Margins updated.")
		return nil
	},
}

var deleteParagraphCmd = &cobra.Command{
	Use:   "delete-paragraph <index>",
	Short: "Delete a paragraph by index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		idx, err := parseInt(args[0])
		if err != nil {
			return err
		}
		if err := s.DeleteParagraph(idx); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Printf("Paragraph %d deleted.\n", idx)
		return nil
	},
}

var deleteRangeCmd = &cobra.Command{
	Use:   "delete-range <paragraph> <start> <end>",
	Short: "Delete a character range from a paragraph",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		idx, err := parseInt(args[0])
		if err != nil {
			return err
		}
		start, err := parseInt(args[1])
		if err != nil {
			return err
		}
		end, err := parseInt(args[2])
		if err != nil {
			return err
		}
		if err := s.DeleteTextRange(idx, start, end); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Range deleted.")
		return nil
	},
}

func parseInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return n, nil
}

func init() {
	addParagraphCmd.Flags().BoolVar(&paraBold, "bold", false, "bold text")
	addParagraphCmd.Flags().BoolVar(&paraItalic, "italic", false, "italic text")
	addParagraphCmd.Flags().BoolVar(&paraUnderline, "underline", false, "underlined text")
	addParagraphCmd.Flags().StringVar(&paraFont, "font", "", "font name")
	addParagraphCmd.Flags().Float64Var(&paraSize, "size", 0, "font size in points")
	addParagraphCmd.Flags().StringVar(&paraColor, "color", "", "hex text color, e.g. 4a90d9")
	addParagraphCmd.Flags().StringVar(&paraStyle, "style", "", "paragraph style name")
	addParagraphCmd.Flags().StringVar(&paraAlign, "align", "", "alignment (left, center, right, justify)")

	addHeadingCmd.Flags().IntVar(&headingLevel, "level", 1, "heading level (0 for title)")

	marginsCmd.Flags().Float64Var(&marginTop, "top", 0, "top margin in cm")
	marginsCmd.Flags().Float64Var(&marginBottom, "bottom", 0, "bottom margin in cm")
	marginsCmd.Flags().Float64Var(&marginLeft, "left", 0, "left margin in cm")
	marginsCmd.Flags().Float64Var(&marginRight, "right", 0, "right margin in cm")
}
