package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	tableRows  int
	tableCols  int
	tableData  []string
	tableStyle string
)

var addTableCmd = &cobra.Command{
	Use:   "add-table",
	Short: "Append a table to the current document",
	Long: `Appends a table with the given shape. Cell data is passed row by row
with --data, one flag per row, cells separated by commas:

  docforge add-table --rows 2 --cols 3 --data "a,b,c" --data "d,e,f"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		style := tableStyle
		if style == "" {
			style = cfg.TableStyle
		}
		var data [][]string
		for _, row := range tableData {
			data = append(data, strings.Split(row, ","))
		}
		if err := s.AddTable(tableRows, tableCols, data, style); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Printf("Table added (%dx%d).\n", tableRows, tableCols)
		return nil
	},
}

var rowData []string

var addRowCmd = &cobra.Command{
	Use:   "add-row <table>",
	Short: "Append a row to a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		table, err := parseInt(args[0])
		if err != nil {
			return err
		}
		if err := s.AddTableRow(table, rowData); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Row added.")
		return nil
	},
}

var deleteRowCmd = &cobra.Command{
	Use:   "delete-row <table> <row>",
	Short: "Delete a row from a table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		table, err := parseInt(args[0])
		if err != nil {
			return err
		}
		row, err := parseInt(args[1])
		if err != nil {
			return err
		}
		if err := s.DeleteTableRow(table, row); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Row deleted.")
		return nil
	},
}

var editCellCmd = &cobra.Command{
	Use:   "edit-cell <table> <row> <col> <text>",
	Short: "Replace a table cell's text",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		table, err := parseInt(args[0])
		if err != nil {
			return err
		}
		row, err := parseInt(args[1])
		if err != nil {
			return err
		}
		col, err := parseInt(args[2])
		if err != nil {
			return err
		}
		if err := s.EditTableCell(table, row, col, args[3]); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Cell updated.")
		return nil
	},
}

var mergeCellsCmd = &cobra.Command{
	Use:   "merge-cells <table> <r1> <c1> <r2> <c2>",
	Short: "Merge a rectangular range of table cells",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		var vals [5]int
		for i, a := range args {
			v, err := parseInt(a)
			if err != nil {
				return err
			}
			vals[i] = v
		}
		if err := s.MergeCells(vals[0], vals[1], vals[2], vals[3], vals[4]); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Cells merged.")
		return nil
	},
}

var splitTableCmd = &cobra.Command{
	Use:   "split-table <table> <after-row>",
	Short: "Split a table into two after a row",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		table, err := parseInt(args[0])
		if err != nil {
			return err
		}
		row, err := parseInt(args[1])
		if err != nil {
			return err
		}
		if err := s.SplitTable(table, row); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Table split.")
		return nil
	},
}

func init() {
	addTableCmd.Flags().IntVar(&tableRows, "rows", 2, "row count")
	addTableCmd.Flags().IntVar(&tableCols, "cols", 2, "column count")
	addTableCmd.Flags().StringArrayVar(&tableData, "data", nil, "comma-separated cell values for one row (repeatable)")
	addTableCmd.Flags().StringVar(&tableStyle, "style", "", "table style name (default from config)")
}
