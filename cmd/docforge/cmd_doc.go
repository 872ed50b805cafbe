package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <file>",
	Short: "Open a document and make it the current one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.Open(args[0]); err != nil {
			return err
		}
		fmt.Printf("Opened %s\n", s.Path())
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Create a new empty document and open it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		if err := s.Create(args[0]); err != nil {
			return err
		}
		fmt.Printf("Created %s\n", s.Path())
		return nil
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the current document without saving",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		path := s.Path()
		if err := s.Close(); err != nil {
			return err
		}
		fmt.Printf("Closed %s\n", path)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show counts for the current document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		info, err := s.Info()
		if err != nil {
			return err
		}
		fmt.Printf("Path:       %s\n", info.Path)
		fmt.Printf("Paragraphs: %d\n", info.Paragraphs)
		fmt.Printf("Tables:     %d\n", info.Tables)
		fmt.Printf("Words:      %d\n", info.Words)
		fmt.Printf("Styles:     %d\n", info.Styles)
		return nil
	},
}

var saveAsCmd = &cobra.Command{
	Use:   "save-as <file>",
	Short: "Save the current document to a new path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		if err := s.SaveAs(args[0]); err != nil {
			return err
		}
		fmt.Printf("Saved as %s\n", args[0])
		return nil
	},
}

var copySuffix string

var copyCmd = &cobra.Command{
	Use:   "copy",
	Short: "Save a copy of the current document next to the original",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := currentSession()
		if err != nil {
			return err
		}
		target, err := s.CreateCopy(copySuffix)
		if err != nil {
			return err
		}
		fmt.Printf("Copy created at %s\n", target)
		return nil
	},
}

func init() {
	copyCmd.Flags().StringVar(&copySuffix, "suffix", "-copy", "filename suffix for the copy")
}
