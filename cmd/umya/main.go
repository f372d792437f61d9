// Package main provides the CLI entry point for umya.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/models"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/output"
)

var (
	outputPath    string
	pretty        bool
	verbose       bool
	noEmbeddings  bool
	sheetsDir     string
	printAreasDir string

	sheetName string
	at        uint32
	count     uint32
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "umya",
		Short: "Inspect and edit the drawing layer of xlsx files",
		Long: `umya keeps pictures, charts, shapes and embedded objects of an xlsx file
in place while rows or columns are inserted or removed, and reports
where those objects are anchored.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log edit details to stderr")
	rootCmd.PersistentFlags().BoolVar(&noEmbeddings, "no-embeddings", false, "Do not open OLE embeddings")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Print the drawing layer as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	inspectCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	inspectCmd.Flags().StringVar(&printAreasDir, "print-areas-dir", "", "Directory for per-print-area output files")
	rootCmd.AddCommand(inspectCmd)

	edits := []struct {
		use    string
		short  string
		axis   anchor.Axis
		insert bool
	}{
		{"insert-rows", "Insert rows before --at", anchor.Row, true},
		{"remove-rows", "Remove rows starting at --at", anchor.Row, false},
		{"insert-cols", "Insert columns before --at", anchor.Column, true},
		{"remove-cols", "Remove columns starting at --at", anchor.Column, false},
	}
	for _, e := range edits {
		cmd := &cobra.Command{
			Use:   e.use + " [input.xlsx]",
			Short: e.short,
			Args:  cobra.ExactArgs(1),
			RunE:  editRunner(e.axis, e.insert),
		}
		cmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Sheet to edit")
		cmd.Flags().Uint32Var(&at, "at", 1, "1-based row or column index")
		cmd.Flags().Uint32VarP(&count, "count", "n", 1, "Number of rows or columns")
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: overwrite input)")
		_ = cmd.MarkFlagRequired("sheet")
		rootCmd.AddCommand(cmd)
	}
	return rootCmd
}

func options() spreadsheet.Options {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	inspect := !noEmbeddings
	return spreadsheet.Options{
		InspectEmbeddings: &inspect,
		Logger:            slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})),
	}
}

func editRunner(axis anchor.Axis, insert bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		inputPath := args[0]

		wb, err := spreadsheet.Open(inputPath, options())
		if err != nil {
			return fmt.Errorf("open failed: %w", err)
		}
		if insert {
			err = wb.Insert(sheetName, axis, at, count)
		} else {
			err = wb.Remove(sheetName, axis, at, count)
		}
		if err != nil {
			return err
		}

		target := outputPath
		if target == "" {
			target = inputPath
		}
		if err := wb.Save(target); err != nil {
			return fmt.Errorf("save failed: %w", err)
		}
		return nil
	}
}

func runInspect(cmd *cobra.Command, args []string) error {
	wb, err := spreadsheet.Inspect(args[0], options())
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" && printAreasDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	if printAreasDir != "" {
		if err := writePrintAreaFiles(wb, printAreasDir); err != nil {
			return fmt.Errorf("failed to write print area files: %w", err)
		}
	}
	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, name+".json"), jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

func writePrintAreaFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for name, sheet := range wb.Sheets {
		for i, area := range sheet.PrintAreas {
			view := models.NewPrintAreaView(wb.BookName, name, sheet, area)
			jsonData, err := output.PrintAreaViewToJSON(&view, pretty)
			if err != nil {
				return err
			}
			filename := filepath.Join(dir, fmt.Sprintf("%s_area%d.json", name, i+1))
			if err := os.WriteFile(filename, jsonData, 0644); err != nil {
				return err
			}
		}
	}
	return nil
}
