package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/career-agent/internal/extraction"
	"github.com/jonathan/career-agent/internal/observability"
	"github.com/spf13/cobra"
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume",
	Short: "Extract plain text from a PDF or DOCX résumé",
	Long:  "Extract the text of a résumé. Each PDF page or DOCX paragraph ends with a newline; other formats yield no text.",
	RunE:  runExtractResume,
}

var (
	extractResume string
	extractOut    string
	extractRaw    bool
)

func init() {
	extractResumeCmd.Flags().StringVarP(&extractResume, "resume", "r", "", "Path to résumé (required)")
	extractResumeCmd.Flags().StringVarP(&extractOut, "out", "o", "", "Write the extracted text to this file")
	extractResumeCmd.Flags().BoolVar(&extractRaw, "raw", false, "Print only the extracted text")

	if err := extractResumeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(_ *cobra.Command, _ []string) error {
	text, format, err := extraction.ExtractFile(extractResume)
	if err != nil {
		return err
	}

	if extractOut != "" {
		if err := os.WriteFile(extractOut, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Extracted %d characters to %s\n", len([]rune(text)), extractOut)
		return nil
	}

	if extractRaw {
		_, _ = fmt.Fprint(os.Stdout, text)
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintExtraction(filepath.Base(extractResume), format, text)
	return nil
}
