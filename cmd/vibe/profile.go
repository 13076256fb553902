package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/observability"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Score a birthdate and name into an elemental reading",
	Long:  "Score a birthdate (MM/DD/YYYY) and a name into five element scores, the resolved archetype, the birth season and the archetype's images. No network access.",
	RunE:  runProfile,
}

var (
	profileBirthdate string
	profileName      string
	profileFormat    string
)

func init() {
	profileCmd.Flags().StringVarP(&profileBirthdate, "birthdate", "b", "", "Birthdate as MM/DD/YYYY (required)")
	profileCmd.Flags().StringVarP(&profileName, "name", "n", "", "Name (its length and first letter are scored)")
	profileCmd.Flags().StringVarP(&profileFormat, "format", "f", "text", "Output format: text or json")
	_ = profileCmd.MarkFlagRequired("birthdate")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(profileFormat, "text", "json"); err != nil {
		return err
	}

	reading := elements.Evaluate(profileBirthdate, profileName)
	return writeReading(cmd.OutOrStdout(), reading, assetTable().Lookup(reading.Archetype.Name), profileFormat)
}

// readingOutput is the JSON shape of a reading with its images
type readingOutput struct {
	elements.Reading
	Assets elements.AssetPair `json:"assets"`
}

func writeReading(w io.Writer, reading elements.Reading, assets elements.AssetPair, format string) error {
	if format == "json" {
		return writeJSON(w, readingOutput{Reading: reading, Assets: assets})
	}
	observability.NewPrinter(w).PrintReading(reading, assets)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(jsonBytes)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
