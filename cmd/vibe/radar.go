package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/elemental-vibe/internal/elements"
	"github.com/jonathan/elemental-vibe/internal/radar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Draw an elemental profile as an SVG radar chart",
	Long:  "Draw the five element scores of a birthdate and name (or of explicit --scores) as a pentagon radar chart. The two dominant elements are highlighted.",
	RunE:  runRadar,
}

var (
	radarBirthdate string
	radarName      string
	radarScores    string
	radarSize      int
	radarOutFile   string
	radarFormat    string
)

func init() {
	radarCmd.Flags().StringVarP(&radarBirthdate, "birthdate", "b", "", "Birthdate as MM/DD/YYYY")
	radarCmd.Flags().StringVarP(&radarName, "name", "n", "", "Name")
	radarCmd.Flags().StringVar(&radarScores, "scores", "", "Explicit scores instead of a birthdate, e.g. fire=40,water=20 (missing elements score 0)")
	radarCmd.Flags().IntVar(&radarSize, "size", 0, "Chart size in pixels (default from config, 320)")
	radarCmd.Flags().StringVarP(&radarOutFile, "out", "o", "", "Output file (default stdout)")
	radarCmd.Flags().StringVarP(&radarFormat, "format", "f", "svg", "Output format: svg or json (projected geometry)")

	rootCmd.AddCommand(radarCmd)
}

func runRadar(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(radarFormat, "svg", "json"); err != nil {
		return err
	}

	var profile elements.Profile
	switch {
	case radarScores != "" && radarBirthdate != "":
		return fmt.Errorf("cannot use --scores with --birthdate")
	case radarScores != "":
		scores, err := parseScores(radarScores)
		if err != nil {
			return err
		}
		profile = elements.ProfileFromMap(scores)
	case radarBirthdate != "":
		profile = elements.Calculate(radarBirthdate, radarName)
	default:
		return fmt.Errorf("must provide either --birthdate or --scores")
	}

	size := radarSize
	if size <= 0 {
		size = cfg.RadarSize
	}

	var w io.Writer = cmd.OutOrStdout()
	if radarOutFile != "" {
		f, err := os.Create(radarOutFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := writeRadar(w, profile, size, radarFormat); err != nil {
		return err
	}
	if radarOutFile != "" {
		logger.Info("Radar chart written", zap.String("path", radarOutFile), zap.Int("size", size))
	}
	return nil
}

func writeRadar(w io.Writer, profile elements.Profile, size int, format string) error {
	if format == "json" {
		return writeJSON(w, radar.Project(profile, float64(size), radar.DefaultOptions()))
	}
	if err := radar.WriteSVG(w, profile, size); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

// parseScores reads "axis=score" pairs separated by commas
func parseScores(s string) (map[string]int, error) {
	known := make(map[string]bool)
	for _, a := range elements.Axes() {
		known[string(a)] = true
	}

	scores := make(map[string]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid score %q (want element=score)", pair)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if !known[key] {
			return nil, fmt.Errorf("unknown element %q", key)
		}
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid score for %s: %w", key, err)
		}
		scores[key] = n
	}
	return scores, nil
}
