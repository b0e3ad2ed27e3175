package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"adpod/internal/bundle"
	"adpod/internal/config"
	"adpod/internal/dcp"
	"adpod/internal/logging"
	"adpod/internal/pod"
	"adpod/internal/poddate"
	"adpod/internal/store"
)

type createResult struct {
	Record  *pod.Record  `json:"record"`
	Package *dcp.Package `json:"package,omitempty"`
	Paths   bundle.Paths `json:"paths"`
}

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var theatreName string
	var theatreID string
	var rating string
	var section string
	var aspect string
	var startDate string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "create <cpl.xml> [cpl.xml...]",
		Short: "Compile CPLs into an ad pod package",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				logger, err := logging.NewFromConfig(cfg)
				if err != nil {
					logger = logging.NewNop()
				}

				configuration, err := buildConfiguration(theatreName, theatreID, rating, section, aspect, startDate, args)
				if err != nil {
					return err
				}

				profile := dcp.Profile{
					Issuer:  cfg.Compiler.Issuer,
					Creator: cfg.Compiler.Creator,
				}

				pkg, genErr := dcp.Generate(configuration, profile)

				record := &pod.Record{
					Configuration: configuration,
				}
				if genErr != nil {
					var generationErr *dcp.GenerationError
					if !errors.As(genErr, &generationErr) {
						return genErr
					}
					record.Status = pod.StatusFailed
					record.ErrorMessage = genErr.Error()
					if err := st.Save(cmd.Context(), record); err != nil {
						return fmt.Errorf("save failed pod: %w", err)
					}
					logger.Warn("pod generation failed",
						"podId", record.ID,
						"violations", len(generationErr.Violations))

					out := cmd.OutOrStdout()
					if jsonOutput {
						return writeJSON(cmd, createResult{Record: record})
					}
					for _, message := range generationErr.Violations {
						fmt.Fprintf(out, "  - %s\n", message)
					}
					return fmt.Errorf("pod %s not generated: %d compatibility issue(s)", shortID(record.ID), len(generationErr.Violations))
				}

				for i := range record.Configuration.CPLs {
					record.Configuration.CPLs[i].Validated = true
				}
				record.PodName = pkg.PodName
				record.Status = pod.StatusGenerated
				now := time.Now().UTC()
				record.GeneratedAt = &now
				if err := st.Save(cmd.Context(), record); err != nil {
					return fmt.Errorf("save pod: %w", err)
				}

				paths, err := bundle.Write(pkg, cfg.Paths.OutputDir)
				if err != nil {
					return fmt.Errorf("write package bundle: %w", err)
				}
				logger.Info("pod generated",
					"podId", record.ID,
					"podName", record.PodName,
					"dir", paths.Dir)

				if jsonOutput {
					return writeJSON(cmd, createResult{Record: record, Package: pkg, Paths: paths})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Pod %s generated\n", record.PodName)
				fmt.Fprintf(out, "  ID:      %s\n", record.ID)
				fmt.Fprintf(out, "  Package: %s\n", paths.Dir)
				fmt.Fprintf(out, "  Bundle:  %s\n", paths.FlatBundle)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&theatreName, "theatre-name", "", "Theatre display name")
	cmd.Flags().StringVar(&theatreID, "theatre-id", "", "Theatre identifier")
	cmd.Flags().StringVar(&rating, "rating", "", "Audience rating (G, PG, PG-13, R)")
	cmd.Flags().StringVar(&section, "section", "", "Playback section (LPS or EPS)")
	cmd.Flags().StringVar(&aspect, "aspect", "", "Aspect ratio (Flat or Scope)")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Pod start date (dd-mmm-yyyy, or \"today\")")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the pod record and package as JSON")

	_ = cmd.MarkFlagRequired("theatre-name")
	_ = cmd.MarkFlagRequired("theatre-id")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("section")
	_ = cmd.MarkFlagRequired("aspect")
	_ = cmd.MarkFlagRequired("start-date")

	return cmd
}

// buildConfiguration parses the identity flags and loads every CPL file into
// a fresh workset.
func buildConfiguration(theatreName, theatreID, rating, section, aspect, startDate string, files []string) (pod.Configuration, error) {
	parsedRating, err := pod.ParseRating(rating)
	if err != nil {
		return pod.Configuration{}, err
	}
	parsedSection, err := pod.ParseSection(section)
	if err != nil {
		return pod.Configuration{}, err
	}
	parsedAspect, err := pod.ParseAspect(aspect)
	if err != nil {
		return pod.Configuration{}, err
	}

	startDate = strings.TrimSpace(startDate)
	if strings.EqualFold(startDate, "today") {
		startDate = poddate.Format(time.Now())
	} else if _, err := poddate.Parse(startDate); err != nil {
		return pod.Configuration{}, err
	}

	ws := pod.NewWorkset()
	for _, file := range files {
		fileName, meta, err := readCPL(file)
		if err != nil {
			return pod.Configuration{}, err
		}
		ws.Add(fileName, meta)
	}

	configuration := pod.Configuration{
		TheatreName: strings.TrimSpace(theatreName),
		TheatreID:   pod.CanonicalTheatreID(theatreID),
		Rating:      parsedRating,
		Section:     parsedSection,
		Aspect:      parsedAspect,
		StartDate:   startDate,
		CPLs:        ws.Items(),
	}
	if err := configuration.Validate(); err != nil {
		return pod.Configuration{}, err
	}
	return configuration, nil
}
