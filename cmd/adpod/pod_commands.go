package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"adpod/internal/bundle"
	"adpod/internal/config"
	"adpod/internal/dcp"
	"adpod/internal/pod"
	"adpod/internal/store"
)

func newPodCommand(ctx *commandContext) *cobra.Command {
	podCmd := &cobra.Command{
		Use:   "pod",
		Short: "Inspect and manage compiled pods",
	}

	podCmd.AddCommand(newPodListCommand(ctx))
	podCmd.AddCommand(newPodShowCommand(ctx))
	podCmd.AddCommand(newPodPackageCommand(ctx))
	podCmd.AddCommand(newPodRemoveCommand(ctx))
	podCmd.AddCommand(newPodStatsCommand(ctx))
	podCmd.AddCommand(newPodHealthCommand(ctx))

	return podCmd
}

func newPodListCommand(ctx *commandContext) *cobra.Command {
	var listStatuses []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored pods",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				statuses := make([]pod.Status, 0, len(listStatuses))
				for _, value := range listStatuses {
					status := pod.Status(value)
					if !pod.KnownStatus(status) {
						return fmt.Errorf("unknown status %q", value)
					}
					statuses = append(statuses, status)
				}

				records, err := st.List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, records)
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pods stored")
					return nil
				}
				table := renderTable(
					[]string{"ID", "Pod Name", "Status", "CPLs", "Created"},
					buildPodListRows(records),
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&listStatuses, "status", nil, "Filter by status (draft, validated, generated, failed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit pod records as JSON")
	return cmd
}

func newPodShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored pod in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				record, err := resolvePod(cmd, st, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, record)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Pod:        %s\n", record.PodName)
				fmt.Fprintf(out, "ID:         %s\n", record.ID)
				fmt.Fprintf(out, "Status:     %s\n", formatStatusLabel(string(record.Status)))
				fmt.Fprintf(out, "Theatre:    %s (%s)\n", record.Configuration.TheatreName, record.Configuration.TheatreID)
				fmt.Fprintf(out, "Rating:     %s\n", record.Configuration.Rating)
				fmt.Fprintf(out, "Section:    %s\n", record.Configuration.Section)
				fmt.Fprintf(out, "Aspect:     %s\n", record.Configuration.Aspect)
				fmt.Fprintf(out, "Start date: %s\n", record.Configuration.StartDate)
				fmt.Fprintf(out, "Created:    %s\n", formatDisplayTime(record.CreatedAt))
				if record.GeneratedAt != nil {
					fmt.Fprintf(out, "Generated:  %s\n", formatDisplayTime(*record.GeneratedAt))
				}
				if record.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:      %s\n", record.ErrorMessage)
				}

				if len(record.Configuration.CPLs) > 0 {
					rows := make([][]string, 0, len(record.Configuration.CPLs))
					for _, item := range record.Configuration.CPLs {
						rows = append(rows, []string{
							strconv.Itoa(item.Order),
							item.FileName,
							item.Metadata.UUID,
							strconv.Itoa(len(item.Metadata.Reels)),
						})
					}
					table := renderTable(
						[]string{"#", "File", "UUID", "Reels"},
						rows,
						[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight},
					)
					fmt.Fprintln(out, table)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the pod record as JSON")
	return cmd
}

func newPodPackageCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "package <id>",
		Short: "Re-emit the package bundle for a stored pod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				record, err := resolvePod(cmd, st, args[0])
				if err != nil {
					return err
				}

				profile := dcp.Profile{
					Issuer:  cfg.Compiler.Issuer,
					Creator: cfg.Compiler.Creator,
				}
				pkg, err := dcp.Generate(record.Configuration, profile)
				if err != nil {
					return fmt.Errorf("regenerate pod %s: %w", shortID(record.ID), err)
				}
				paths, err := bundle.Write(pkg, cfg.Paths.OutputDir)
				if err != nil {
					return fmt.Errorf("write package bundle: %w", err)
				}

				if jsonOutput {
					return writeJSON(cmd, createResult{Record: record, Package: pkg, Paths: paths})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Package for %s written\n", pkg.PodName)
				fmt.Fprintf(out, "  Package: %s\n", paths.Dir)
				fmt.Fprintf(out, "  Bundle:  %s\n", paths.FlatBundle)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the regenerated package as JSON")
	return cmd
}

func newPodRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a stored pod record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				record, err := resolvePod(cmd, st, args[0])
				if err != nil {
					return err
				}
				removed, err := st.Remove(cmd.Context(), record.ID)
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("pod %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed pod %s\n", record.PodName)
				return nil
			})
		},
	}
}

func newPodStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pod counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				stats, err := st.Stats(cmd.Context())
				if err != nil {
					return err
				}
				rows := buildPodStatsRows(stats)
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No pods stored")
					return nil
				}
				table := renderTable([]string{"Status", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newPodHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check pod database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				health, err := st.CheckHealth(cmd.Context())
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database:   %s\n", health.DBPath)
				fmt.Fprintf(out, "Exists:     %s\n", yesNo(health.DatabaseExists))
				fmt.Fprintf(out, "Readable:   %s\n", yesNo(health.DatabaseReadable))
				fmt.Fprintf(out, "Schema:     %s\n", yesNo(health.TableExists))
				fmt.Fprintf(out, "Integrity:  %s\n", yesNo(health.IntegrityCheck))
				fmt.Fprintf(out, "Total pods: %d\n", health.TotalPods)
				if health.Error != "" {
					fmt.Fprintf(out, "Error:      %s\n", health.Error)
				}
				return err
			})
		},
	}
}

// resolvePod accepts a full record ID, a unique ID prefix, or an exact pod
// name.
func resolvePod(cmd *cobra.Command, st *store.Store, ref string) (*pod.Record, error) {
	record, err := st.GetByID(cmd.Context(), ref)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	record, err = st.GetByName(cmd.Context(), ref)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	records, err := st.List(cmd.Context())
	if err != nil {
		return nil, err
	}
	var match *pod.Record
	for _, candidate := range records {
		if len(ref) >= 4 && len(candidate.ID) >= len(ref) && candidate.ID[:len(ref)] == ref {
			if match != nil {
				return nil, fmt.Errorf("pod reference %q is ambiguous", ref)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, fmt.Errorf("pod %q not found", ref)
	}
	return match, nil
}

func buildPodListRows(records []*pod.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		name := record.PodName
		if name == "" {
			name = "(not generated)"
		}
		rows = append(rows, []string{
			shortID(record.ID),
			name,
			formatStatusLabel(string(record.Status)),
			strconv.Itoa(len(record.Configuration.CPLs)),
			formatDisplayTime(record.CreatedAt),
		})
	}
	return rows
}

func buildPodStatsRows(stats map[pod.Status]int) [][]string {
	if len(stats) == 0 {
		return nil
	}
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, string(key))
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{formatStatusLabel(key), strconv.Itoa(stats[pod.Status(key)])})
	}
	return rows
}
