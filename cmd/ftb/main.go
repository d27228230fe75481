package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/config"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/core"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/display"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/export"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/store"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/timeline"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/watch"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ftb",
		Short: "ftb - Forensic Timeline Builder",
		Long: `Builds a chronological timeline of file-system activity for a directory
tree: creation, modification, and access events extracted from file metadata,
sorted, filtered, summarized, and exportable for forensic triage.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(scansCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Println()
	fmt.Println("Forensic Timeline Builder")
	fmt.Printf("v%s\n", version)
	fmt.Println()
}

// initLogger builds the process logger: development output when verbose,
// otherwise error-level JSON on stderr.
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	return err
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		recursive    bool
		exclude      []string
		extensions   []string
		profile      string
		filterType   string
		fromStr      string
		toStr        string
		limit        int
		exportFormat string
		outputFile   string
		save         bool
		storePath    string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Build a timeline of file activity under a directory",
		Long: `Walk a directory tree, extract creation/modification/access timestamps from
every regular file, and display the resulting chronological timeline.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := initLogger(); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if cmd.Flags().Changed("recursive") {
				cfg.Recursive = recursive
			}
			if len(exclude) > 0 {
				cfg.Exclude = append(cfg.Exclude, exclude...)
			}
			if len(extensions) > 0 {
				cfg.Extensions = extensions
			}
			if limit > 0 {
				cfg.DisplayLimit = limit
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}

			if profile != "" {
				p, err := config.FindProfile(cfg.ProfilesPath, profile)
				if err != nil {
					return err
				}
				cfg.ApplyProfile(p)
				logger.Info("applied scan profile", zap.String("profile", p.Name))
			}

			filter, err := buildFilter(filterType, fromStr, toStr)
			if err != nil {
				return err
			}

			renderer := display.NewRenderer(os.Stdout)
			scanner := core.NewScanner(cfg, logger)
			scanner.SetProgressFunc(func(processed int, _ string) {
				fmt.Printf("Processed %d files...\n", processed)
			})

			fmt.Printf("Scanning directory: %s\n", path)
			result, err := scanner.Scan(path, cfg.Recursive)
			if err != nil {
				return err
			}

			renderer.Summary(result)

			events := filter.Apply(result.Events)
			renderer.Timeline(events, cfg.DisplayLimit)
			renderer.Stats(timeline.Aggregate(events))

			if exportFormat != "" {
				exporter := export.NewExporter(logger)
				written, err := exporter.Export(events, exportFormat, outputFile)
				if err != nil {
					return err
				}
				fmt.Printf("\nTimeline exported to %s\n", written)
			}

			if save {
				db, err := store.Open(cfg.StorePath, logger)
				if err != nil {
					return err
				}
				defer db.Close()

				scanID, err := db.SaveScan(cmd.Context(), result)
				if err != nil {
					return err
				}
				fmt.Printf("\nScan saved as #%d in %s\n", scanID, cfg.StorePath)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Scan subdirectories recursively")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Glob patterns to exclude (can be repeated)")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "Only analyze files with these extensions")
	cmd.Flags().StringVar(&profile, "profile", "", "Scan profile name or YAML file")
	cmd.Flags().StringVarP(&filterType, "filter-type", "t", "", "Show only events of this type (CREATE, MODIFY, ACCESS)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Show only events at or after this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Show only events at or before this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum events to display (default 50)")
	cmd.Flags().StringVar(&exportFormat, "export", "", "Export format: csv or json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Export file path (default timeline_<stamp>.<ext>)")
	cmd.Flags().BoolVar(&save, "save", false, "Save the scan to the timeline store")
	cmd.Flags().StringVar(&storePath, "store", "", "Timeline store database path")

	return cmd
}

// scansCmd lists saved scans
func scansCmd() *cobra.Command {
	var storePath string

	cmd := &cobra.Command{
		Use:   "scans",
		Short: "List scans saved in the timeline store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}

			db, err := store.Open(cfg.StorePath, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			summaries, err := db.ListScans(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No saved scans.")
				return nil
			}

			fmt.Printf("%-5s %-20s %-8s %-8s %s\n", "ID", "STARTED", "EVENTS", "ERRORS", "ROOT")
			for _, s := range summaries {
				fmt.Printf("%-5d %-20s %-8d %-8d %s\n",
					s.ID,
					s.StartTime.Format("2006-01-02 15:04:05"),
					s.EventCount,
					s.ErrorCount,
					s.RootPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "Timeline store database path")
	return cmd
}

// showCmd re-displays a saved scan
func showCmd() *cobra.Command {
	var (
		storePath    string
		filterType   string
		fromStr      string
		toStr        string
		limit        int
		exportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "show [scan-id]",
		Short: "Display a saved timeline from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid scan id %q", args[0])
			}

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if storePath != "" {
				cfg.StorePath = storePath
			}
			if limit > 0 {
				cfg.DisplayLimit = limit
			}

			filter, err := buildFilter(filterType, fromStr, toStr)
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.StorePath, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := db.LoadScan(cmd.Context(), scanID)
			if err != nil {
				return err
			}

			renderer := display.NewRenderer(os.Stdout)
			events := filter.Apply(result.Events)
			renderer.Timeline(events, cfg.DisplayLimit)
			renderer.Stats(timeline.Aggregate(events))

			if exportFormat != "" {
				exporter := export.NewExporter(logger)
				written, err := exporter.Export(events, exportFormat, outputFile)
				if err != nil {
					return err
				}
				fmt.Printf("\nTimeline exported to %s\n", written)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&storePath, "store", "", "Timeline store database path")
	cmd.Flags().StringVarP(&filterType, "filter-type", "t", "", "Show only events of this type (CREATE, MODIFY, ACCESS)")
	cmd.Flags().StringVar(&fromStr, "from", "", "Show only events at or after this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Show only events at or before this time (RFC 3339 or YYYY-MM-DD)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum events to display (default 50)")
	cmd.Flags().StringVar(&exportFormat, "export", "", "Export format: csv or json")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Export file path")

	return cmd
}

// watchCmd streams live file events
func watchCmd() *cobra.Command {
	var (
		recursive bool
		exclude   []string
	)

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a directory and print file events live",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if len(exclude) > 0 {
				cfg.Exclude = append(cfg.Exclude, exclude...)
			}

			monitor, err := watch.NewMonitor(path, recursive, cfg.Exclude, logger)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigCh)
			go func() {
				<-sigCh
				cancel()
			}()

			go monitor.Start(ctx)

			fmt.Printf("Watching %s (Ctrl+C to stop)\n", path)
			for event := range monitor.Events {
				fmt.Printf("[%s] %-7s %s\n",
					event.Timestamp.Format("2006-01-02 15:04:05"),
					event.Type,
					event.Path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "Watch subdirectories recursively")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Glob patterns to exclude (can be repeated)")
	return cmd
}

// buildFilter validates the filter flags and assembles a timeline filter.
func buildFilter(filterType, fromStr, toStr string) (timeline.Filter, error) {
	var filter timeline.Filter

	if filterType != "" {
		eventType := models.EventType(strings.ToUpper(filterType))
		if !eventType.IsValid() {
			return filter, fmt.Errorf("invalid event type %q (expected CREATE, MODIFY or ACCESS)", filterType)
		}
		filter.Type = eventType
	}

	if fromStr != "" {
		t, err := parseTimeFlag(fromStr)
		if err != nil {
			return filter, fmt.Errorf("invalid --from value: %w", err)
		}
		filter.Start = t
	}

	if toStr != "" {
		t, err := parseTimeFlag(toStr)
		if err != nil {
			return filter, fmt.Errorf("invalid --to value: %w", err)
		}
		filter.End = t
	}

	return filter, nil
}

// parseTimeFlag accepts RFC 3339 instants and bare dates.
func parseTimeFlag(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
