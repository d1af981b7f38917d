package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/chrisdamba/parcelperf/internal/loader"
	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/chrisdamba/parcelperf/internal/output"
	"github.com/chrisdamba/parcelperf/internal/report"
	"github.com/chrisdamba/parcelperf/internal/repositories/postgres"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "parcelperf",
	Short: "Computes same-day and next-day delivery performance reports",
	Long: `parcelperf classifies delivery orders into same-day and next-day service buckets,
computes attempt and delivery rates per calendar day, and rolls them up by
delivery hub and customer.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := run(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.json)")

	rootCmd.Flags().String("input-file", "", "Path to the delivery orders CSV export")
	rootCmd.Flags().String("source", "csv", "Order source: csv or postgres")
	rootCmd.Flags().String("database-url", "", "Postgres connection string for --source postgres")
	rootCmd.Flags().StringSlice("months", nil, "Reporting windows as YYYY-MM (default: every month present in the data)")
	rootCmd.Flags().Int("top-n", 10, "Limit for hub and customer summary tables")
	rootCmd.Flags().String("output-format", "csv", "Report format: csv, json or parquet")
	rootCmd.Flags().String("output-path", "", "Directory for report files (console output when empty)")
	rootCmd.Flags().String("output-folder", "reports", "Subfolder under the output path")
	rootCmd.Flags().Bool("kafka-enabled", false, "Publish report rows to Kafka instead of writing files")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().Bool("show-progress", false, "Show a progress bar while loading input")

	// Flag names use dashes, config keys use underscores; bind explicitly.
	bindings := map[string]string{
		"input_file":        "input-file",
		"source":            "source",
		"database_url":      "database-url",
		"months":            "months",
		"top_n":             "top-n",
		"output_format":     "output-format",
		"output_path":       "output-path",
		"output_folder":     "output-folder",
		"kafka_enabled":     "kafka-enabled",
		"kafka_broker_list": "kafka-broker-list",
		"show_progress":     "show-progress",
	}
	for key, flag := range bindings {
		viper.BindPFlag(key, rootCmd.Flags().Lookup(flag))
	}
}

func run(cfg *models.Config) error {
	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	windows, err := resolveWindows(cfg, table.Orders)
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		log.Println("no orders with a known pickup date; nothing to report")
		return nil
	}

	sink, err := output.ForConfig(cfg)
	if err != nil {
		return err
	}

	engine := report.NewEngine(report.NewPolicy(cfg.SpecialCustomers, cfg.CutoffHour))
	rollup := report.NewRollup(engine)

	for _, w := range windows {
		in, adjacent := report.SplitWindow(table.Orders, w)
		if len(in) == 0 {
			log.Printf("window %s has no orders; skipping", w)
			continue
		}

		if err := writeRows(sink, engine.SameDaySeries(w, in, report.AllOrders())); err != nil {
			return err
		}
		if err := writeRows(sink, engine.NextDaySeries(w, in, adjacent, report.AllOrders())); err != nil {
			return err
		}

		hubSeries := rollup.PerHub(w, in, adjacent, table.HasHub)
		for _, hs := range hubSeries {
			if err := writeRows(sink, hs.SameDay); err != nil {
				return err
			}
			if err := writeRows(sink, hs.NextDay); err != nil {
				return err
			}
		}

		if err := writeRows(sink, report.TopHubs(rollup.HubSummaries(w, hubSeries), cfg.TopN)); err != nil {
			return err
		}
		if err := writeRows(sink, report.TopCustomers(rollup.CustomerSummaries(w, in), cfg.TopN)); err != nil {
			return err
		}
	}

	return sink.Close()
}

func writeRows[T models.MetricRow](sink output.ReportSink, rows []T) error {
	for _, row := range rows {
		if err := sink.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func loadTable(cfg *models.Config) (*models.Table, error) {
	switch cfg.Source {
	case "csv":
		if cfg.InputFile == "" {
			return nil, fmt.Errorf("no input file configured; pass --input-file")
		}
		return loader.LoadCSV(cfg.InputFile, cfg.ShowProgress)
	case "postgres":
		ctx := context.Background()
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		orders, err := postgres.NewOrderRepository(pool).GetAll(ctx)
		if err != nil {
			return nil, err
		}
		table := &models.Table{Orders: orders}
		for _, o := range orders {
			if o.Hub != "" {
				table.HasHub = true
				break
			}
		}
		return table, nil
	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Source)
	}
}

func resolveWindows(cfg *models.Config, orders []models.Order) ([]report.Window, error) {
	if len(cfg.Months) == 0 {
		return report.WindowsPresent(orders), nil
	}
	windows := make([]report.Window, 0, len(cfg.Months))
	for _, m := range cfg.Months {
		w, err := report.ParseWindow(m)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
