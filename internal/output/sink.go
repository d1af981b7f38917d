package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/chrisdamba/parcelperf/internal/report"
)

// ReportSink receives finished metric rows. One sink instance fans rows out
// to one file/topic per report name.
type ReportSink interface {
	WriteRow(row models.MetricRow) error
	Close() error
}

// ForConfig picks the sink the run is configured for. Kafka wins over file
// formats; no output path at all means console.
func ForConfig(cfg *models.Config) (ReportSink, error) {
	if cfg.KafkaEnabled {
		return NewKafkaSink(cfg)
	}
	if cfg.OutputPath != "" {
		switch cfg.OutputFormat {
		case "parquet":
			return NewParquetSink(cfg)
		case "json":
			return NewJSONSink(cfg.OutputPath, cfg.OutputFolder), nil
		case "csv":
			return NewCSVSink(cfg.OutputPath, cfg.OutputFolder), nil
		default:
			return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
		}
	}
	return &ConsoleSink{}, nil
}

// CSVSink writes one UTF-8 CSV file per report, header row first, rows in
// arrival order. This is the canonical export format.
type CSVSink struct {
	dir     string
	files   map[string]*os.File
	writers map[string]*csv.Writer
}

func NewCSVSink(basePath, folder string) *CSVSink {
	return &CSVSink{
		dir:     filepath.Join(basePath, folder),
		files:   make(map[string]*os.File),
		writers: make(map[string]*csv.Writer),
	}
}

func (c *CSVSink) WriteRow(row models.MetricRow) error {
	name := row.Report()
	w, ok := c.writers[name]
	if !ok {
		if err := os.MkdirAll(c.dir, os.ModePerm); err != nil {
			return err
		}
		file, err := os.Create(filepath.Join(c.dir, name+".csv"))
		if err != nil {
			return err
		}
		c.files[name] = file
		w = csv.NewWriter(file)
		c.writers[name] = w
		if err := w.Write(row.Header()); err != nil {
			return err
		}
	}
	if err := w.Write(row.Record()); err != nil {
		return err
	}
	return nil
}

func (c *CSVSink) Close() error {
	for name, w := range c.writers {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		if err := c.files[name].Close(); err != nil {
			return err
		}
	}
	return nil
}

// JSONSink writes one newline-delimited JSON file per report.
type JSONSink struct {
	dir   string
	files map[string]*os.File
}

func NewJSONSink(basePath, folder string) *JSONSink {
	return &JSONSink{
		dir:   filepath.Join(basePath, folder),
		files: make(map[string]*os.File),
	}
}

func (j *JSONSink) WriteRow(row models.MetricRow) error {
	name := row.Report()
	file, ok := j.files[name]
	if !ok {
		if err := os.MkdirAll(j.dir, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.Create(filepath.Join(j.dir, name+".json"))
		if err != nil {
			return err
		}
		j.files[name] = file
	}

	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		return err
	}
	_, err = file.WriteString("\n")
	return err
}

func (j *JSONSink) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// ConsoleSink prints rows to stdout, annotating percentage fields with their
// severity band the way downstream presenters would color them.
type ConsoleSink struct{}

func (c *ConsoleSink) WriteRow(row models.MetricRow) error {
	values := row.Values()
	parts := make([]string, 0, len(values))
	for _, field := range row.Header() {
		v := values[field]
		if strings.HasSuffix(field, "_pct") {
			pct, _ := v.(float64)
			parts = append(parts, fmt.Sprintf("%s=%s (%s)", field, report.DisplayPct(pct), report.BandFor(pct)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", field, v))
	}

	_, err := fmt.Fprintf(os.Stdout, "[%s] %s\n", row.Report(), strings.Join(parts, " "))
	return err
}

func (c *ConsoleSink) Close() error {
	return nil
}
