package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/chrisdamba/parcelperf/internal/models"
)

func TestCSVSinkRoundTrip(t *testing.T) {
	dir := t.TempDir()

	rows := []models.SameDayRow{
		{Date: "2024-07-05", Dimension: "all", Orders: 3, Attempted: 2, AttemptedPct: 66.67, Delivered: 1, DeliveredPct: 33.33},
		{Date: "2024-07-06", Dimension: "all", Orders: 0, Attempted: 0, AttemptedPct: 0, Delivered: 0, DeliveredPct: 0},
	}

	sink := NewCSVSink(dir, "reports")
	for _, row := range rows {
		if err := sink.WriteRow(row); err != nil {
			t.Fatalf("WriteRow: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	file, err := os.Open(filepath.Join(dir, "reports", "same_day.csv"))
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reparsing export: %v", err)
	}

	if !reflect.DeepEqual(records[0], rows[0].Header()) {
		t.Errorf("header = %v, want %v", records[0], rows[0].Header())
	}
	if len(records) != 3 {
		t.Fatalf("export has %d records, want header + 2 rows", len(records))
	}

	// Reparsing must reproduce the original field values exactly, within the
	// declared two-decimal storage precision.
	for i, row := range rows {
		record := records[i+1]
		if record[0] != row.Date || record[1] != row.Dimension {
			t.Errorf("row %d identity = %v", i, record)
		}
		orders, _ := strconv.Atoi(record[2])
		if int32(orders) != row.Orders {
			t.Errorf("row %d orders = %d, want %d", i, orders, row.Orders)
		}
		attemptedPct, err := strconv.ParseFloat(record[4], 64)
		if err != nil || attemptedPct != row.AttemptedPct {
			t.Errorf("row %d attempted_pct = %v (%v), want %v", i, attemptedPct, err, row.AttemptedPct)
		}
		deliveredPct, _ := strconv.ParseFloat(record[6], 64)
		if deliveredPct != row.DeliveredPct {
			t.Errorf("row %d delivered_pct = %v, want %v", i, deliveredPct, row.DeliveredPct)
		}
	}
}

func TestCSVSinkSeparatesReports(t *testing.T) {
	dir := t.TempDir()

	sink := NewCSVSink(dir, "")
	if err := sink.WriteRow(models.SameDayRow{Date: "2024-07-05", Dimension: "all"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := sink.WriteRow(models.NextDayRow{Date: "2024-07-06", Dimension: "all", Orders: 1}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := sink.WriteRow(models.HubSummary{Window: "2024-07", Hub: "North"}); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"same_day.csv", "next_day.csv", "hub_summary.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestJSONSinkWritesOneObjectPerRow(t *testing.T) {
	dir := t.TempDir()

	sink := NewJSONSink(dir, "")
	row := models.CustomerSummary{
		Window: "2024-07", Customer: "Acme",
		TotalOrders: 4, AttemptedSameDay: 3, AttemptedPct: 75,
		DeliveredSameDay: 2, DeliveredPct: 50,
	}
	if err := sink.WriteRow(row); err != nil {
		t.Fatalf("WriteRow: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "customer_summary.json"))
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	var decoded models.CustomerSummary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded != row {
		t.Errorf("decoded = %+v, want %+v", decoded, row)
	}
}

func TestForConfigDispatch(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     models.Config
		want    string
		wantErr bool
	}{
		{"csv", models.Config{OutputFormat: "csv", OutputPath: dir}, "*output.CSVSink", false},
		{"json", models.Config{OutputFormat: "json", OutputPath: dir}, "*output.JSONSink", false},
		{"parquet local", models.Config{OutputFormat: "parquet", OutputPath: dir, OutputDestination: "local"}, "*output.ParquetSink", false},
		{"console when no path", models.Config{OutputFormat: "csv"}, "*output.ConsoleSink", false},
		{"unknown format", models.Config{OutputFormat: "xml", OutputPath: dir}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink, err := ForConfig(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForConfig: %v", err)
			}
			if got := reflect.TypeOf(sink).String(); got != tt.want {
				t.Errorf("sink type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGetSchemaKnowsEveryReport(t *testing.T) {
	for _, name := range []string{
		models.ReportSameDay,
		models.ReportNextDay,
		models.ReportHubSummary,
		models.ReportCustomerSummary,
	} {
		if _, err := GetSchema(name); err != nil {
			t.Errorf("GetSchema(%s): %v", name, err)
		}
	}
	if _, err := GetSchema("bogus"); err == nil {
		t.Error("GetSchema accepted an unknown report")
	}
}
