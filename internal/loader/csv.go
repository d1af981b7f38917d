package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/schollz/progressbar/v3"
)

// Required input columns. A table missing any of these is structurally
// broken and the load fails hard; everything else degrades per cell.
var requiredColumns = []string{"Customer", "Picked on", "First attempted on", "Delivered on"}

// hubColumnCandidates is the fixed probe order for the optional hub
// dimension; the first header that matches wins.
var hubColumnCandidates = []string{"Delivery hub", "Hub", "Delivery Hub", "Delivery_hub", "delivery_hub", "delivery hub"}

// idColumnCandidates is the probe order for an optional order identifier.
var idColumnCandidates = []string{"Order ID", "order_id", "AWB"}

// LoadCSV reads one delivery export into a Table. Cell-level problems
// (malformed timestamps, blank customers, ragged rows) degrade: the value
// becomes unknown or the row is dropped, never the batch.
func LoadCSV(path string, showProgress bool) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var source io.Reader = file
	if showProgress {
		if fi, err := file.Stat(); err == nil {
			bar := progressbar.DefaultBytes(fi.Size(), "loading orders")
			source = io.TeeReader(file, bar)
		}
	}

	reader := csv.NewReader(source)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("input table missing required columns: %s", strings.Join(missing, ", "))
	}

	hubIdx, hasHub := probe(columns, hubColumnCandidates)
	idIdx, hasID := probe(columns, idColumnCandidates)

	table := &models.Table{HasHub: hasHub}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged or unquotable row; skip it rather than abort the batch.
			continue
		}

		order := models.Order{
			Customer:         strings.TrimSpace(cell(record, columns["Customer"])),
			PickedAt:         models.ParseTimestamp(cell(record, columns["Picked on"])),
			FirstAttemptedAt: models.ParseTimestamp(cell(record, columns["First attempted on"])),
			DeliveredAt:      models.ParseTimestamp(cell(record, columns["Delivered on"])),
		}
		if order.Customer == "" {
			continue
		}
		if hasHub {
			order.Hub = strings.TrimSpace(cell(record, hubIdx))
		}
		if hasID {
			order.ID = strings.TrimSpace(cell(record, idIdx))
		}
		table.Orders = append(table.Orders, order)
	}

	return table, nil
}

func probe(columns map[string]int, candidates []string) (int, bool) {
	for _, name := range candidates {
		if idx, ok := columns[name]; ok {
			return idx, true
		}
	}
	return 0, false
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
