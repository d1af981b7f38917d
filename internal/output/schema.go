package output

import (
	"fmt"

	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/xitongsys/parquet-go/schema"
)

// GetSchema resolves the parquet schema for one report from the row struct's
// parquet tags.
func GetSchema(reportName string) (*schema.SchemaHandler, error) {
	switch reportName {
	case models.ReportSameDay:
		return schema.NewSchemaHandlerFromStruct(new(models.SameDayRow))
	case models.ReportNextDay:
		return schema.NewSchemaHandlerFromStruct(new(models.NextDayRow))
	case models.ReportHubSummary:
		return schema.NewSchemaHandlerFromStruct(new(models.HubSummary))
	case models.ReportCustomerSummary:
		return schema.NewSchemaHandlerFromStruct(new(models.CustomerSummary))
	default:
		return nil, fmt.Errorf("unknown report: %s", reportName)
	}
}
