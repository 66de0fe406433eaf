package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog load attempts by result",
		},
		[]string{"result"},
	)

	rowsNormalizedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_rows_normalized_total",
			Help: "Total number of spreadsheet rows normalized into products",
		},
	)

	cellsDegradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cells_degraded_total",
			Help: "Total number of cells that failed to parse and degraded to a default",
		},
		[]string{"column"},
	)
)
