package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TillMetrics records sale and catalog activity for the till.
type TillMetrics struct {
	salesCompleted   prometheus.Counter
	saleLines        prometheus.Counter
	catalogMutations *prometheus.CounterVec
	importRows       *prometheus.CounterVec
}

// NewTillMetrics registers the till metrics on the provided registerer.
func NewTillMetrics(reg prometheus.Registerer) *TillMetrics {
	if reg == nil {
		return &TillMetrics{}
	}
	salesCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_completed_total",
		Help: "Completed sales appended to the ledger.",
	})
	saleLines := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sale_lines_total",
		Help: "Cart lines included in completed sales.",
	})
	catalogMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_mutations_total",
		Help: "Catalog table rewrites by operation.",
	}, []string{"op"})
	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "Bulk import rows by result.",
	}, []string{"result"})
	reg.MustRegister(salesCompleted, saleLines, catalogMutations, importRows)
	return &TillMetrics{
		salesCompleted:   salesCompleted,
		saleLines:        saleLines,
		catalogMutations: catalogMutations,
		importRows:       importRows,
	}
}

// IncSaleCompleted counts one completed sale with its line count.
func (m *TillMetrics) IncSaleCompleted(lines int) {
	if m == nil || m.salesCompleted == nil {
		return
	}
	m.salesCompleted.Inc()
	m.saleLines.Add(float64(lines))
}

// IncCatalogMutation counts one catalog rewrite for the named operation.
func (m *TillMetrics) IncCatalogMutation(op string) {
	if m == nil || m.catalogMutations == nil {
		return
	}
	m.catalogMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncImportRows counts bulk import rows for the named result.
func (m *TillMetrics) IncImportRows(result string, count int) {
	if m == nil || m.importRows == nil {
		return
	}
	m.importRows.WithLabelValues(normalizeLabel(result)).Add(float64(count))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
