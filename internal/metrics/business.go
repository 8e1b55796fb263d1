package metrics

// IncrementFieldCreated counts a field creation event by origin (user or import)
func (m *Metrics) IncrementFieldCreated(origin string) {
	m.safeExecute("IncrementFieldCreated", func() {
		m.FieldsCreatedTotal.WithLabelValues(origin).Inc()
	})
}

// RecordImportRows counts the rows of a finished import by outcome
func (m *Metrics) RecordImportRows(imported, failed int) {
	m.safeExecute("RecordImportRows", func() {
		m.ImportRowsTotal.WithLabelValues("imported").Add(float64(imported))
		m.ImportRowsTotal.WithLabelValues("failed").Add(float64(failed))
	})
}

// AddValuesWritten counts stored field values
func (m *Metrics) AddValuesWritten(n int) {
	m.safeExecute("AddValuesWritten", func() {
		m.ValuesWrittenTotal.Add(float64(n))
	})
}

// RecordAnalyticsCache counts one analytics cache lookup
func (m *Metrics) RecordAnalyticsCache(hit bool) {
	m.safeExecute("RecordAnalyticsCache", func() {
		result := "miss"
		if hit {
			result = "hit"
		}
		m.AnalyticsCacheTotal.WithLabelValues(result).Inc()
	})
}

// AddOrphanFieldsReclaimed counts fields removed by the cleanup job
func (m *Metrics) AddOrphanFieldsReclaimed(n int) {
	m.safeExecute("AddOrphanFieldsReclaimed", func() {
		m.OrphanFieldsReclaims.Add(float64(n))
	})
}

// SetListsTotal sets the bookmark list gauge
func (m *Metrics) SetListsTotal(count int64) {
	m.safeExecute("SetListsTotal", func() {
		m.ListsTotal.Set(float64(count))
	})
}

// SetVideosTotal sets the bookmarked video gauge
func (m *Metrics) SetVideosTotal(count int64) {
	m.safeExecute("SetVideosTotal", func() {
		m.VideosTotal.Set(float64(count))
	})
}
