package excel

// RawRowData represents a row of raw cell data as header -> value pairs
type RawRowData map[string]string

// TableData represents a complete tabular file
type TableData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// HasHeader reports whether a header is present after normalisation
func (t *TableData) HasHeader(name string) bool {
	want := normalizeHeader(name)
	for _, h := range t.Headers {
		if normalizeHeader(h) == want {
			return true
		}
	}
	return false
}
