package results

import "testing"

func TestSummaries(t *testing.T) {
	tests := []struct {
		name   string
		result StatementResult
		want   string
	}{
		{
			name:   "query",
			result: &QueryResult{Columns: []string{"id"}, Rows: [][]any{{int64(1)}, {int64(2)}}},
			want:   "2 row(s)",
		},
		{
			name:   "dml",
			result: &DMLResult{RecordsUpdated: 5},
			want:   "Number of records updated: 5",
		},
		{
			name:   "null",
			result: &NullResult{},
			want:   "No connection set.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
