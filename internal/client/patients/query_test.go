package patients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/patientdesk/pkg/api"
)

func TestSortKey(t *testing.T) {
	tests := []struct {
		column  string
		want    string
		desc    bool
		wantErr bool
	}{
		{column: "name", want: "last_name"},
		{column: "name", desc: true, want: "-last_name"},
		{column: "status", want: "status"},
		{column: "location", want: "addresses__city"},
		{column: "age", desc: true, want: "-date_of_birth"},
		{column: "last_visit", want: "last_visit"},
		{column: " Name ", want: "last_name"},
		{column: "", want: ""},
		{column: "", desc: true, want: ""},
		{column: "isi_score", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, err := SortKey(tt.column, tt.desc)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownSortColumn)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortColumnsAreMapped(t *testing.T) {
	for _, col := range SortColumns {
		_, err := SortKey(col, false)
		assert.NoError(t, err, col)
	}
}

func TestQuery_Params(t *testing.T) {
	params, err := Query{Status: "active", City: " Austin ", Search: "lee", Sort: "age", Desc: true}.Params()
	require.NoError(t, err)
	assert.Equal(t, api.ListPatientsParams{
		Status:   "active",
		City:     "Austin",
		Search:   "lee",
		Ordering: "-date_of_birth",
		Page:     1,
	}, params)

	_, err = Query{Sort: "unknown"}.Params()
	assert.ErrorIs(t, err, ErrUnknownSortColumn)
}

func TestListKey(t *testing.T) {
	a := listKey(api.ListPatientsParams{Page: 2, Status: "active", City: "Austin"})
	b := listKey(api.ListPatientsParams{Page: 2, City: "Austin", Status: "active"})
	assert.Equal(t, a, b)
	assert.Equal(t, "patients/city=Austin&page=2&status=active", a)
	assert.NotEqual(t, a, listKey(api.ListPatientsParams{Page: 3, Status: "active", City: "Austin"}))
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.count, tt.size), "count=%d size=%d", tt.count, tt.size)
	}
}
