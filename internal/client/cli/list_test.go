package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

func TestCli_runList_WithPatients(t *testing.T) {
	ctx := context.Background()
	mockIO, out := newConsole()

	second := api.Patient{
		ID:          2,
		FirstName:   "Bob",
		LastName:    "Stone",
		DateOfBirth: "not a date",
		Status:      api.StatusChurned,
	}
	visit := "2025-12-01"
	first := testPatient()
	first.LastVisit = &visit

	mockPatients := &patients.ServiceMock{
		ListFunc: func(ctx context.Context, q patients.Query) (*patients.Page, error) {
			return &patients.Page{
				Patients:   []api.Patient{first, second},
				Count:      1234,
				TotalPages: 124,
				Page:       3,
			}, nil
		},
	}

	c := newTestCli(t, mockIO, mockPatients, nil)
	err := c.runList(ctx, listOptions{page: 3})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Ann M. Lee")
	assert.Contains(t, text, "Bob Stone")
	assert.Contains(t, text, "Austin, TX")
	assert.Contains(t, text, "2025-12-01")
	assert.Contains(t, text, "35")
	assert.Contains(t, text, "churned")
	assert.Contains(t, text, "Page 3 of 124 (1,234 patients)")
}

func TestCli_runList_Empty(t *testing.T) {
	mockIO, out := newConsole()
	mockPatients := &patients.ServiceMock{
		ListFunc: func(ctx context.Context, q patients.Query) (*patients.Page, error) {
			return &patients.Page{Page: 1}, nil
		},
	}

	c := newTestCli(t, mockIO, mockPatients, nil)
	require.NoError(t, c.runList(context.Background(), listOptions{}))
	assert.Contains(t, out.String(), "No patients found.")
}

func TestCli_runList_PassesQuery(t *testing.T) {
	mockIO, _ := newConsole()

	var got patients.Query
	mockPatients := &patients.ServiceMock{
		ListFunc: func(ctx context.Context, q patients.Query) (*patients.Page, error) {
			got = q
			return &patients.Page{Page: 2}, nil
		},
	}

	c := newTestCli(t, mockIO, mockPatients, nil)
	err := c.runList(context.Background(), listOptions{
		status: "active",
		city:   "Austin",
		state:  "TX",
		search: "lee",
		sort:   "age",
		page:   2,
		desc:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, patients.Query{
		Status: "active",
		City:   "Austin",
		State:  "TX",
		Search: "lee",
		Sort:   "age",
		Page:   2,
		Desc:   true,
	}, got)
}

func TestCli_runList_UnknownStatus(t *testing.T) {
	mockIO, _ := newConsole()
	mockPatients := &patients.ServiceMock{}

	c := newTestCli(t, mockIO, mockPatients, nil)
	err := c.runList(context.Background(), listOptions{status: "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "archived"`)
	assert.Contains(t, err.Error(), "inquiry, onboarding, active, churned")
	assert.Empty(t, mockPatients.ListCalls())
}

func TestCli_runList_UnknownSortColumn(t *testing.T) {
	mockIO, _ := newConsole()
	mockPatients := &patients.ServiceMock{
		ListFunc: func(ctx context.Context, q patients.Query) (*patients.Page, error) {
			_, err := q.Params()
			return nil, err
		},
	}

	c := newTestCli(t, mockIO, mockPatients, nil)
	err := c.runList(context.Background(), listOptions{sort: "weight"})
	require.ErrorIs(t, err, patients.ErrUnknownSortColumn)
	assert.Contains(t, err.Error(), "name, status, location, age, last_visit")
}

func TestCli_runList_TransportError(t *testing.T) {
	mockIO, _ := newConsole()
	transportErr := &models.TransportError{Status: http.StatusBadGateway}
	mockPatients := &patients.ServiceMock{
		ListFunc: func(ctx context.Context, q patients.Query) (*patients.Page, error) {
			return nil, transportErr
		},
	}

	c := newTestCli(t, mockIO, mockPatients, nil)
	err := c.runList(context.Background(), listOptions{})
	require.Error(t, err)
	assert.Equal(t, "Failed to load patients. Please try again later.", err.Error())

	var tErr *models.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.StatusBadGateway, tErr.Status)
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name      string
		addresses []api.Address
		want      string
	}{
		{name: "no address", want: "-"},
		{name: "city and state", addresses: []api.Address{{City: "Austin", State: "TX"}}, want: "Austin, TX"},
		{name: "city only", addresses: []api.Address{{City: "Austin"}}, want: "Austin"},
		{name: "state only", addresses: []api.Address{{State: "TX"}}, want: "TX"},
		{name: "first address wins", addresses: []api.Address{{City: "Austin"}, {City: "Boston"}}, want: "Austin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, location(api.Patient{Addresses: tt.addresses}))
		})
	}
}
