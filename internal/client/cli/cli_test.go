package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/internal/validation"
	"github.com/iudanet/patientdesk/pkg/api"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  fmt.Errorf("get patient: %w", &models.TransportError{Status: http.StatusNotFound}),
			want: "Patient not found. Please try again later.",
		},
		{
			name: "server message",
			err:  &models.TransportError{Status: http.StatusConflict, Message: "Patient was changed"},
			want: "Patient was changed",
		},
		{
			name: "field errors from server",
			err: &models.TransportError{
				Status:      http.StatusBadRequest,
				FieldErrors: map[string][]string{"first_name": {"This field may not be blank."}},
			},
			want: "first_name: This field may not be blank.",
		},
		{
			name: "local validation",
			err:  validation.ValidatePatient(api.Patient{LastName: "Lee", DateOfBirth: "1990-01-01", Status: "active"}, nil).Err(),
			want: "first_name: First name is required",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := describe(tt.err, "patient")
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.err, errors.Unwrap(err))
		})
	}
}

func TestCli_printError_FormErrors(t *testing.T) {
	mockIO, out := newConsole()
	c := &Cli{io: mockIO}

	fe := validation.ValidatePatient(api.Patient{DateOfBirth: "01/02/1990", Status: "active"}, nil)
	c.printError(fmt.Errorf("save: %w", fe), "patient")

	text := out.String()
	assert.Contains(t, text, "Please fix the following:")
	assert.Contains(t, text, "  date_of_birth: Date of birth must be in YYYY-MM-DD format")
	assert.Contains(t, text, "  first_name: First name is required")
	assert.Contains(t, text, "  last_name: Last name is required")
}

func TestCli_printError_Transport(t *testing.T) {
	mockIO, out := newConsole()
	c := &Cli{io: mockIO}

	c.printError(&models.TransportError{Status: http.StatusForbidden}, "custom fields")
	assert.Contains(t, out.String(), "Error: You do not have permission to access custom fields.")
}

func TestStatusBadge(t *testing.T) {
	for _, s := range models.Statuses {
		assert.Contains(t, statusBadge(string(s)), string(s))
	}
	assert.Equal(t, "archived", statusBadge("archived"))
}

func TestTable_Render(t *testing.T) {
	tbl := newTable("ID", "Name")
	tbl.addRow("1", "Ann Lee")
	tbl.addRow("22", "Bob")

	lines := strings.Split(strings.TrimSuffix(tbl.render(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[2], "Ann Lee")
	assert.Contains(t, lines[3], "Bob")
}
