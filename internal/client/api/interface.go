package api

import (
	"context"

	"github.com/iudanet/patientdesk/pkg/api"
)

//go:generate moq -out client_mock.go . ClientAPI

// ClientAPI описывает операции REST API, которые использует клиент.
type ClientAPI interface {
	ListPatients(ctx context.Context, params api.ListPatientsParams) (*api.PatientPage, error)
	GetPatient(ctx context.Context, id int64) (*api.Patient, error)
	CreatePatient(ctx context.Context, data api.PatientData) (*api.Patient, error)
	UpdatePatient(ctx context.Context, id int64, data api.PatientData) (*api.Patient, error)
	ListCustomFields(ctx context.Context) ([]api.CustomField, error)
	CreateCustomField(ctx context.Context, name string) (*api.CustomField, error)
	SaveCustomFieldValue(ctx context.Context, value api.CustomFieldValue) (*api.CustomFieldValue, error)
}

var _ ClientAPI = (*Client)(nil)
