package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/iudanet/patientdesk/internal/client/cache"
	"github.com/iudanet/patientdesk/internal/client/fields"
	"github.com/iudanet/patientdesk/internal/client/iocli"
	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/client/storage/storagetest"
	"github.com/iudanet/patientdesk/internal/config"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

var testNow = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

// console: вывод команд и заранее заданный ввод
type console struct {
	out    bytes.Buffer
	inputs []string
	mu     sync.Mutex
}

func (c *console) write(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.Write(p)
}

func (c *console) next() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	line := c.inputs[0]
	c.inputs = c.inputs[1:]
	return line, nil
}

func (c *console) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.out.String()
}

func newConsole(inputs ...string) (*iocli.IOMock, *console) {
	con := &console{inputs: inputs}
	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) {
			con.write([]byte(fmt.Sprintln(a...)))
		},
		PrintfFunc: func(format string, a ...any) {
			con.write([]byte(fmt.Sprintf(format, a...)))
		},
		WriteFunc: func(p []byte) (int, error) {
			con.write(p)
			return len(p), nil
		},
		ReadInputFunc: func(prompt string) (string, error) {
			return con.next()
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return con.next()
		},
		IsInteractiveFunc: func() bool { return false },
	}
	return mock, con
}

func testConfig() *config.Config {
	return &config.Config{
		APIBaseURL:        "http://api.test",
		CachePath:         "test.db",
		LogLevel:          "info",
		Debounce:          config.DefaultDebounce,
		FilterDebounce:    config.DefaultFilterDebounce,
		StaleTime:         config.DefaultStaleTime,
		HTTPTimeout:       config.DefaultHTTPTimeout,
		ReadRetries:       config.DefaultReadRetries,
		DefinitionRetries: config.DefaultDefinitionRetries,
		PageSize:          config.DefaultPageSize,
	}
}

func newTestCli(t *testing.T, out iocli.IO, p patients.Service, f fields.Service) *Cli {
	t.Helper()
	qc := cache.New(storagetest.NewCacheStorage())
	t.Cleanup(qc.Close)

	c := New(Deps{
		IO:       out,
		Patients: p,
		Fields:   f,
		Cache:    qc,
		Config:   testConfig(),
		Logger:   zerolog.Nop(),
	})
	c.now = func() time.Time { return testNow }
	return c
}

var testDefs = []models.FieldDefinition{
	{ID: "5", Name: "Allergies"},
	{ID: "6", Name: "Notes", Required: true},
}

func testPatient() api.Patient {
	return api.Patient{
		ID:          1,
		FirstName:   "Ann",
		MiddleName:  "Marie",
		LastName:    "Lee",
		DateOfBirth: "1990-05-01",
		Status:      api.StatusActive,
		Addresses: []api.Address{
			{AddressLine1: "1 Main St", City: "Austin", State: "TX", PostalCode: "73301"},
		},
		ISIScores: []api.ISIScore{{Score: intPtr(12), Date: "2024-01-01"}},
		CustomFieldValues: []api.CustomFieldValue{
			{ID: int64Ptr(50), Patient: int64Ptr(1), FieldDefinition: 5, Value: "None"},
		},
	}
}

// fakeServer хранит одного пациента так, как его хранил бы REST API
type fakeServer struct {
	saveErr   error
	patient   api.Patient
	nextValue int64
	mu        sync.Mutex
}

func newFakeServer() *fakeServer {
	return &fakeServer{patient: testPatient(), nextValue: 100}
}

func (f *fakeServer) snapshot() *api.Patient {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *fakeServer) snapshotLocked() *api.Patient {
	p := f.patient
	p.Addresses = slices.Clone(p.Addresses)
	p.ISIScores = slices.Clone(p.ISIScores)
	p.CustomFieldValues = slices.Clone(p.CustomFieldValues)
	return &p
}

func (f *fakeServer) patientsService() *patients.ServiceMock {
	return &patients.ServiceMock{
		GetFunc: func(ctx context.Context, id int64) (*api.Patient, error) {
			return f.snapshot(), nil
		},
		RefetchFunc: func(ctx context.Context, id int64) (*api.Patient, error) {
			return f.snapshot(), nil
		},
		SaveCustomValueFunc: func(ctx context.Context, v api.CustomFieldValue) (*api.CustomFieldValue, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.saveErr != nil {
				return nil, f.saveErr
			}
			for i := range f.patient.CustomFieldValues {
				if f.patient.CustomFieldValues[i].FieldDefinition == v.FieldDefinition {
					f.patient.CustomFieldValues[i].Value = v.Value
					saved := f.patient.CustomFieldValues[i]
					return &saved, nil
				}
			}
			f.nextValue++
			v.ID = int64Ptr(f.nextValue)
			f.patient.CustomFieldValues = append(f.patient.CustomFieldValues, v)
			return &v, nil
		},
		UpdateFunc: func(ctx context.Context, p api.Patient, defs []models.FieldDefinition) (*api.Patient, error) {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.saveErr != nil {
				return nil, f.saveErr
			}
			f.patient.FirstName = p.FirstName
			f.patient.MiddleName = p.MiddleName
			f.patient.LastName = p.LastName
			f.patient.DateOfBirth = p.DateOfBirth
			f.patient.Status = p.Status
			f.patient.LastVisit = p.LastVisit
			f.patient.Addresses = slices.Clone(p.Addresses)
			f.patient.ISIScores = slices.Clone(p.ISIScores)
			return f.snapshotLocked(), nil
		},
	}
}

// fieldsService отдаёт testDefs и добавляет созданные поля к списку
func fieldsService() *fields.ServiceMock {
	var (
		mu   sync.Mutex
		defs = slices.Clone(testDefs)
	)
	return &fields.ServiceMock{
		DefinitionsFunc: func(ctx context.Context) ([]models.FieldDefinition, error) {
			mu.Lock()
			defer mu.Unlock()
			return slices.Clone(defs), nil
		},
		RefreshFunc: func(ctx context.Context) ([]models.FieldDefinition, error) {
			mu.Lock()
			defer mu.Unlock()
			return slices.Clone(defs), nil
		},
		CreateFunc: func(ctx context.Context, name string, seeder fields.Seeder) (models.FieldDefinition, error) {
			mu.Lock()
			def := models.FieldDefinition{ID: models.FieldIDFromInt(int64(10 + len(defs))), Name: name}
			defs = append(defs, def)
			mu.Unlock()
			if seeder == nil {
				return def, nil
			}
			return def, seeder.Seed(def.ID)
		},
	}
}
