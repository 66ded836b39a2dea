package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

// newPatientPrompts: поля, которые create спрашивает, если не задан ни один --set
var newPatientPrompts = []models.FieldID{
	models.FieldFirstName,
	models.FieldLastName,
	models.FieldDateOfBirth,
	models.FieldStatus,
}

func (c *Cli) runCreate(ctx context.Context, sets []string) error {
	defs, err := c.fields.Definitions(ctx)
	if err != nil {
		return describe(err, "custom fields")
	}

	if len(sets) == 0 {
		if sets, err = c.promptPatient(); err != nil {
			return err
		}
	}

	edits := make([]fieldEdit, 0, len(sets))
	for _, line := range sets {
		e, err := parseEdit(defs, line)
		if err != nil {
			return err
		}
		edits = append(edits, e)
	}

	created, err := c.patients.Create(ctx, newPatient(edits), defs)
	if err != nil {
		return describe(err, "patient")
	}

	c.io.Println(styles.Ok.Render(fmt.Sprintf("✓ Created patient #%d", created.ID)))
	return c.printPatient(*created, defs)
}

func (c *Cli) promptPatient() ([]string, error) {
	sets := make([]string, 0, len(newPatientPrompts))
	for _, id := range newPatientPrompts {
		prompt := string(id) + ": "
		if id == models.FieldStatus {
			prompt = fmt.Sprintf("%s [%s]: ", id, api.StatusInquiry)
		}

		value, err := c.io.ReadInput(prompt)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		sets = append(sets, string(id)+"="+value)
	}
	return sets, nil
}

// newPatient собирает нового пациента из присваиваний. Без статуса пациент
// создаётся в статусе inquiry.
func newPatient(edits []fieldEdit) api.Patient {
	var general, addresses, scores, custom models.FieldSet
	for _, e := range edits {
		switch {
		case e.custom:
			custom = custom.With(e.id, models.StringValue(e.value))
		case e.group == models.GroupAddresses:
			addresses = addresses.With(models.ItemFieldID(e.group, e.index, e.id), models.StringValue(e.value))
		case e.group == models.GroupISIScores:
			v := models.StringValue(e.value)
			if e.id == models.FieldScore {
				v = models.ScoreValue(e.value)
			}
			scores = scores.With(models.ItemFieldID(e.group, e.index, e.id), v)
		default:
			general = general.With(e.id, models.StringValue(e.value))
		}
	}

	p := models.ApplyGeneral(api.Patient{
		Addresses:         []api.Address{},
		ISIScores:         []api.ISIScore{},
		CustomFieldValues: []api.CustomFieldValue{},
	}, general)
	if p.Status == "" {
		p.Status = api.StatusInquiry
	}
	p.Addresses = models.ApplyAddresses(p.Addresses, addresses)
	p.ISIScores = models.ApplyISIScores(p.ISIScores, scores)
	p.CustomFieldValues = models.ApplyCustomValues(p.CustomFieldValues, custom, 0)
	for i := range p.CustomFieldValues {
		// пациента ещё нет, связь проставит сервер
		p.CustomFieldValues[i].Patient = nil
	}
	return p
}
