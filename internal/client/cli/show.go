package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/iudanet/patientdesk/internal/client/fields"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

var patientTmpl = template.Must(template.New("patient").Parse(patientTemplate))

type customValueView struct {
	Name     string
	Value    string
	Required bool
}

type patientView struct {
	Name             string
	Status           string
	DateOfBirth      string
	Age              string
	LastVisit        string
	Address          string
	ISI              string
	Custom           []customValueView
	ID               int64
	ReadyToDischarge bool
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid patient id %q", arg)
	}
	return id, nil
}

func (c *Cli) runShow(ctx context.Context, id int64) error {
	patient, err := c.patients.Get(ctx, id)
	if err != nil {
		return describe(err, "patient")
	}

	// без определений пациент всё равно показывается, поля показываются по номерам
	defs, err := c.fields.Definitions(ctx)
	if err != nil {
		c.printError(err, "custom fields")
	}

	return c.printPatient(*patient, defs)
}

func (c *Cli) printPatient(p api.Patient, defs []models.FieldDefinition) error {
	view := patientView{
		ID:               p.ID,
		Name:             models.FullName(p),
		Status:           statusBadge(p.Status),
		DateOfBirth:      p.DateOfBirth,
		LastVisit:        lastVisit(p),
		Address:          formatAddress(p),
		ISI:              formatISI(p),
		Custom:           customValues(defs, models.CustomValuesFieldSet(p.CustomFieldValues)),
		ReadyToDischarge: p.ReadyToDischarge,
	}
	if age, ok := models.Age(p.DateOfBirth, c.now()); ok {
		view.Age = strconv.Itoa(age)
	}

	if err := patientTmpl.Execute(c.io, view); err != nil {
		return fmt.Errorf("failed to render patient: %w", err)
	}
	return nil
}

func formatAddress(p api.Patient) string {
	a, ok := models.PrimaryAddress(p)
	if !ok {
		return "-"
	}
	parts := make([]string, 0, 4)
	for _, s := range []string{a.AddressLine1, a.AddressLine2, a.City, strings.TrimSpace(a.State + " " + a.PostalCode)} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func formatISI(p api.Patient) string {
	s, ok := models.LatestISI(p)
	if !ok || s.Score == nil {
		return "-"
	}
	if s.Date == "" {
		return strconv.Itoa(*s.Score)
	}
	return fmt.Sprintf("%d (%s)", *s.Score, s.Date)
}

// customValues перечисляет известные определения по порядку, затем значения,
// определение которых клиенту неизвестно.
func customValues(defs []models.FieldDefinition, values models.FieldSet) []customValueView {
	out := make([]customValueView, 0, len(defs))
	byID := fields.DefinitionsByID(defs)

	for _, d := range defs {
		v, _ := values.Get(d.ID)
		out = append(out, customValueView{Name: d.Name, Value: displayValue(v), Required: d.Required})
	}
	for _, f := range values {
		if _, ok := byID[f.ID]; !ok {
			out = append(out, customValueView{Name: "field #" + string(f.ID), Value: displayValue(f.Value)})
		}
	}
	return out
}

func displayValue(v models.Value) string {
	if v.IsBlank() {
		return "-"
	}
	return v.String()
}
