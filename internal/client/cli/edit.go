package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/iudanet/patientdesk/internal/client/session"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/internal/reconcile"
)

// ErrUnsaved возвращается edit, если часть правок отклонена или не отправлена
var ErrUnsaved = errors.New("some changes were not saved")

const editHelp = `Commands:
  name=value   set a field (general: first_name, middle_name, last_name,
               date_of_birth, status, last_visit; custom: by field name)
  addresses[N].field=value
               set an address field (address_line1, address_line2, city,
               state, postal_code); N equal to the address count adds one
  isi_scores[N].field=value
               set an ISI score field (score, date)
  +name        add a custom field
  :p           print the form
  :w           save now and wait for the server
  :r           reload the patient from the server
  :q           save and quit`

// fieldEdit: разобранная строка name=value. Для элементов списков group и index
// указывают элемент, id поле внутри него.
type fieldEdit struct {
	id     models.FieldID
	value  string
	group  string
	index  int
	custom bool
}

// itemFields: допустимые поля элементов списков пациента
var itemFields = map[string][]models.FieldID{
	models.GroupAddresses: models.AddressFieldIDs,
	models.GroupISIScores: models.ISIFieldIDs,
}

// errorLog копит ошибки воркера сессии до следующего вывода
type errorLog struct {
	errs []error
	mu   sync.Mutex
}

func (l *errorLog) add(err error) {
	l.mu.Lock()
	l.errs = append(l.errs, err)
	l.mu.Unlock()
}

func (l *errorLog) take() []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	errs := l.errs
	l.errs = nil
	return errs
}

func (c *Cli) runEdit(ctx context.Context, id int64, sets []string) error {
	log := &errorLog{}

	s, err := session.Open(ctx, session.Deps{
		Patients: c.patients,
		Fields:   c.fields,
		Logger:   c.logger,
	}, id, c.sessionOptions(log.add)...)
	if err != nil {
		return describe(err, "patient")
	}

	closed := false
	defer func() {
		if !closed {
			cctx, cancel := closeContext(ctx)
			defer cancel()
			_ = s.Close(cctx)
		}
	}()

	if len(sets) > 0 {
		// сначала разбираем все присваивания, чтобы опечатка не отправила половину правок
		edits := make([]fieldEdit, 0, len(sets))
		for _, line := range sets {
			e, err := parseEdit(s.Definitions(), line)
			if err != nil {
				return err
			}
			edits = append(edits, e)
		}
		for _, e := range edits {
			if err := applyEdit(s, e); err != nil {
				return err
			}
		}
	} else if err := c.editLoop(ctx, s, log); err != nil {
		return err
	}

	closed = true
	cctx, cancel := closeContext(ctx)
	defer cancel()
	if err := s.Close(cctx); err != nil {
		return fmt.Errorf("failed to send pending changes: %w", err)
	}

	if c.printErrors(log) > 0 {
		return ErrUnsaved
	}

	return c.printPatient(s.Patient(), s.Definitions())
}

func (c *Cli) editLoop(ctx context.Context, s *session.Session, log *errorLog) error {
	p := s.Patient()
	c.io.Printf("Editing %s (#%d). Type ? for help.\n", models.FullName(p), p.ID)
	c.printForm(s)

	for {
		c.printErrors(log)

		line, err := c.io.ReadInput("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		switch {
		case line == "":
		case line == ":q":
			return nil
		case line == "?" || line == "help":
			c.io.Println(editHelp)
		case line == ":p":
			c.printForm(s)
		case line == ":r":
			s.Refresh()
		case line == ":w":
			if err := s.Wait(ctx); err != nil {
				return err
			}
			if c.printErrors(log) == 0 {
				c.io.Println(styles.Ok.Render("✓ Saved"))
			}
		case strings.HasPrefix(line, "+"):
			def, err := s.CreateField(ctx, strings.TrimPrefix(line, "+"))
			if err != nil {
				c.printError(err, "custom fields")
				continue
			}
			c.io.Printf("Added field %q, set it with: %s=<value>\n", def.Name, def.Name)
		default:
			e, err := parseEdit(s.Definitions(), line)
			if err == nil {
				err = applyEdit(s, e)
			}
			if err != nil {
				c.io.Println(styles.Error.Render("Error: " + err.Error()))
			}
		}
	}
}

// printErrors печатает накопленные ошибки сохранения и возвращает их количество.
func (c *Cli) printErrors(log *errorLog) int {
	errs := log.take()
	for _, err := range errs {
		c.printError(err, "patient")
	}
	return len(errs)
}

// parseEdit разбирает "name=value". Общие поля и поля списков ищутся по id
// ("addresses[0].city"), пользовательские по имени без учёта регистра или по "#<id>".
func parseEdit(defs []models.FieldDefinition, line string) (fieldEdit, error) {
	name, value, ok := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fieldEdit{}, fmt.Errorf("expected name=value, got %q", line)
	}
	value = strings.TrimSpace(value)

	if id := models.FieldID(strings.ToLower(name)); slices.Contains(models.GeneralFieldIDs, id) {
		return fieldEdit{id: id, value: value}, nil
	}

	if group, index, field, ok := models.ParseItemFieldID(models.FieldID(strings.ToLower(name))); ok {
		if slices.Contains(itemFields[group], field) {
			return fieldEdit{id: field, value: value, group: group, index: index}, nil
		}
		return fieldEdit{}, fmt.Errorf("%w %q", session.ErrUnknownField, name)
	}

	if num, found := strings.CutPrefix(name, "#"); found {
		for _, d := range defs {
			if string(d.ID) == num {
				return fieldEdit{id: d.ID, value: value, custom: true}, nil
			}
		}
	}
	for _, d := range defs {
		if strings.EqualFold(d.Name, name) {
			return fieldEdit{id: d.ID, value: value, custom: true}, nil
		}
	}
	return fieldEdit{}, fmt.Errorf("%w %q", session.ErrUnknownField, name)
}

func applyEdit(s *session.Session, e fieldEdit) error {
	switch {
	case e.custom:
		return s.EditCustom(e.id, e.value)
	case e.group == models.GroupAddresses:
		return s.EditAddress(e.index, e.id, e.value)
	case e.group == models.GroupISIScores:
		return s.EditISI(e.index, e.id, e.value)
	default:
		return s.EditGeneral(e.id, e.value)
	}
}

func (c *Cli) printForm(s *session.Session) {
	snap := s.Snapshot()

	t := newTable("Field", "Value", "")
	for _, id := range models.GeneralFieldIDs {
		v, _ := snap.General.Draft.Get(id)
		t.addRow(string(id), displayValue(v), stateMarker(snap.General.States[id]))
	}
	for _, items := range []struct {
		group  string
		fields []models.FieldID
		snap   reconcile.Snapshot
	}{
		{models.GroupAddresses, models.AddressFieldIDs, snap.Addresses},
		{models.GroupISIScores, models.ISIFieldIDs, snap.ISI},
	} {
		for i := range models.ItemCount(items.group, items.snap.Draft) {
			for _, f := range items.fields {
				id := models.ItemFieldID(items.group, i, f)
				v, _ := items.snap.Draft.Get(id)
				t.addRow(string(id), displayValue(v), stateMarker(items.snap.States[id]))
			}
		}
	}
	for _, d := range s.Definitions() {
		v, _ := snap.Custom.Draft.Get(d.ID)
		name := d.Name
		if d.Required {
			name += "*"
		}
		t.addRow(name, displayValue(v), stateMarker(snap.Custom.States[d.ID]))
	}
	c.io.Printf("%s", t.render())
}

func stateMarker(st models.SyncState) string {
	switch st {
	case models.Dirty:
		return styles.Muted.Render("unsaved")
	case models.InFlight:
		return styles.Muted.Render("saving")
	default:
		return ""
	}
}
