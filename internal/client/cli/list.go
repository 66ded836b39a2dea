package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/models"
	"github.com/iudanet/patientdesk/pkg/api"
)

// listOptions: флаги команды list
type listOptions struct {
	status string
	city   string
	state  string
	search string
	sort   string
	page   int
	desc   bool
}

func (o listOptions) query() (patients.Query, error) {
	if o.status != "" && !models.Status(o.status).Valid() {
		return patients.Query{}, fmt.Errorf("unknown status %q, use one of: %s", o.status, statusNames())
	}
	return patients.Query{
		Status: o.status,
		City:   o.city,
		State:  o.state,
		Search: o.search,
		Sort:   o.sort,
		Page:   o.page,
		Desc:   o.desc,
	}, nil
}

func statusNames() string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func (c *Cli) runList(ctx context.Context, opts listOptions) error {
	q, err := opts.query()
	if err != nil {
		return err
	}

	page, err := c.patients.List(ctx, q)
	if errors.Is(err, patients.ErrUnknownSortColumn) {
		return fmt.Errorf("%w, use one of: %s", err, strings.Join(patients.SortColumns, ", "))
	}
	if err != nil {
		return describe(err, "patients")
	}

	c.printPage(page)
	return nil
}

func (c *Cli) printPage(page *patients.Page) {
	if len(page.Patients) == 0 {
		c.io.Println("No patients found.")
		return
	}

	t := newTable("ID", "Name", "Status", "Age", "Location", "Last visit")
	for _, p := range page.Patients {
		t.addRow(
			strconv.FormatInt(p.ID, 10),
			models.FullName(p),
			statusBadge(p.Status),
			c.age(p),
			location(p),
			lastVisit(p),
		)
	}
	c.io.Printf("%s", t.render())
	c.io.Printf("Page %d of %d (%s patients)\n", page.Page, page.TotalPages, humanize.Comma(int64(page.Count)))
}

func (c *Cli) age(p api.Patient) string {
	age, ok := models.Age(p.DateOfBirth, c.now())
	if !ok {
		return "-"
	}
	return strconv.Itoa(age)
}

func location(p api.Patient) string {
	addr, ok := models.PrimaryAddress(p)
	if !ok {
		return "-"
	}
	switch {
	case addr.City != "" && addr.State != "":
		return addr.City + ", " + addr.State
	case addr.City != "":
		return addr.City
	case addr.State != "":
		return addr.State
	}
	return "-"
}

func lastVisit(p api.Patient) string {
	if p.LastVisit == nil || *p.LastVisit == "" {
		return "-"
	}
	return *p.LastVisit
}
