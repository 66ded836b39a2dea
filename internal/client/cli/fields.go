package cli

import "context"

func (c *Cli) runFieldsList(ctx context.Context, refresh bool) error {
	load := c.fields.Definitions
	if refresh {
		load = c.fields.Refresh
	}

	defs, err := load(ctx)
	if err != nil {
		return describe(err, "custom fields")
	}

	if len(defs) == 0 {
		c.io.Println("No custom fields defined.")
		c.io.Println()
		c.io.Println("Use 'patientdesk fields add <name>' to create one.")
		return nil
	}

	t := newTable("ID", "Name", "Required")
	for _, d := range defs {
		required := ""
		if d.Required {
			required = "yes"
		}
		t.addRow(string(d.ID), d.Name, required)
	}
	c.io.Printf("%s", t.render())
	return nil
}

func (c *Cli) runFieldsAdd(ctx context.Context, name string) error {
	def, err := c.fields.Create(ctx, name, nil)
	if err != nil {
		return describe(err, "custom fields")
	}

	c.io.Println(styles.Ok.Render("✓ Custom field created"))
	c.io.Printf("ID:   %s\n", def.ID)
	c.io.Printf("Name: %s\n", def.Name)
	return nil
}
