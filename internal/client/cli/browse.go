package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iudanet/patientdesk/internal/client/filters"
	"github.com/iudanet/patientdesk/internal/client/patients"
	"github.com/iudanet/patientdesk/internal/models"
)

const browseHelp = `Commands:
  search <text>    filter by name (applied after a short pause)
  city <name>      filter by city (applied after a short pause)
  state <name>     filter by state (applied after a short pause)
  status <status>  filter by status (applied at once)
  clear            remove all filters
  sort <column> [desc]
  page <n> | next | prev
  :q               quit`

type inputLine struct {
	err  error
	text string
}

// browser: состояние интерактивного списка
type browser struct {
	cli     *Cli
	filters *filters.Filters
	sort    string
	page    int
	pages   int
	desc    bool
}

func (c *Cli) runBrowse(ctx context.Context) error {
	changed := make(chan struct{}, 1)
	f := filters.New(c.filterOptions(func(filters.State) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})...)
	defer f.Close()

	b := &browser{cli: c, filters: f, page: 1}

	// ввод читается в отдельной горутине, чтобы применённые по таймеру фильтры
	// перерисовывали список, не дожидаясь следующей строки
	next := make(chan struct{}, 1)
	lines := make(chan inputLine, 1)
	go c.readLines("browse> ", next, lines)
	defer close(next)

	c.io.Println("Type ? for help.")
	if err := b.reload(ctx); err != nil {
		return err
	}
	next <- struct{}{}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-changed:
			b.page = 1
			if err := b.reload(ctx); err != nil {
				return err
			}

		case in := <-lines:
			if in.err != nil {
				if !errors.Is(in.err, io.EOF) {
					return fmt.Errorf("failed to read input: %w", in.err)
				}
				return b.finish(ctx, changed)
			}

			quit, err := b.handle(ctx, in.text)
			if err != nil {
				return err
			}
			if quit {
				return b.finish(ctx, changed)
			}
			next <- struct{}{}
		}
	}
}

func (c *Cli) readLines(prompt string, next <-chan struct{}, out chan<- inputLine) {
	for range next {
		text, err := c.io.ReadInput(prompt)
		out <- inputLine{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// finish применяет недождавшиеся фильтры и, если они что-то поменяли, показывает итоговую страницу.
func (b *browser) finish(ctx context.Context, changed <-chan struct{}) error {
	b.filters.Flush()
	select {
	case <-changed:
		b.page = 1
		return b.reload(ctx)
	default:
		return nil
	}
}

func (b *browser) handle(ctx context.Context, line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case ":q", "quit", "exit":
		return true, nil
	case "?", "help":
		b.cli.io.Println(browseHelp)
	case "search":
		b.filters.SetSearch(arg)
	case "city":
		b.filters.SetCity(arg)
	case "state":
		b.filters.SetState(arg)
	case "status":
		if arg != "" && !models.Status(arg).Valid() {
			b.cli.io.Printf("Unknown status %q, use one of: %s\n", arg, statusNames())
			return false, nil
		}
		b.filters.SetStatus(arg)
	case "clear":
		b.filters.ClearAll()
	case "sort":
		col, dir, _ := strings.Cut(arg, " ")
		if _, err := patients.SortKey(col, false); err != nil {
			b.cli.io.Printf("Cannot sort by %q, use one of: %s\n", col, strings.Join(patients.SortColumns, ", "))
			return false, nil
		}
		b.sort, b.desc, b.page = col, strings.TrimSpace(dir) == "desc", 1
		return false, b.reload(ctx)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			b.cli.io.Printf("Invalid page %q\n", arg)
			return false, nil
		}
		return false, b.goTo(ctx, n)
	case "next":
		return false, b.goTo(ctx, b.page+1)
	case "prev":
		return false, b.goTo(ctx, b.page-1)
	default:
		b.cli.io.Printf("Unknown command %q. Type ? for help.\n", cmd)
	}
	return false, nil
}

func (b *browser) goTo(ctx context.Context, page int) error {
	if page < 1 || (b.pages > 0 && page > b.pages) {
		b.cli.io.Println("No such page.")
		return nil
	}
	b.page = page
	return b.reload(ctx)
}

// reload показывает текущую страницу. Ошибки загрузки выводятся, но не прерывают просмотр.
func (b *browser) reload(ctx context.Context) error {
	applied := b.filters.Applied()
	page, err := b.cli.patients.List(ctx, patients.Query{
		Status: applied.Status,
		City:   applied.City,
		State:  applied.State,
		Search: applied.Search,
		Sort:   b.sort,
		Desc:   b.desc,
		Page:   b.page,
	})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		b.cli.printError(err, "patients")
		return nil
	}

	b.pages = page.TotalPages
	if !applied.IsZero() {
		b.cli.io.Println(styles.Muted.Render(describeFilters(applied)))
	}
	b.cli.printPage(page)
	return nil
}

func describeFilters(s filters.State) string {
	parts := make([]string, 0, 4)
	for _, f := range []struct{ name, value string }{
		{"status", s.Status},
		{"city", s.City},
		{"state", s.State},
		{"search", s.Search},
	} {
		if f.value != "" {
			parts = append(parts, f.name+"="+f.value)
		}
	}
	return "Filters: " + strings.Join(parts, " ")
}
