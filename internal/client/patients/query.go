package patients

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iudanet/patientdesk/pkg/api"
)

// DefaultPageSize: размер страницы списка пациентов на сервере
const DefaultPageSize = 10

// ErrUnknownSortColumn возвращается для колонки, по которой нельзя сортировать
var ErrUnknownSortColumn = errors.New("unknown sort column")

// sortKeys сопоставляет колонки таблицы ключам сортировки API
var sortKeys = map[string]string{
	"name":       "last_name",
	"status":     "status",
	"location":   "addresses__city",
	"age":        "date_of_birth",
	"last_visit": "last_visit",
}

// SortColumns перечисляет колонки, доступные для сортировки
var SortColumns = []string{"name", "status", "location", "age", "last_visit"}

// SortKey возвращает ключ сортировки API для колонки; desc добавляет префикс "-".
// Пустая колонка означает порядок сервера по умолчанию.
func SortKey(column string, desc bool) (string, error) {
	column = strings.ToLower(strings.TrimSpace(column))
	if column == "" {
		return "", nil
	}

	key, ok := sortKeys[column]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSortColumn, column)
	}
	if desc {
		key = "-" + key
	}
	return key, nil
}

// Query описывает фильтры, сортировку и страницу списка
type Query struct {
	Status string
	City   string
	State  string
	Search string
	Sort   string // колонка таблицы: name, status, location, age, last_visit
	Page   int
	Desc   bool
}

// Params строит параметры запроса списка. Страницы нумеруются с 1.
func (q Query) Params() (api.ListPatientsParams, error) {
	ordering, err := SortKey(q.Sort, q.Desc)
	if err != nil {
		return api.ListPatientsParams{}, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	return api.ListPatientsParams{
		Status:   strings.TrimSpace(q.Status),
		City:     strings.TrimSpace(q.City),
		State:    strings.TrimSpace(q.State),
		Search:   strings.TrimSpace(q.Search),
		Ordering: ordering,
		Page:     page,
	}, nil
}

// listKey returns the cache key of one list page. Ключи страниц лежат под ListKeyPrefix,
// поэтому инвалидация префикса сбрасывает все страницы.
func listKey(p api.ListPatientsParams) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(p.Page))
	for k, val := range map[string]string{
		"status":   p.Status,
		"city":     p.City,
		"state":    p.State,
		"search":   p.Search,
		"ordering": p.Ordering,
	} {
		if val != "" {
			v.Set(k, val)
		}
	}
	return ListKeyPrefix + "/" + v.Encode()
}

// patientKey возвращает ключ кэша одного пациента
func patientKey(id int64) string {
	return fmt.Sprintf("%s/%d", PatientKeyPrefix, id)
}

// totalPages равно ceil(count / pageSize)
func totalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
