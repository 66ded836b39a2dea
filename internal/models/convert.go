package models

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/iudanet/patientdesk/pkg/api"
)

// Id полей группы общих данных пациента
const (
	FieldFirstName   FieldID = "first_name"
	FieldMiddleName  FieldID = "middle_name"
	FieldLastName    FieldID = "last_name"
	FieldDateOfBirth FieldID = "date_of_birth"
	FieldStatus      FieldID = "status"
	FieldLastVisit   FieldID = "last_visit"
)

// GeneralFieldIDs перечисляет общие поля в порядке отображения
var GeneralFieldIDs = []FieldID{
	FieldFirstName, FieldMiddleName, FieldLastName,
	FieldDateOfBirth, FieldStatus, FieldLastVisit,
}

// Id полей группы адреса
const (
	FieldAddressLine1 FieldID = "address_line1"
	FieldAddressLine2 FieldID = "address_line2"
	FieldCity         FieldID = "city"
	FieldState        FieldID = "state"
	FieldPostalCode   FieldID = "postal_code"
)

// AddressFieldIDs перечисляет поля адреса в порядке отображения
var AddressFieldIDs = []FieldID{
	FieldAddressLine1, FieldAddressLine2, FieldCity, FieldState, FieldPostalCode,
}

// Id полей группы оценки ISI
const (
	FieldScore FieldID = "score"
	FieldDate  FieldID = "date"
)

// ISIFieldIDs перечисляет поля оценки ISI
var ISIFieldIDs = []FieldID{FieldScore, FieldDate}

// Списки пациента. Id поля элемента совпадает с путём ошибки формы: "addresses[0].city".
const (
	GroupAddresses = "addresses"
	GroupISIScores = "isi_scores"
)

// ItemFieldID возвращает id поля элемента списка
func ItemFieldID(group string, index int, id FieldID) FieldID {
	return FieldID(fmt.Sprintf("%s[%d].%s", group, index, id))
}

// ParseItemFieldID разбирает id вида "group[index].field"
func ParseItemFieldID(id FieldID) (group string, index int, field FieldID, ok bool) {
	head, rest, found := strings.Cut(string(id), "].")
	if !found || rest == "" {
		return "", 0, "", false
	}
	group, num, found := strings.Cut(head, "[")
	if !found || group == "" {
		return "", 0, "", false
	}
	index, err := strconv.Atoi(num)
	if err != nil || index < 0 {
		return "", 0, "", false
	}
	return group, index, FieldID(rest), true
}

// ItemCount возвращает число элементов группы в fs: наибольший индекс плюс один
func ItemCount(group string, fs FieldSet) int {
	n := 0
	for _, f := range fs {
		if g, i, _, ok := ParseItemFieldID(f.ID); ok && g == group && i >= n {
			n = i + 1
		}
	}
	return n
}

func itemsFieldSet(group string, items []FieldSet) FieldSet {
	fs := make(FieldSet, 0)
	for i, item := range items {
		for _, f := range item {
			fs = append(fs, Field{ID: ItemFieldID(group, i, f.ID), Value: f.Value})
		}
	}
	return fs
}

// splitItems раскладывает поля группы по индексам элементов, остальные пропускает
func splitItems(group string, fs FieldSet) map[int]FieldSet {
	items := make(map[int]FieldSet)
	for _, f := range fs {
		g, i, id, ok := ParseItemFieldID(f.ID)
		if !ok || g != group {
			continue
		}
		items[i] = append(items[i], Field{ID: id, Value: f.Value})
	}
	return items
}

// DefinitionFromAPI преобразует определение поля из формата API
func DefinitionFromAPI(cf api.CustomField) FieldDefinition {
	return FieldDefinition{
		ID:       FieldIDFromInt(cf.ID),
		Name:     cf.Name,
		Required: cf.Required,
	}
}

// CustomValuesFieldSet строит FieldSet значений с ключом по id определения
func CustomValuesFieldSet(values []api.CustomFieldValue) FieldSet {
	fs := make(FieldSet, 0, len(values))
	for _, v := range values {
		id := FieldIDFromInt(v.FieldDefinition)
		if fs.Has(id) {
			// сервер гарантирует уникальность (patient, field_definition); дубликаты игнорируем
			continue
		}
		fs = append(fs, Field{ID: id, Value: StringValue(v.Value)})
	}
	return fs
}

// ApplyCustomValues накладывает fs на существующие значения: у существующих
// сохраняются серверные id, новые добавляются без id. Значения вне fs остаются.
func ApplyCustomValues(existing []api.CustomFieldValue, fs FieldSet, patientID int64) []api.CustomFieldValue {
	out := make([]api.CustomFieldValue, len(existing))
	copy(out, existing)

	for _, f := range fs {
		defID, ok := f.ID.Int()
		if !ok {
			continue
		}
		found := false
		for i := range out {
			if out[i].FieldDefinition == defID {
				out[i].Value = f.Value.String()
				found = true
				break
			}
		}
		if !found {
			pid := patientID
			out = append(out, api.CustomFieldValue{
				FieldDefinition: defID,
				Patient:         &pid,
				Value:           f.Value.String(),
			})
		}
	}
	return out
}

// GeneralFieldSet извлекает общие данные пациента
func GeneralFieldSet(p api.Patient) FieldSet {
	lastVisit := ""
	if p.LastVisit != nil {
		lastVisit = *p.LastVisit
	}
	return FieldSet{
		{ID: FieldFirstName, Value: StringValue(p.FirstName)},
		{ID: FieldMiddleName, Value: StringValue(p.MiddleName)},
		{ID: FieldLastName, Value: StringValue(p.LastName)},
		{ID: FieldDateOfBirth, Value: StringValue(p.DateOfBirth)},
		{ID: FieldStatus, Value: StringValue(p.Status)},
		{ID: FieldLastVisit, Value: StringValue(lastVisit)},
	}
}

// ApplyGeneral записывает общие данные в копию пациента
func ApplyGeneral(p api.Patient, fs FieldSet) api.Patient {
	for _, f := range fs {
		s := f.Value.String()
		switch f.ID {
		case FieldFirstName:
			p.FirstName = s
		case FieldMiddleName:
			p.MiddleName = s
		case FieldLastName:
			p.LastName = s
		case FieldDateOfBirth:
			p.DateOfBirth = s
		case FieldStatus:
			p.Status = s
		case FieldLastVisit:
			if s == "" {
				p.LastVisit = nil
			} else {
				lv := s
				p.LastVisit = &lv
			}
		}
	}
	return p
}

// AddressFieldSet извлекает один адрес как FieldSet
func AddressFieldSet(a api.Address) FieldSet {
	return FieldSet{
		{ID: FieldAddressLine1, Value: StringValue(a.AddressLine1)},
		{ID: FieldAddressLine2, Value: StringValue(a.AddressLine2)},
		{ID: FieldCity, Value: StringValue(a.City)},
		{ID: FieldState, Value: StringValue(a.State)},
		{ID: FieldPostalCode, Value: StringValue(a.PostalCode)},
	}
}

// ApplyAddress записывает FieldSet адреса в копию a
func ApplyAddress(a api.Address, fs FieldSet) api.Address {
	for _, f := range fs {
		s := f.Value.String()
		switch f.ID {
		case FieldAddressLine1:
			a.AddressLine1 = s
		case FieldAddressLine2:
			a.AddressLine2 = s
		case FieldCity:
			a.City = s
		case FieldState:
			a.State = s
		case FieldPostalCode:
			a.PostalCode = s
		}
	}
	return a
}

// AddressesFieldSet извлекает все адреса пациента одним FieldSet
func AddressesFieldSet(list []api.Address) FieldSet {
	items := make([]FieldSet, len(list))
	for i, a := range list {
		items[i] = AddressFieldSet(a)
	}
	return itemsFieldSet(GroupAddresses, items)
}

// ApplyAddresses записывает поля адресов в копию list. Элемент с индексом
// за концом списка добавляется, серверный id у него пустой.
func ApplyAddresses(list []api.Address, fs FieldSet) []api.Address {
	items := splitItems(GroupAddresses, fs)
	out := slices.Clone(list)
	for _, i := range slices.Sorted(maps.Keys(items)) {
		for len(out) <= i {
			out = append(out, api.Address{})
		}
		out[i] = ApplyAddress(out[i], items[i])
	}
	return out
}

// ISIFieldSet извлекает одну оценку ISI; отсутствующая оценка даёт пустую строку
func ISIFieldSet(s api.ISIScore) FieldSet {
	score := StringValue("")
	if s.Score != nil {
		score = NumberValue(float64(*s.Score))
	}
	return FieldSet{
		{ID: FieldScore, Value: score},
		{ID: FieldDate, Value: StringValue(s.Date)},
	}
}

// ApplyISI записывает FieldSet оценки ISI в копию s.
// Нечисловая оценка сбрасывается, чтобы её отметила валидация.
func ApplyISI(s api.ISIScore, fs FieldSet) api.ISIScore {
	for _, f := range fs {
		switch f.ID {
		case FieldScore:
			s.Score = nil
			if n, ok := f.Value.Float(); ok {
				score := int(n)
				s.Score = &score
			} else if n, err := strconv.Atoi(f.Value.String()); err == nil {
				s.Score = &n
			}
		case FieldDate:
			s.Date = f.Value.String()
		}
	}
	return s
}

// ISIScoresFieldSet извлекает все оценки ISI пациента одним FieldSet
func ISIScoresFieldSet(list []api.ISIScore) FieldSet {
	items := make([]FieldSet, len(list))
	for i, score := range list {
		items[i] = ISIFieldSet(score)
	}
	return itemsFieldSet(GroupISIScores, items)
}

// ApplyISIScores записывает поля оценок в копию list, новые элементы добавляются в конец
func ApplyISIScores(list []api.ISIScore, fs FieldSet) []api.ISIScore {
	items := splitItems(GroupISIScores, fs)
	out := slices.Clone(list)
	for _, i := range slices.Sorted(maps.Keys(items)) {
		for len(out) <= i {
			out = append(out, api.ISIScore{})
		}
		out[i] = ApplyISI(out[i], items[i])
	}
	return out
}

// ScoreValue приводит введённую оценку к виду, в котором её отдаёт сервер:
// целое становится числом, остальное остаётся строкой.
func ScoreValue(s string) Value {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return NumberValue(float64(n))
	}
	return StringValue(s)
}
