package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDuplicateFieldID возвращается, когда FieldSet содержит один и тот же id дважды
var ErrDuplicateFieldID = errors.New("duplicate field id")

// FieldID непрозрачный ключ поля, уникальный в FieldSet и стабильный между обновлениями
type FieldID string

// FieldIDFromInt преобразует числовой идентификатор API в FieldID
func FieldIDFromInt(id int64) FieldID {
	return FieldID(strconv.FormatInt(id, 10))
}

// Int возвращает числовую форму id, если она есть
func (id FieldID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValueKind различает строковые и числовые значения
type ValueKind uint8

const (
	KindString ValueKind = iota // строка (значение по умолчанию)
	KindNumber                  // число
)

// Value представляет скалярное значение поля: строку или число.
// Нулевое Value равно пустой строке.
type Value struct {
	str  string
	num  float64
	kind ValueKind
}

// StringValue создает строковое Value
func StringValue(s string) Value {
	return Value{str: s, kind: KindString}
}

// NumberValue создает числовое Value
func NumberValue(n float64) Value {
	return Value{num: n, kind: KindNumber}
}

// Kind возвращает вид значения
func (v Value) Kind() ValueKind {
	return v.kind
}

// Float возвращает число; для строк ok равно false
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String возвращает текстовую форму значения
func (v Value) String() string {
	if v.kind == KindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// Equal сравнивает вид и значение. "1" и 1 считаются разными.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindNumber {
		return v.num == other.num
	}
	return v.str == other.str
}

// IsBlank сообщает, что v строка, пустая после обрезки пробелов
func (v Value) IsBlank() bool {
	return v.kind == KindString && strings.TrimSpace(v.str) == ""
}

// MarshalJSON кодирует строки как JSON строки, числа как JSON числа
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON принимает JSON строку, число или null (как "")
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*v = StringValue("")
		return nil
	case strings.HasPrefix(trimmed, `"`):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode string value: %w", err)
		}
		*v = StringValue(s)
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("value must be a string or a number: %w", err)
		}
		*v = NumberValue(n)
		return nil
	}
}

// Field представляет одну запись FieldSet
type Field struct {
	ID    FieldID `json:"id"`
	Value Value   `json:"value"`
}

// FieldSet упорядоченный набор полей с ключом FieldID.
// Методы не меняют получателя, изменяющие операции возвращают копию.
type FieldSet []Field

// NewFieldSet собирает FieldSet из полей, сохраняя порядок
func NewFieldSet(fields ...Field) FieldSet {
	fs := make(FieldSet, len(fields))
	copy(fs, fields)
	return fs
}

func (fs FieldSet) index(id FieldID) int {
	for i := range fs {
		if fs[i].ID == id {
			return i
		}
	}
	return -1
}

// Get возвращает значение поля по id
func (fs FieldSet) Get(id FieldID) (Value, bool) {
	if i := fs.index(id); i >= 0 {
		return fs[i].Value, true
	}
	return Value{}, false
}

// Has сообщает, есть ли поле в наборе
func (fs FieldSet) Has(id FieldID) bool {
	return fs.index(id) >= 0
}

// With возвращает копию fs, где id имеет значение v. Новые id добавляются в конец.
func (fs FieldSet) With(id FieldID, v Value) FieldSet {
	out := fs.Clone()
	if i := out.index(id); i >= 0 {
		out[i].Value = v
		return out
	}
	return append(out, Field{ID: id, Value: v})
}

// Without возвращает копию fs без поля id
func (fs FieldSet) Without(id FieldID) FieldSet {
	out := make(FieldSet, 0, len(fs))
	for _, f := range fs {
		if f.ID != id {
			out = append(out, f)
		}
	}
	return out
}

// Clone возвращает независимую копию
func (fs FieldSet) Clone() FieldSet {
	out := make(FieldSet, len(fs))
	copy(out, fs)
	return out
}

// IDs возвращает id полей по порядку
func (fs FieldSet) IDs() []FieldID {
	ids := make([]FieldID, 0, len(fs))
	for _, f := range fs {
		ids = append(ids, f.ID)
	}
	return ids
}

// Equal сообщает, что наборы содержат одни и те же id с равными значениями.
// Порядок не учитывается.
func (fs FieldSet) Equal(other FieldSet) bool {
	if len(fs) != len(other) {
		return false
	}
	for _, f := range fs {
		v, ok := other.Get(f.ID)
		if !ok || !v.Equal(f.Value) {
			return false
		}
	}
	return true
}

// Validate проверяет, что каждый id непустой и встречается один раз
func (fs FieldSet) Validate() error {
	seen := make(map[FieldID]struct{}, len(fs))
	for _, f := range fs {
		if f.ID == "" {
			return fmt.Errorf("field id cannot be empty")
		}
		if _, ok := seen[f.ID]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateFieldID, f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// String выводит набор как {id=value, ...} для логов и CLI
func (fs FieldSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%q", f.ID, f.Value.String())
	}
	b.WriteByte('}')
	return b.String()
}
