package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same string", StringValue("a"), StringValue("a"), true},
		{"different string", StringValue("a"), StringValue("b"), false},
		{"same number", NumberValue(3), NumberValue(3), true},
		{"string vs number", StringValue("3"), NumberValue(3), false},
		{"zero value is empty string", Value{}, StringValue(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}

func TestValue_IsBlank(t *testing.T) {
	assert.True(t, StringValue("").IsBlank())
	assert.True(t, StringValue(" \t").IsBlank())
	assert.False(t, StringValue("x").IsBlank())
	assert.False(t, NumberValue(0).IsBlank())
}

func TestValue_JSON(t *testing.T) {
	var fs []Field
	err := json.Unmarshal([]byte(`[{"id":"1","value":"text"},{"id":"2","value":12.5},{"id":"3","value":null}]`), &fs)
	require.NoError(t, err)
	require.Len(t, fs, 3)

	assert.Equal(t, KindString, fs[0].Value.Kind())
	assert.Equal(t, "text", fs[0].Value.String())

	n, ok := fs[1].Value.Float()
	require.True(t, ok)
	assert.InDelta(t, 12.5, n, 0)

	assert.True(t, fs[2].Value.Equal(StringValue("")))

	out, err := json.Marshal(fs[:2])
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1","value":"text"},{"id":"2","value":12.5}]`, string(out))

	var bad Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &bad))
}

func TestFieldSet_EqualIgnoresOrder(t *testing.T) {
	a := FieldSet{{ID: "1", Value: StringValue("A")}, {ID: "2", Value: NumberValue(2)}}
	b := FieldSet{{ID: "2", Value: NumberValue(2)}, {ID: "1", Value: StringValue("A")}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(b[:1]))
	assert.False(t, a.Equal(FieldSet{{ID: "1", Value: StringValue("A")}, {ID: "2", Value: StringValue("2")}}))
}

func TestFieldSet_WithAndWithoutDoNotMutate(t *testing.T) {
	orig := NewFieldSet(Field{ID: "1", Value: StringValue("A")})

	updated := orig.With("1", StringValue("B")).With("2", StringValue("C"))
	assert.Equal(t, "A", orig[0].Value.String())
	assert.Equal(t, []FieldID{"1", "2"}, updated.IDs())

	v, ok := updated.Get("1")
	require.True(t, ok)
	assert.Equal(t, "B", v.String())

	removed := updated.Without("1")
	assert.Equal(t, []FieldID{"2"}, removed.IDs())
	assert.Len(t, updated, 2)
}

func TestFieldSet_CloneNeverNil(t *testing.T) {
	var fs FieldSet
	assert.NotNil(t, fs.Clone())
}

func TestFieldSet_Validate(t *testing.T) {
	ok := FieldSet{{ID: "1"}, {ID: "2"}}
	assert.NoError(t, ok.Validate())

	dup := FieldSet{{ID: "1"}, {ID: "1"}}
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateFieldID)

	empty := FieldSet{{ID: ""}}
	assert.Error(t, empty.Validate())
}

func TestFieldSet_String(t *testing.T) {
	fs := FieldSet{{ID: "1", Value: StringValue("a b")}, {ID: "score", Value: NumberValue(7)}}
	assert.Equal(t, `{1="a b", score="7"}`, fs.String())
}

func TestFieldID_Int(t *testing.T) {
	id := FieldIDFromInt(42)
	assert.Equal(t, FieldID("42"), id)

	n, ok := id.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok = FieldFirstName.Int()
	assert.False(t, ok)
}

func TestSyncState(t *testing.T) {
	assert.False(t, Clean.Touched())
	assert.True(t, Dirty.Touched())
	assert.True(t, InFlight.Touched())
	assert.Equal(t, "in_flight", InFlight.String())
}
