package library

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	lib := Builtin()

	t.Run("known key", func(t *testing.T) {
		def, err := lib.Lookup("int.add")
		require.NoError(t, err)
		assert.Equal(t, "add", def.Label())
		assert.Equal(t, DomainInt, def.Domain())
		assert.Equal(t, []string{"a", "b"}, def.Inputs())
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := lib.Lookup("int.nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDefinitionNotFound))
		assert.Contains(t, err.Error(), "int.nope")
	})
}

func TestRegister(t *testing.T) {
	noop := func(map[string]int) int { return 0 }

	tests := []struct {
		name    string
		def     Definition
		wantErr bool
	}{
		{"valid", NewInt("int.zero", "zero", nil, noop), false},
		{"no namespace", NewInt("zero", "zero", nil, noop), true},
		{"wrong namespace", NewInt("string.zero", "zero", nil, noop), true},
		{"unknown namespace", NewInt("float.zero", "zero", nil, noop), true},
		{"duplicate", NewInt("int.one", "one", nil, noop), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Builtin().Register(tt.def)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestKeysKeepRegistrationOrder(t *testing.T) {
	lib := New().MustRegister(
		NewString("string.b", "b", nil, func(map[string]string) string { return "b" }),
		NewString("string.a", "a", nil, func(map[string]string) string { return "a" }),
	)

	assert.Equal(t, []string{"string.b", "string.a"}, lib.Keys())
	assert.Equal(t, 2, lib.Len())
	assert.Equal(t, "string.a", lib.Definitions()[1].Key())
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	def := NewInt("int.x", "x", nil, func(map[string]int) int { return 0 })
	assert.Panics(t, func() {
		New().MustRegister(def, def)
	})
}

func TestBuiltinEvaluate(t *testing.T) {
	lib := Builtin()

	tests := []struct {
		key    string
		inputs map[string]Value
		want   Value
	}{
		{"int.ten", nil, Int(10)},
		{"int.add", map[string]Value{"a": Int(2), "b": Int(3)}, Int(5)},
		{"int.subtract", map[string]Value{"a": Int(2), "b": Int(3)}, Int(-1)},
		{"int.multiply", map[string]Value{"a": Int(4), "b": Int(3)}, Int(12)},
		{"int.double", map[string]Value{"a": Int(10)}, Int(20)},
		{"int.double", nil, Int(0)},
		{"int.double", map[string]Value{"a": String("21")}, Int(42)},
		{"int.double", map[string]Value{"a": String("abc")}, Int(0)},
		{"int.negate", map[string]Value{"a": Int(7)}, Int(-7)},
		{"int.output", map[string]Value{"value": Int(9)}, Int(9)},
		{"string.hello", nil, String("hello")},
		{"string.capitalise", map[string]Value{"a": String("hello")}, String("Hello")},
		{"string.capitalise", nil, String("")},
		{"string.uppercase", map[string]Value{"a": String("abc")}, String("ABC")},
		{"string.reverse", map[string]Value{"a": String("abc")}, String("cba")},
		{"string.concat", map[string]Value{"a": String("foo"), "b": Int(1)}, String("foo1")},
		{"string.output", map[string]Value{"value": String("x")}, String("x")},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			def, err := lib.Lookup(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.Evaluate(tt.inputs))
		})
	}
}

func TestIsOutput(t *testing.T) {
	lib := Builtin()
	for _, key := range []string{"int.output", "string.output"} {
		def, err := lib.Lookup(key)
		require.NoError(t, err)
		assert.True(t, IsOutput(def), key)
	}

	def, err := lib.Lookup("int.add")
	require.NoError(t, err)
	assert.False(t, IsOutput(def))
}

func TestRegisterConstant(t *testing.T) {
	lib := New()

	require.NoError(t, lib.RegisterConstant(Constant{Key: "int.answer", Label: "answer", Value: Int(42)}))
	require.NoError(t, lib.RegisterConstant(Constant{Key: "string.name", Label: "name", Value: String("nodework")}))
	assert.Error(t, lib.RegisterConstant(Constant{Key: "int.none", Label: "none"}))

	def, err := lib.Lookup("int.answer")
	require.NoError(t, err)
	assert.Empty(t, def.Inputs())
	assert.Equal(t, Int(42), def.Evaluate(nil))

	def, err = lib.Lookup("string.name")
	require.NoError(t, err)
	assert.Equal(t, String("nodework"), def.Evaluate(nil))
}

func TestValue(t *testing.T) {
	assert.True(t, NoOutput.IsNone())
	assert.Equal(t, "", NoOutput.String())
	assert.Equal(t, "20", Int(20).String())
	assert.Equal(t, Int(0), Zero(DomainInt))
	assert.Equal(t, String(""), Zero(DomainString))
	assert.Equal(t, Int(5), String("5").Coerce(DomainInt))
	assert.Equal(t, String("5"), Int(5).Coerce(DomainString))

	for _, tt := range []struct {
		v    Value
		want string
	}{
		{Int(3), "3"},
		{String("x"), `"x"`},
		{NoOutput, "null"},
	} {
		b, err := tt.v.MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(b))
	}
}
