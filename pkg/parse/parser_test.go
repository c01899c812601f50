package parse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/typeparse/pkg/types"
)

func leafReason(t *testing.T, r Result) string {
	t.Helper()
	o, ok := r.Outcome()
	require.True(t, ok, "expected leaf result")
	reason, ok := o.Reason()
	require.True(t, ok, "expected rejection, got %s", o)
	return reason
}

func leafValue(t *testing.T, r Result) types.Value {
	t.Helper()
	o, ok := r.Outcome()
	require.True(t, ok, "expected leaf result")
	v, ok := o.Value()
	require.True(t, ok, "expected acceptance, got %s", o)
	return v
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name       string
		input      types.Value
		wantValue  *types.Value
		wantReason string
	}{
		{"integer", types.Int(5), ptr(types.Int(5)), ""},
		{"zero", types.Int(0), nil, types.ReasonZero},
		{"numeric text", types.Text("100"), ptr(types.Int(100)), ""},
		{"padded numeric text", types.Text(" -3 "), ptr(types.Int(-3)), ""},
		{"zero text", types.Text("0"), nil, types.ReasonZero},
		{"non-numeric text", types.Text("dog"), nil, types.ReasonNotNumeric},
		{"empty text", types.Text(""), nil, types.ReasonNotNumeric},
		{"fraction text", types.Text("1.5"), nil, types.ReasonNotNumeric},
		{"object", types.Object(nil), nil, types.ReasonUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Number(tt.input)
			if tt.wantValue != nil {
				assert.Equal(t, *tt.wantValue, leafValue(t, r))
				return
			}
			assert.Equal(t, tt.wantReason, leafReason(t, r))
		})
	}
}

func ptr(v types.Value) *types.Value { return &v }

func TestString(t *testing.T) {
	assert.Equal(t, types.Text("hello"), leafValue(t, String(types.Text("hello"))))
	assert.Equal(t, types.ReasonDog, leafReason(t, String(types.Text("dog"))))
	assert.Equal(t, types.ReasonUnsupported, leafReason(t, String(types.Int(1))))
	assert.Equal(t, types.ReasonUnsupported, leafReason(t, String(types.Object(nil))))
}

// exampleSchema and exampleInput cover every object parser path: numeric
// strings, missing parsers, nested objects and schema keys without input.
func exampleSchema() Schema {
	return Schema{
		"dog": Number,
		"cat": String,
		"obj": ObjectOf(Schema{
			"sup":     Number,
			"chicken": Number,
		}),
		"horse": String,
		"rat":   String,
	}
}

func exampleInput(t *testing.T) types.Value {
	t.Helper()
	v, err := types.ParseJSON([]byte(`{
		"dog": "dog",
		"cat": "hello",
		"obj": {"sup": 1, "chicken": "100", "eel": "hello"},
		"yo": "meh",
		"rat": "dog"
	}`))
	require.NoError(t, err)
	return v
}

func TestObjectOf(t *testing.T) {
	r := ObjectOf(exampleSchema())(exampleInput(t))

	require.True(t, r.IsObject())
	assert.Equal(t, []string{"cat", "dog", "obj", "rat", "yo"}, r.Keys())

	field := func(r Result, key string) Result {
		t.Helper()
		child, ok := r.Field(key)
		require.True(t, ok, "missing key %q", key)
		return child
	}

	assert.Equal(t, types.ReasonNotNumeric, leafReason(t, field(r, "dog")))
	assert.Equal(t, types.Text("hello"), leafValue(t, field(r, "cat")))
	assert.Equal(t, types.ReasonNoParser, leafReason(t, field(r, "yo")))
	assert.Equal(t, types.ReasonDog, leafReason(t, field(r, "rat")))

	_, ok := r.Field("horse")
	assert.False(t, ok, "schema keys absent from the input are not reported")

	obj := field(r, "obj")
	require.True(t, obj.IsObject())
	assert.Equal(t, types.Int(1), leafValue(t, field(obj, "sup")))
	assert.Equal(t, types.Int(100), leafValue(t, field(obj, "chicken")))
	assert.Equal(t, types.ReasonNoParser, leafReason(t, field(obj, "eel")))

	assert.False(t, r.Accepted())
}

func TestObjectOfNonObject(t *testing.T) {
	r := ObjectOf(Schema{"a": Number})(types.Int(3))
	assert.False(t, r.IsObject())
	assert.Equal(t, types.ReasonUnsupported, leafReason(t, r))
}

func TestObjectOfNilParser(t *testing.T) {
	r := ObjectOf(Schema{"a": nil})(types.Object(map[string]types.Value{"a": types.Int(1)}))
	a, ok := r.Field("a")
	require.True(t, ok)
	assert.Equal(t, types.ReasonNoParser, leafReason(t, a))
}

func TestAuto(t *testing.T) {
	v := types.Object(map[string]types.Value{
		"n":    types.Int(0),
		"s":    types.Text("cat"),
		"deep": types.Object(map[string]types.Value{"pet": types.Text("dog")}),
	})
	r := Auto(v)

	n, _ := r.Field("n")
	assert.Equal(t, types.ReasonZero, leafReason(t, n))
	s, _ := r.Field("s")
	assert.Equal(t, types.Text("cat"), leafValue(t, s))
	deep, _ := r.Field("deep")
	pet, _ := deep.Field("pet")
	assert.Equal(t, types.ReasonDog, leafReason(t, pet))

	assert.Equal(t, types.ReasonUnsupported, leafReason(t, Auto(types.Value{})))
	assert.True(t, Auto(types.Int(1)).Accepted())
	assert.True(t, Auto(types.Object(nil)).Accepted())
}

func TestResultString(t *testing.T) {
	r := Fields(map[string]Result{
		"b": Leaf(types.Reject[types.Value](types.ReasonZero)),
		"a": Fields(map[string]Result{
			"x": Leaf(types.Accept(types.Int(1))),
		}),
		"c": Fields(nil),
	})
	want := "{\n" +
		"  a: {\n" +
		"    x: ValidationOutcome { accepted: true, value: 1, reason: none },\n" +
		"  },\n" +
		"  b: ValidationOutcome { accepted: false, value: none, reason: \"Can't be 0\" },\n" +
		"  c: {},\n" +
		"}"
	assert.Equal(t, want, r.String())
}

func TestResultJSON(t *testing.T) {
	r := ObjectOf(Schema{"n": Number})(types.Object(map[string]types.Value{
		"n": types.Text("7"),
		"x": types.Int(1),
	}))
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"n": {"accepted": true, "value": 7},
		"x": {"accepted": false, "reason": "No associated callback parser function"}
	}`, string(data))
}
