package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFieldValuesKeepsClientOrder(t *testing.T) {
	var fv FieldValues
	err := json.Unmarshal([]byte(`{"zeta":"1","alpha":2,"mid":null,"alpha":"again"}`), &fv)
	require.NoError(t, err)

	require.Len(t, fv, 3)
	assert.Equal(t, "zeta", fv[0].Placeholder)
	assert.Equal(t, "alpha", fv[1].Placeholder)
	assert.Equal(t, "again", fv[1].Value)
	assert.Equal(t, "mid", fv[2].Placeholder)
	assert.Nil(t, fv[2].Value)

	out, err := json.Marshal(fv)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":"1","alpha":"again","mid":null}`, string(out))
}

func TestFieldValuesRejectsNonObject(t *testing.T) {
	var fv FieldValues
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &fv))
}

func TestFieldValuesNullAndNil(t *testing.T) {
	var fv FieldValues
	require.NoError(t, json.Unmarshal([]byte(`null`), &fv))
	assert.Nil(t, fv)

	out, err := json.Marshal(FieldValues(nil))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestFieldValuesBSONPreservesOrderAndNumbers(t *testing.T) {
	var fv FieldValues
	require.NoError(t, json.Unmarshal([]byte(`{"cnp":1234567890,"name":"Valentin","score":9.5}`), &fv))

	raw, err := bson.Marshal(Submission{ID: "s1", CompletedDynamicFields: fv})
	require.NoError(t, err)

	var decoded Submission
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	require.Len(t, decoded.CompletedDynamicFields, 3)
	assert.Equal(t, "cnp", decoded.CompletedDynamicFields[0].Placeholder)
	assert.Equal(t, int64(1234567890), decoded.CompletedDynamicFields[0].Value)
	assert.Equal(t, "name", decoded.CompletedDynamicFields[1].Placeholder)
	assert.Equal(t, 9.5, decoded.CompletedDynamicFields[2].Value)
}

func TestFieldValuesBSONNestedValues(t *testing.T) {
	var fv FieldValues
	require.NoError(t, json.Unmarshal([]byte(`{"adresa":{"oras":"Cluj","nr":12},"opt":["a",{"b":1}]}`), &fv))

	raw, err := bson.Marshal(Submission{ID: "s1", CompletedDynamicFields: fv})
	require.NoError(t, err)

	var decoded Submission
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	adresa, ok := decoded.CompletedDynamicFields.Lookup("adresa")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"oras": "Cluj", "nr": int64(12)}, adresa)

	opt, ok := decoded.CompletedDynamicFields.Lookup("opt")
	require.True(t, ok)
	assert.Equal(t, []any{"a", map[string]any{"b": int64(1)}}, opt)

	out, err := json.Marshal(decoded.CompletedDynamicFields)
	require.NoError(t, err)
	assert.JSONEq(t, `{"adresa":{"oras":"Cluj","nr":12},"opt":["a",{"b":1}]}`, string(out))
	assert.Equal(t, `{"nr":12,"oras":"Cluj"}`, StringifyValue(adresa))
}

func TestStringifyValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"Valentin", "Valentin"},
		{json.Number("1234567890"), "1234567890"},
		{float64(1234567890), "1234567890"},
		{2.5, "2.5"},
		{int64(7), "7"},
		{int32(8), "8"},
		{true, "true"},
		{[]any{"a", "b"}, "[a b]"},
		{map[string]any{"oras": "Cluj"}, `{"oras":"Cluj"}`},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StringifyValue(c.in))
	}
}

func TestDynamicFieldShape(t *testing.T) {
	choice := DynamicField{Placeholder: "anul", Type: FieldSingleChoice, Options: []string{"1"}, Keywords: []string{"ignored"}}
	keyword := DynamicField{Placeholder: "nume", Type: FieldText, Keywords: []string{"name"}}

	assert.Equal(t, ChoiceShape{Options: []string{"1"}}, choice.Shape())
	assert.Equal(t, KeywordShape{Keywords: []string{"name"}}, keyword.Shape())
}
