package state

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMap(t *testing.T) {
	bag, err := FromMap(map[string]interface{}{
		"employee":     "Alice",
		"nrOfHolidays": 5,
		"approved":     true,
	})
	require.NoError(t, err)

	employee, err := bag.String("employee")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", employee)

	days, err := bag.Int("nrOfHolidays")
	assert.NoError(t, err)
	assert.EqualValues(t, 5, days)

	approved, err := bag.Bool("approved")
	assert.NoError(t, err)
	assert.True(t, approved)

	_, err = FromMap(map[string]interface{}{"ratio": 1.5})
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}

func TestBag_TypedAccessors(t *testing.T) {
	bag := Bag{"approved": String("yes")}

	tests := []struct {
		name string
		call func() error
	}{
		{name: "absent", call: func() error { _, err := bag.Bool("missing"); return err }},
		{name: "wrong kind", call: func() error { _, err := bag.Bool("approved"); return err }},
		{name: "wrong int", call: func() error { _, err := bag.Int("approved"); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), ErrMissingVariable)
		})
	}
}

func TestBag_Merge(t *testing.T) {
	bag := Bag{"employee": String("Alice"), "nrOfHolidays": Int(5)}
	bag.Merge(Bag{"approved": Bool(false), "nrOfHolidays": Int(3)})

	assert.Equal(t, []string{"approved", "employee", "nrOfHolidays"}, bag.Names())
	assert.Equal(t, map[string]interface{}{
		"employee":     "Alice",
		"nrOfHolidays": int64(3),
		"approved":     false,
	}, bag.Map())
}

func TestBag_CloneIsIndependent(t *testing.T) {
	bag := Bag{"employee": String("Alice")}
	clone := bag.Clone()
	clone.Set("employee", String("Bob"))
	name, _ := bag.String("employee")
	assert.Equal(t, "Alice", name)
}

func TestBag_JSON(t *testing.T) {
	bag := Bag{"employee": String("Alice"), "nrOfHolidays": Int(5), "approved": Bool(true)}
	data, err := json.Marshal(bag)
	require.NoError(t, err)
	assert.JSONEq(t, `{"employee":"Alice","nrOfHolidays":5,"approved":true}`, string(data))

	var decoded Bag
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, bag, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"ratio":1.5}`), &decoded))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "5", Int(5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "trip", String("trip").String())
	assert.Equal(t, "<invalid>", Value{}.String())
	assert.Equal(t, "integer", Int(1).Kind().String())
}

func TestOf(t *testing.T) {
	testCases := []struct {
		description string
		input       interface{}
		expect      Value
		expectErr   bool
	}{
		{description: "int", input: 5, expect: Int(5)},
		{description: "negative int8", input: int8(-3), expect: Int(-3)},
		{description: "uint32", input: uint32(7), expect: Int(7)},
		{description: "uint64 at int64 max", input: uint64(math.MaxInt64), expect: Int(math.MaxInt64)},
		{description: "uint64 overflow", input: uint64(math.MaxUint64), expectErr: true},
		{description: "float", input: 1.5, expectErr: true},
	}

	for _, testCase := range testCases {
		actual, err := Of(testCase.input)
		if testCase.expectErr {
			assert.ErrorIs(t, err, ErrUnsupportedType, testCase.description)
			assert.False(t, actual.IsValid(), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}
