package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayPrimitives(t *testing.T) {
	assert.Equal(t, "", Display(nil))
	assert.Equal(t, "hello", Display("hello"))
	assert.Equal(t, "42", Display(float64(42)))
	assert.Equal(t, "3.14", Display(3.14))
	assert.Equal(t, "true", Display(true))
}

func TestDisplayName(t *testing.T) {
	name := map[string]interface{}{
		"prefix": "Dr.",
		"first":  "Jane",
		"middle": "",
		"last":   "Doe",
	}
	assert.Equal(t, "Dr. Jane Doe", Display(name))

	onlyFirst := map[string]interface{}{"first": "Jane"}
	assert.Equal(t, "Jane", Display(onlyFirst))
}

func TestDisplayPhone(t *testing.T) {
	assert.Equal(t, "(555) 1234567", Display(map[string]interface{}{
		"area":  "555",
		"phone": "1234567",
	}))
	assert.Equal(t, "1234567", Display(map[string]interface{}{
		"phone": "1234567",
	}))
}

func TestDisplayAddress(t *testing.T) {
	addr := map[string]interface{}{
		"addr_line1": "1 Main St",
		"addr_line2": "",
		"city":       "Springfield",
		"state":      "IL",
		"postal":     "62701",
		"country":    "USA",
	}
	assert.Equal(t, "1 Main St, Springfield, IL, 62701, USA", Display(addr))
}

func TestDisplayUnknownObjectFallsBackToJSON(t *testing.T) {
	out := Display(map[string]interface{}{"foo": "bar"})
	assert.JSONEq(t, `{"foo":"bar"}`, out)
}

func TestDisplayList(t *testing.T) {
	assert.Equal(t, "a, b", Display([]interface{}{"a", "", "b"}))
}

func TestDisplayIdempotentOnStrings(t *testing.T) {
	inputs := []interface{}{
		"plain",
		map[string]interface{}{"first": "Jane", "last": "Doe"},
		map[string]interface{}{"area": "555", "phone": "1234567"},
	}
	for _, in := range inputs {
		once := Display(in)
		assert.Equal(t, once, Display(once))
	}
}
