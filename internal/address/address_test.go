package address

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAddress() Address {
	return Address{
		Name:    "Lakshmi",
		Phone:   "9876543210",
		Street:  "12 Temple Road",
		City:    "Guntur",
		State:   "Andhra Pradesh",
		ZipCode: "522001",
	}
}

func TestMissingFields(t *testing.T) {
	t.Run("Complete address", func(t *testing.T) {
		assert.Empty(t, validAddress().MissingFields())
	})

	t.Run("Whitespace counts as missing", func(t *testing.T) {
		a := validAddress()
		a.Street = "   "
		a.Phone = ""
		assert.Equal(t, []string{FieldStreet, FieldPhone}, a.MissingFields())
	})

	t.Run("Empty address lists every field", func(t *testing.T) {
		assert.Equal(t,
			[]string{FieldName, FieldStreet, FieldCity, FieldState, FieldZipCode, FieldPhone},
			Address{}.MissingFields(),
		)
	})

	t.Run("Optional fields are not required", func(t *testing.T) {
		a := validAddress()
		a.Landmark = ""
		a.VillageTown = ""
		assert.Empty(t, a.MissingFields())
	})
}

func TestHasLocation(t *testing.T) {
	assert.False(t, Address{Name: "x"}.HasLocation())
	assert.False(t, Address{ZipCode: "  "}.HasLocation())
	assert.True(t, Address{ZipCode: "522001"}.HasLocation())
	assert.True(t, Address{City: "Guntur"}.HasLocation())
	assert.True(t, Address{VillageTown: "Tenali"}.HasLocation())
}

func TestSanitized_OmitsBlankOptionalFields(t *testing.T) {
	a := validAddress()
	a.Landmark = "  "
	a.VillageTown = " Mangalagiri "

	raw, err := json.Marshal(a.Sanitized())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, "Mangalagiri", doc["villageTown"])
	assert.NotContains(t, doc, "landmark")
	assert.NotContains(t, doc, "addressType")
}
