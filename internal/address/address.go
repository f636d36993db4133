package address

import "strings"

// Sanitized returns a copy with every field trimmed, so blank optional
// fields become empty and are dropped on serialization.
func (a Address) Sanitized() Address {
	return Address{
		Name:        strings.TrimSpace(a.Name),
		Phone:       strings.TrimSpace(a.Phone),
		Street:      strings.TrimSpace(a.Street),
		City:        strings.TrimSpace(a.City),
		State:       strings.TrimSpace(a.State),
		ZipCode:     strings.TrimSpace(a.ZipCode),
		VillageTown: strings.TrimSpace(a.VillageTown),
		Landmark:    strings.TrimSpace(a.Landmark),
		AddressType: strings.TrimSpace(a.AddressType),
	}
}

// MissingFields lists required fields that are blank, in a stable order.
func (a Address) MissingFields() []string {
	a = a.Sanitized()

	required := []struct {
		name  string
		value string
	}{
		{FieldName, a.Name},
		{FieldStreet, a.Street},
		{FieldCity, a.City},
		{FieldState, a.State},
		{FieldZipCode, a.ZipCode},
		{FieldPhone, a.Phone},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// HasLocation reports whether any component usable for zone lookup is set.
// Without one, no address is considered selected.
func (a Address) HasLocation() bool {
	a = a.Sanitized()
	return a.ZipCode != "" || a.City != "" || a.VillageTown != ""
}
