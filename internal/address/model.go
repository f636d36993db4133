package address

// Address is the delivery address captured at checkout. Optional fields
// are omitted from documents when empty.
type Address struct {
	Name        string `json:"name" bson:"name"`
	Phone       string `json:"phone" bson:"phone"`
	Street      string `json:"street" bson:"street"`
	City        string `json:"city" bson:"city"`
	State       string `json:"state" bson:"state"`
	ZipCode     string `json:"zipCode" bson:"zipCode"`
	VillageTown string `json:"villageTown,omitempty" bson:"villageTown,omitempty"`
	Landmark    string `json:"landmark,omitempty" bson:"landmark,omitempty"`
	AddressType string `json:"addressType,omitempty" bson:"addressType,omitempty"`
}

// Field names as they appear in validation messages.
const (
	FieldName    = "name"
	FieldStreet  = "street"
	FieldCity    = "city"
	FieldState   = "state"
	FieldZipCode = "zipCode"
	FieldPhone   = "phone"
)
