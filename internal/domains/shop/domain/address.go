package domain

// Address is an embedded value object. It has no identity of its own and is
// compared by value; both members and deliveries carry one.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// NewAddress builds an address value.
func NewAddress(city, street, zipcode string) Address {
	return Address{City: city, Street: street, Zipcode: zipcode}
}
