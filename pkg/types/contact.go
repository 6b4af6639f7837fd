package types

import "encoding/json"

// Contact holds a person's name, phone number, and address.
type Contact struct {
	id        string
	firstName string
	lastName  string
	phone     string
	address   string
}

// ContactRecord is the serialized form of a Contact.
type ContactRecord struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// NewContact validates every field and returns the contact.
func NewContact(id, firstName, lastName, phone, address string) (*Contact, error) {
	return RestoreContact(ContactRecord{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Address:   address,
	})
}

// RestoreContact rebuilds a contact from its record under the same rules as
// NewContact.
func RestoreContact(r ContactRecord) (*Contact, error) {
	if err := validateID(r.ID); err != nil {
		return nil, err
	}
	if err := validateFirstName(r.FirstName); err != nil {
		return nil, err
	}
	if err := validateLastName(r.LastName); err != nil {
		return nil, err
	}
	if err := validatePhone(r.Phone); err != nil {
		return nil, err
	}
	if err := validateAddress(r.Address); err != nil {
		return nil, err
	}
	return &Contact{
		id:        r.ID,
		firstName: r.FirstName,
		lastName:  r.LastName,
		phone:     r.Phone,
		address:   r.Address,
	}, nil
}

func validateFirstName(v string) error {
	return validateText(FieldFirstName, v, MaxPersonNameLength)
}

func validateLastName(v string) error {
	return validateText(FieldLastName, v, MaxPersonNameLength)
}

func validatePhone(v string) error {
	if err := ValidateExactLength(FieldPhone, v, PhoneLength); err != nil {
		return err
	}
	return ValidateNoInjection(FieldPhone, v)
}

func validateAddress(v string) error {
	return validateText(FieldAddress, v, MaxAddressLength)
}

func (c *Contact) Kind() Kind        { return KindContact }
func (c *Contact) ID() string        { return c.id }
func (c *Contact) FirstName() string { return c.firstName }
func (c *Contact) LastName() string  { return c.lastName }
func (c *Contact) Phone() string     { return c.phone }
func (c *Contact) Address() string   { return c.address }

func (c *Contact) SetFirstName(firstName string) error {
	if err := validateFirstName(firstName); err != nil {
		return err
	}
	c.firstName = firstName
	return nil
}

func (c *Contact) SetLastName(lastName string) error {
	if err := validateLastName(lastName); err != nil {
		return err
	}
	c.lastName = lastName
	return nil
}

// SetPhone replaces the phone number; it must be exactly PhoneLength
// characters.
func (c *Contact) SetPhone(phone string) error {
	if err := validatePhone(phone); err != nil {
		return err
	}
	c.phone = phone
	return nil
}

func (c *Contact) SetAddress(address string) error {
	if err := validateAddress(address); err != nil {
		return err
	}
	c.address = address
	return nil
}

// Clone returns an independent copy.
func (c *Contact) Clone() *Contact {
	cp := *c
	return &cp
}

// Record returns the serialized form.
func (c *Contact) Record() ContactRecord {
	return ContactRecord{
		ID:        c.id,
		FirstName: c.firstName,
		LastName:  c.lastName,
		Phone:     c.phone,
		Address:   c.address,
	}
}

func (c *Contact) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Record())
}

func (c *Contact) UnmarshalJSON(data []byte) error {
	var r ContactRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	restored, err := RestoreContact(r)
	if err != nil {
		return err
	}
	*c = *restored
	return nil
}
