package types

// Field names reported in InvalidFieldError.
const (
	FieldID          = "id"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldFirstName   = "first_name"
	FieldLastName    = "last_name"
	FieldPhone       = "phone"
	FieldAddress     = "address"
	FieldName        = "name"
)

func validateID(id string) error {
	return validateText(FieldID, id, MaxIDLength)
}
