package types

// CustomerInput is the payload for creating a customer. Every rule applies.
type CustomerInput struct {
	Name  string `validate:"notblank"`
	Email string `validate:"required,email"`
	Phone string `validate:"required,phone"`
}

// CustomerPatch is the payload for a partial customer update. A nil field is absent
// and is neither validated nor merged.
type CustomerPatch struct {
	Name  *string `validate:"omitnil,notblank"`
	Email *string `validate:"omitnil,notblank,email"`
	Phone *string `validate:"omitnil,notblank,phone"`
}
