// Package form declares the operator-supplied submission fields and the
// rules they must satisfy before a payload is composed from them.
package form

// Input is the raw form as entered by the operator.
type Input struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`

	// Phone is free text; "+34651558844", "005411556699" and
	// "tel: 604112266" are all accepted as-is.
	Phone string `json:"phone" validate:"required"`

	Email   string `json:"email" validate:"required,email"`
	Street  string `json:"street" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required"`
	City    string `json:"city" validate:"required"`

	// Nutzflaeche is the usable area, numeric but kept as text.
	Nutzflaeche string `json:"nutzflaeche" validate:"required"`

	// Endpoint selects the delivery target: "make", "n8n" or "custom".
	Endpoint string `json:"webhook_endpoint" validate:"required,oneof=make n8n custom"`

	// CustomURL is only required when Endpoint is "custom".
	CustomURL string `json:"custom_webhook_url,omitempty" validate:"required_if=Endpoint custom"`
}
