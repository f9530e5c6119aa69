package form

// Sample is a canned phone number used to exercise the downstream routing.
// Description states what the receiving platform is expected to do; this
// package never classifies the number itself.
type Sample struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// Input returns the default form with the sample's phone number applied.
func (s Sample) Input() Input {
	in := Defaults()
	in.Phone = s.Phone
	return in
}

// Defaults returns the values the form is pre-filled with.
func Defaults() Input {
	return Input{
		FirstName:   "Test",
		LastName:    "Luciano",
		Phone:       "+34651558844",
		Email:       "test@gmail.com",
		Street:      "Calle falsa, 61",
		Zipcode:     "17481",
		City:        "Buenos aires",
		Nutzflaeche: "50",
		Endpoint:    "make",
	}
}

// Samples returns the catalog of routing test cases.
func Samples() []Sample {
	return []Sample{
		{
			Name:        "Spanish Number (+34)",
			Phone:       "+34651558844",
			Description: "Should trigger HTTP request to Make.com endpoint",
		},
		{
			Name:        "Foreign Number (Argentina)",
			Phone:       "005411556699",
			Description: "Should trigger email alert to l.lemos@eltex.es",
		},
		{
			Name:        "Spanish Local (tel: format)",
			Phone:       "tel: 604112266",
			Description: "Should trigger HTTP request to Make.com endpoint",
		},
	}
}
