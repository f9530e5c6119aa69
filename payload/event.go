// Package payload builds the "sale:created" event that is posted to the
// webhook targets, and checks it against its JSON Schema.
package payload

// Action is the event discriminator carried at the top level.
const Action = "sale:created"

// Event is the outbound wire document. It is built fresh for every
// submission attempt and never modified afterwards.
type Event struct {
	Action  string `json:"action"`
	Payload Sale   `json:"payload"`
}

// Sale is the body of a sale:created event.
type Sale struct {
	SaleID   int64  `json:"sale_id"`
	SaleDate string `json:"sale_date"`
	LeadID   int64  `json:"lead_id"`
	Title    string `json:"title"`

	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Phone         string  `json:"phone"`
	Mobile        *string `json:"mobile"`
	Email         string  `json:"email"`
	Street        string  `json:"street"`
	Zipcode       string  `json:"zipcode"`
	City          string  `json:"city"`
	PostalAddress *string `json:"postal_address"`

	Subject string `json:"subject"`
	Service string `json:"service"`
	Comment string `json:"comment"`
	Infos   Infos  `json:"infos"`

	Price             string   `json:"price"`
	SubscriptionGroup string   `json:"subscription_group"`
	Images            []string `json:"images"`
	Product           string   `json:"product"`
}

// Infos holds the "additional info" block of a sale.
type Infos struct {
	Dachtyp                    string `json:"dachtyp"`
	Nutzflaeche                string `json:"nutzflaeche"`
	ZeitpunktProjektbegin      string `json:"zeitpunkt_projektbegin"`
	Ortstermin                 string `json:"ortstermin"`
	Erreichbarkeit             string `json:"erreichbarkeit"`
	Objekt                     string `json:"objekt"`
	Dacheindeckung             string `json:"dacheindeckung"`
	Eigentumsverhaeltnisse     string `json:"eigentumsverhaeltnisse"`
	Stromspeicher              string `json:"stromspeicher"`
	BuyRent                    string `json:"buy_rent"`
	Largescaleconsumer         string `json:"largescaleconsumer"`
	PowerConsumption           string `json:"power_consumption"`
	PhotovoltaicSystemInterest string `json:"photovoltaic_system_interest"`
}
