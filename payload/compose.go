package payload

import (
	"time"

	"github.com/xraph/salehook/form"
)

// MaxID is the upper bound (inclusive) of generated sale and lead IDs.
const MaxID = 9999999

const (
	saleDateLayout   = "2006-01-02T15:04:05.000Z07:00"
	ortsterminLayout = "02.01.2006"
)

// Fixed sale metadata.
const (
	title             = "Herr"
	subject           = "photovoltaics"
	service           = "power_system"
	comment           = "Importante: contactar el 23.05.2025\nCasa recién comprada. \nInterés en subvención. "
	price             = "41.00"
	subscriptionGroup = "Cataluña"
	product           = "FV"
)

// RandomSource draws uniform integers in [0, n). *math/rand/v2.Rand
// satisfies it.
type RandomSource interface {
	Int64N(n int64) int64
}

// Compose builds the event for in. now supplies sale_date and the
// site-visit date, both taken in UTC so they agree on the day; rng supplies
// the sale and lead IDs, one draw each.
func Compose(in form.Input, now time.Time, rng RandomSource) Event {
	now = now.UTC()
	saleID := drawID(rng)
	leadID := drawID(rng)

	return Event{
		Action: Action,
		Payload: Sale{
			SaleID:   saleID,
			SaleDate: now.Format(saleDateLayout),
			LeadID:   leadID,
			Title:    title,

			FirstName:     in.FirstName,
			LastName:      in.LastName,
			Phone:         in.Phone,
			Mobile:        nil,
			Email:         in.Email,
			Street:        in.Street,
			Zipcode:       in.Zipcode,
			City:          in.City,
			PostalAddress: nil,

			Subject: subject,
			Service: service,
			Comment: comment,
			Infos: Infos{
				Dachtyp:                    "Tejado a 3 aguas",
				Nutzflaeche:                in.Nutzflaeche,
				ZeitpunktProjektbegin:      "De 3 a 6 meses",
				Ortstermin:                 now.Format(ortsterminLayout),
				Erreichbarkeit:             "De jornada completa",
				Objekt:                     "Adosado",
				Dacheindeckung:             "Teja de barro tipo arabe",
				Eigentumsverhaeltnisse:     "Propietario / Poder decisión",
				Stromspeicher:              "Si",
				BuyRent:                    "Comprar",
				Largescaleconsumer:         "151 a 250€",
				PowerConsumption:           "Conectada a la red",
				PhotovoltaicSystemInterest: "Ninguna petición especial",
			},

			Price:             price,
			SubscriptionGroup: subscriptionGroup,
			Images:            []string{},
			Product:           product,
		},
	}
}

// drawID returns a uniform integer in [1, MaxID].
func drawID(rng RandomSource) int64 {
	return 1 + rng.Int64N(MaxID)
}
