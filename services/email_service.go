package services

import (
	"fmt"
	"log"

	"github.com/Kinotsolarpower/Wash-GoPRO/models"
)

// emailStrings holds the localized fragments of the booking-request email
type emailStrings struct {
	subject    string
	greeting   string // takes customer first name
	body       string // takes booking reference
	salutation string
}

var bookingEmailStrings = map[string]emailStrings{
	models.LocaleEN: {
		subject:    "Your Wash&Go PRO booking request",
		greeting:   "Dear %s,",
		body:       "We have received your booking request with reference %s. Our team will confirm your appointment shortly.",
		salutation: "Kind regards,\nThe Wash&Go PRO Team",
	},
	models.LocaleNL: {
		subject:    "Uw Wash&Go PRO boekingsaanvraag",
		greeting:   "Beste %s,",
		body:       "We hebben uw boekingsaanvraag met referentie %s ontvangen. Ons team bevestigt uw afspraak binnenkort.",
		salutation: "Met vriendelijke groeten,\nHet Wash&Go PRO Team",
	},
	models.LocaleFR: {
		subject:    "Votre demande de réservation Wash&Go PRO",
		greeting:   "Cher/Chère %s,",
		body:       "Nous avons bien reçu votre demande de réservation avec la référence %s. Notre équipe confirmera votre rendez-vous sous peu.",
		salutation: "Cordialement,\nL'équipe Wash&Go PRO",
	},
}

// SendBookingRequestConfirmation renders the localized booking-request email
// and writes it to the log. No real mail is delivered; the rendered message
// is the collaborator contract a mailer integration would consume.
func SendBookingRequestConfirmation(booking *models.Booking, firstName, locale string) {
	strings, ok := bookingEmailStrings[locale]
	if !ok {
		strings = bookingEmailStrings[models.LocaleEN]
	}

	name := firstName
	if name == "" {
		name = "Customer"
	}

	body := fmt.Sprintf("%s\n\n%s\n\n%s",
		fmt.Sprintf(strings.greeting, name),
		fmt.Sprintf(strings.body, booking.Reference),
		strings.salutation,
	)

	log.Printf("--- SIMULATING BOOKING REQUEST EMAIL ---")
	log.Printf("To: %s", booking.CustomerEmail)
	log.Printf("Subject: %s", strings.subject)
	log.Printf("Body:\n%s", body)
	log.Printf("----------------------------------------")
}
