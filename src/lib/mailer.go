package lib

import (
	"fmt"
	"os"

	"hbs/src/models"
	"hbs/src/types"
)

// MailNotifier sends reservation confirmation emails over SMTP.
type MailNotifier struct{}

func (MailNotifier) NotifyConfirmed(r *models.Reservation) error {
	if r.GuestEmail == "" {
		return nil
	}
	var stay string
	if r.Kind == types.KIND_OVERNIGHT && r.CheckIn != nil && r.CheckOut != nil {
		stay = fmt.Sprintf("%s to %s", r.CheckIn.Format("2006-01-02"), r.CheckOut.Format("2006-01-02"))
	} else if r.Date != nil {
		stay = fmt.Sprintf("%s %s-%s", r.Date.Format("2006-01-02"), r.StartTime, r.EndTime)
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour reservation %s is confirmed.\nRoom: %s\nStay: %s\nLookup code: %s\n\nSee you soon!",
		r.GuestName, r.OrderRef, r.Room.Name, stay, r.LookupCode,
	)
	return SendMail(&SendMailInput{
		From:     os.Getenv("SMTP_USERNAME"),
		FromName: os.Getenv("MAIL_FROM_NAME"),
		To:       []string{r.GuestEmail},
		Subject:  fmt.Sprintf("Reservation confirmed: %s", r.OrderRef),
		Body:     body,
	})
}
