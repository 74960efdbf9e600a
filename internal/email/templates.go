package email

import (
	"context"
	"fmt"
)

// BookingMail is what the booking emails need to know.
type BookingMail struct {
	To            string
	Name          string
	Reference     string
	PitchName     string
	PitchLocation string
	Date          string
	StartTime     string
	EndTime       string
	Amount        float64
	Status        string
}

func (s *Service) SendBookingConfirmation(ctx context.Context, b BookingMail) error {
	body := fmt.Sprintf(`Hi %s,

Your booking %s has been received.

Pitch: %s (%s)
Date: %s
Time: %s - %s
Amount: NGN %.0f
Status: %s

See you on the pitch!

- PitchLink`, b.Name, b.Reference, b.PitchName, b.PitchLocation, b.Date, b.StartTime, b.EndTime, b.Amount, b.Status)

	return s.enqueue(ctx, EmailJob{
		To:      b.To,
		Name:    b.Name,
		Subject: "Booking " + b.Reference + " - " + b.PitchName,
		Body:    body,
		Kind:    "booking_confirmation",
	})
}

func (s *Service) SendBookingStatusChange(ctx context.Context, b BookingMail) error {
	subject := "Booking " + b.Reference + " is now " + b.Status
	kind := "booking_status"
	if b.Status == "cancelled" {
		subject = "Booking " + b.Reference + " cancelled"
		kind = "booking_cancellation"
	}

	body := fmt.Sprintf(`Hi %s,

The status of your booking %s changed to %s.

Pitch: %s (%s)
Date: %s
Time: %s - %s

- PitchLink`, b.Name, b.Reference, b.Status, b.PitchName, b.PitchLocation, b.Date, b.StartTime, b.EndTime)

	return s.enqueue(ctx, EmailJob{To: b.To, Name: b.Name, Subject: subject, Body: body, Kind: kind})
}
