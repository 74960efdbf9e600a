package booking

import (
	"context"
	"time"

	"pitchlink/internal/apperr"
	"pitchlink/internal/auth"
	"pitchlink/internal/email"
	"pitchlink/internal/events"
	"pitchlink/internal/logger"
	"pitchlink/internal/metrics"
	"pitchlink/internal/pitch"
	"pitchlink/internal/pricing"
)

type Service interface {
	CreateManualBooking(ctx context.Context, id auth.Identity, req CreateBookingRequest) (*Booking, error)
	RequestBooking(ctx context.Context, id auth.Identity, pitchID int, req RequestBookingRequest) (*Booking, error)
	GetBookings(ctx context.Context, id auth.Identity, filter string) ([]BookingWithDetails, error)
	GetFilteredBookings(ctx context.Context, id auth.Identity, status, date string) ([]BookingWithDetails, error)
	// GetBooking accepts a numeric id or a public reference.
	GetBooking(ctx context.Context, id auth.Identity, key string) (*BookingWithDetails, error)
	GetOwnedBooking(ctx context.Context, id auth.Identity, key string) (*BookingWithDetails, error)
	UpdateBookingStatus(ctx context.Context, id auth.Identity, key, status string) (*Booking, error)
	// SetPaymentStatus assumes the caller already authorized access to the booking.
	SetPaymentStatus(ctx context.Context, bookingID int, status string) (*Booking, error)
}

// Mailer is the part of the email service bookings use.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, b email.BookingMail) error
	SendBookingStatusChange(ctx context.Context, b email.BookingMail) error
}

type Options struct {
	Now          func() time.Time
	Location     *time.Location
	OverlapCheck bool
}

type service struct {
	repo    Repository
	pitches pitch.Repository
	guard   *auth.Guard
	refs    *References
	events  events.Publisher
	mailer  Mailer
	opts    Options
}

func NewService(
	repo Repository,
	pitches pitch.Repository,
	guard *auth.Guard,
	refs *References,
	publisher events.Publisher,
	mailer Mailer,
	opts Options,
) Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if publisher == nil {
		publisher = events.Noop{}
	}

	return &service{
		repo:    repo,
		pitches: pitches,
		guard:   guard,
		refs:    refs,
		events:  publisher,
		mailer:  mailer,
		opts:    opts,
	}
}

func (s *service) today() string {
	return pricing.Today(s.opts.Now(), s.opts.Location)
}

func (s *service) CreateManualBooking(ctx context.Context, id auth.Identity, req CreateBookingRequest) (*Booking, error) {
	p, err := s.pitches.GetByID(ctx, req.PitchID)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.Authorize(ctx, id, auth.RoleOwner, p.OwnerID); err != nil {
		return nil, err
	}

	if err := Validate(req.Details, s.today(), pricing.WrapOvernight); err != nil {
		return nil, err
	}
	d := normalize(req.Details)

	total, err := pricing.ComputeTotal(p.PricePerHour, d.StartTime, d.EndTime, pricing.WrapOvernight)
	if err != nil {
		return nil, apperr.Validation("end_time", err.Error())
	}
	if req.TotalAmount != nil && *req.TotalAmount != total {
		logger.Debug("client total ignored", "pitch_id", p.ID, "client_total", *req.TotalAmount, "total", total)
	}

	if err := s.checkOverlap(ctx, p.ID, d); err != nil {
		return nil, err
	}

	paymentStatus := StoredPaymentStatus(req.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = PaymentPending
	}

	b, err := s.repo.Create(ctx, NewBooking{
		PitchID:       p.ID,
		OwnerID:       p.OwnerID,
		Details:       d,
		TotalAmount:   total,
		Status:        StatusPending,
		PaymentStatus: paymentStatus,
	})
	if err != nil {
		return nil, err
	}

	s.created(ctx, b, p, "manual")
	return b, nil
}

func (s *service) RequestBooking(ctx context.Context, id auth.Identity, pitchID int, req RequestBookingRequest) (*Booking, error) {
	acc, err := s.guard.Authorize(ctx, id, "", 0)
	if err != nil {
		return nil, err
	}

	p, err := s.pitches.GetByID(ctx, pitchID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, apperr.NotFound("pitch")
	}

	d := req.Details
	if trimmed(d.PlayerEmail) == "" && trimmed(d.PlayerPhone) == "" {
		d.PlayerEmail = &acc.Email
	}

	if err := Validate(d, s.today(), pricing.RejectOvernight); err != nil {
		return nil, err
	}
	d = normalize(d)

	total, err := pricing.ComputeTotal(p.PricePerHour, d.StartTime, d.EndTime, pricing.RejectOvernight)
	if err != nil {
		return nil, apperr.Validation("end_time", "End time must be after start time")
	}

	if err := s.checkOverlap(ctx, p.ID, d); err != nil {
		return nil, err
	}

	b, err := s.repo.Create(ctx, NewBooking{
		PitchID:       p.ID,
		PlayerID:      &acc.ID,
		OwnerID:       p.OwnerID,
		Details:       d,
		TotalAmount:   total,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	})
	if err != nil {
		return nil, err
	}

	s.created(ctx, b, p, "request")
	return b, nil
}

func (s *service) checkOverlap(ctx context.Context, pitchID int, d Details) error {
	if !s.opts.OverlapCheck {
		return nil
	}

	existing, err := s.repo.ListActiveForPitch(ctx, pitchID, pricing.AddDays(d.BookingDate, -1), pricing.AddDays(d.BookingDate, 1))
	if err != nil {
		return err
	}

	if clash := findOverlap(d, existing); clash != nil {
		return apperr.Conflict("Pitch is already booked from " + clash.StartTime + " to " + clash.EndTime + " on " + clash.BookingDate)
	}
	return nil
}

func (s *service) GetBookings(ctx context.Context, id auth.Identity, filter string) ([]BookingWithDetails, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}

	if filter == "" {
		filter = FilterAll
	}
	switch filter {
	case FilterAll, FilterToday, FilterUpcoming, FilterPending:
	default:
		return nil, apperr.Validation("filter", "Filter must be one of: all, today, upcoming, pending")
	}

	bookings, err := s.repo.ListByOwner(ctx, acc.ID, filter, s.today())
	if err != nil {
		return nil, err
	}
	return s.withReferences(bookings), nil
}

func (s *service) GetFilteredBookings(ctx context.Context, id auth.Identity, status, date string) ([]BookingWithDetails, error) {
	acc, err := s.guard.Owner(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == FilterAll {
		status = ""
	}
	if status != "" && !ValidStatus(status) {
		return nil, apperr.Validation("status", "Unknown status "+status)
	}
	if date != "" {
		if _, err := pricing.ParseDate(date); err != nil {
			return nil, apperr.Validation("date", "Date must be a valid YYYY-MM-DD date")
		}
	}

	bookings, err := s.repo.ListFiltered(ctx, acc.ID, status, date)
	if err != nil {
		return nil, err
	}
	return s.withReferences(bookings), nil
}

// GetBooking lets the owner and the requesting player see a booking. Anyone else gets not found.
func (s *service) GetBooking(ctx context.Context, id auth.Identity, key string) (*BookingWithDetails, error) {
	acc, err := s.guard.Authorize(ctx, id, "", 0)
	if err != nil {
		return nil, err
	}

	b, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}

	isPlayer := b.PlayerID != nil && *b.PlayerID == acc.ID
	if b.OwnerID != acc.ID && !isPlayer {
		return nil, apperr.NotFound("booking")
	}
	return b, nil
}

func (s *service) GetOwnedBooking(ctx context.Context, id auth.Identity, key string) (*BookingWithDetails, error) {
	b, err := s.find(ctx, key)
	if err != nil {
		return nil, err
	}

	if _, err := s.guard.Authorize(ctx, id, auth.RoleOwner, b.OwnerID); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBookingStatus allows any transition between known statuses.
func (s *service) UpdateBookingStatus(ctx context.Context, id auth.Identity, key, status string) (*Booking, error) {
	if !ValidStatus(status) {
		return nil, apperr.Validation("status", "Status must be one of: pending, confirmed, cancelled, completed")
	}

	current, err := s.GetOwnedBooking(ctx, id, key)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, current.ID, status)
	if err != nil {
		return nil, err
	}
	updated.Reference = s.refs.Encode(updated.ID)

	if current.Status != status {
		metrics.RecordStatusChange(current.Status, status)
		s.publish(ctx, events.RKBookingStatusChanged, updated)
		s.mailStatusChange(ctx, updated, current.PitchName, current.PitchLocation)
	}

	return updated, nil
}

func (s *service) SetPaymentStatus(ctx context.Context, bookingID int, status string) (*Booking, error) {
	if !ValidPaymentStatus(status) {
		return nil, apperr.Validation("payment_status", "Unknown payment status "+status)
	}

	b, err := s.repo.UpdatePaymentStatus(ctx, bookingID, StoredPaymentStatus(status))
	if err != nil {
		return nil, err
	}
	b.Reference = s.refs.Encode(b.ID)

	s.publish(ctx, events.RKBookingPaymentChanged, b)
	return b, nil
}

func (s *service) find(ctx context.Context, key string) (*BookingWithDetails, error) {
	bookingID, err := s.refs.Resolve(key)
	if err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	b.Reference = s.refs.Encode(b.ID)
	return b, nil
}

func (s *service) withReferences(bookings []BookingWithDetails) []BookingWithDetails {
	for i := range bookings {
		bookings[i].Reference = s.refs.Encode(bookings[i].ID)
	}
	return bookings
}

// created runs the side effects of a new booking. None of them fail the request.
func (s *service) created(ctx context.Context, b *Booking, p *pitch.Pitch, source string) {
	b.Reference = s.refs.Encode(b.ID)

	metrics.RecordBooking(source, b.Status, b.TotalAmount)
	s.publish(ctx, events.RKBookingCreated, b)

	if s.mailer == nil || b.PlayerEmail == nil {
		return
	}
	if err := s.mailer.SendBookingConfirmation(ctx, mailFor(b, p.Name, p.Location)); err != nil {
		logger.Warn("failed to queue booking confirmation", "booking_id", b.ID, "error", err)
	}
}

func (s *service) mailStatusChange(ctx context.Context, b *Booking, pitchName, pitchLocation string) {
	if s.mailer == nil || b.PlayerEmail == nil {
		return
	}
	if err := s.mailer.SendBookingStatusChange(ctx, mailFor(b, pitchName, pitchLocation)); err != nil {
		logger.Warn("failed to queue status email", "booking_id", b.ID, "error", err)
	}
}

func (s *service) publish(ctx context.Context, key string, b *Booking) {
	err := s.events.Publish(ctx, key, events.BookingEvent{
		BookingID:     b.ID,
		Reference:     b.Reference,
		OwnerID:       b.OwnerID,
		PitchID:       b.PitchID,
		BookingDate:   b.BookingDate,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		OccurredAt:    s.opts.Now(),
	})
	if err != nil {
		logger.Warn("failed to publish booking event", "key", key, "booking_id", b.ID, "error", err)
	}
}

func mailFor(b *Booking, pitchName, pitchLocation string) email.BookingMail {
	return email.BookingMail{
		To:            *b.PlayerEmail,
		Name:          b.PlayerName,
		Reference:     b.Reference,
		PitchName:     pitchName,
		PitchLocation: pitchLocation,
		Date:          b.BookingDate,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Amount:        b.TotalAmount,
		Status:        b.Status,
	}
}
