package worker

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/entity"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/data/repository"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/internal/events"
	"github.com/vinaykumaredara/azure-drive-hub-sub001/pkg/utils"

	"go.uber.org/zap"
)

// Mailer sends one message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	cfg utils.EmailConfig
}

func NewSMTPMailer(cfg utils.EmailConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

// Notifier consumes booking change events and mails the customer when
// their booking reaches a state worth telling them about.
type Notifier struct {
	consumer *events.Consumer
	bookings repository.BookingRepository
	users    repository.UserRepository
	mailer   Mailer
	log      *zap.Logger
}

func NewNotifier(
	consumer *events.Consumer,
	bookings repository.BookingRepository,
	users repository.UserRepository,
	mailer Mailer,
	log *zap.Logger,
) *Notifier {
	return &Notifier{
		consumer: consumer,
		bookings: bookings,
		users:    users,
		mailer:   mailer,
		log:      log.With(zap.String("worker", "notifier")),
	}
}

// Run blocks until the context is cancelled or the consumer fails.
func (n *Notifier) Run(ctx context.Context) {
	n.log.Info("Notifier started")

	err := n.consumer.Consume(ctx, n.handle)
	if err != nil && ctx.Err() == nil {
		n.log.Error("Notifier stopped on error", zap.Error(err))
		return
	}

	n.log.Info("Notifier stopped")
}

func (n *Notifier) handle(ctx context.Context, event events.ChangeEvent) error {
	if event.Table != events.TableBookings {
		return nil
	}

	id, err := utils.ParseUUID(event.EntityID)
	if err != nil {
		n.log.Warn("Skipping event with bad entity id", zap.String("entity_id", event.EntityID))
		return nil
	}

	// Load failures must not stall the feed either: a returned error
	// would stop the consumer for good, so log and move on.
	booking, err := n.bookings.FindByID(ctx, id)
	if err != nil {
		n.log.Warn("Failed to load booking for notification",
			zap.Error(err), zap.String("booking_id", event.EntityID))
		return nil
	}
	if booking == nil {
		return nil
	}

	subject, body := messageFor(booking)
	if subject == "" {
		return nil
	}

	user, err := n.users.FindByID(ctx, booking.UserID)
	if err != nil {
		n.log.Warn("Failed to load user for notification",
			zap.Error(err), zap.String("booking_ref", booking.BookingRef))
		return nil
	}
	if user == nil {
		return nil
	}

	if err := n.mailer.Send(user.Email, subject, body); err != nil {
		// Mail failures must not stall the feed.
		n.log.Warn("Failed to send booking notification",
			zap.Error(err),
			zap.String("booking_ref", booking.BookingRef),
		)
		return nil
	}

	n.log.Info("Booking notification sent",
		zap.String("booking_ref", booking.BookingRef),
		zap.String("status", string(booking.Status)),
	)

	return nil
}

func messageFor(booking *entity.Booking) (subject, body string) {
	switch booking.Status {
	case entity.BookingStatusConfirmed:
		return "Booking confirmed: " + booking.BookingRef,
			fmt.Sprintf("Your booking %s is confirmed from %s to %s.",
				booking.BookingRef,
				booking.StartAt.Format("02 Jan 2006 15:04"),
				booking.EndAt.Format("02 Jan 2006 15:04"))
	case entity.BookingStatusExpired:
		return "Booking hold expired: " + booking.BookingRef,
			fmt.Sprintf("The payment window for booking %s has passed and the car was released.", booking.BookingRef)
	case entity.BookingStatusCancelled:
		return "Booking cancelled: " + booking.BookingRef,
			fmt.Sprintf("Your booking %s has been cancelled.", booking.BookingRef)
	case entity.BookingStatusRefunded:
		return "Refund processed: " + booking.BookingRef,
			fmt.Sprintf("The refund for booking %s has been processed.", booking.BookingRef)
	default:
		return "", ""
	}
}
