// Package planner keeps the flat lists of planned payments and appointments
// and answers "what is coming up in the next N days".
package planner

import (
	"strings"
	"time"

	"fintrack/internal/dateutils"
	"fintrack/internal/ledgererror"
	"fintrack/internal/logging"
	"fintrack/internal/models"
	"fintrack/internal/storage"
)

// DefaultWindowDays is the look-ahead used when none is configured.
const DefaultWindowDays = 7

const (
	msgBadDate = "Date must be in YYYY-MM-DD format"
	msgBadTime = "Time must be in HH:MM format"
)

type paymentRecord struct {
	Amount        string `json:"amount" yaml:"amount"`
	Date          string `json:"date" yaml:"date"`
	Recipient     string `json:"recipient" yaml:"recipient"`
	PaymentMethod string `json:"payment_method" yaml:"payment_method"`
}

type appointmentRecord struct {
	Title string `json:"title" yaml:"title"`
	Date  string `json:"date" yaml:"date"`
	Time  string `json:"time" yaml:"time"`
}

// Store holds planned payments and appointments, each in its own file.
type Store struct {
	paymentsFile     *storage.File
	appointmentsFile *storage.File
	logger           logging.Logger
	now              func() time.Time

	payments     []models.PlannedPayment
	appointments []models.Appointment
}

// NewStore creates a planner backed by the two files. now may be nil.
func NewStore(paymentsFile, appointmentsFile *storage.File, logger logging.Logger, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		paymentsFile:     paymentsFile,
		appointmentsFile: appointmentsFile,
		logger:           logging.OrNop(logger).WithField(logging.FieldStore, "planner"),
		now:              now,
	}
}

// Load reads both files. Entries that no longer validate are skipped with a
// warning.
func (s *Store) Load() error {
	var payments []paymentRecord
	if _, err := s.paymentsFile.Load(&payments); err != nil {
		return err
	}
	var appointments []appointmentRecord
	if _, err := s.appointmentsFile.Load(&appointments); err != nil {
		return err
	}

	s.payments = make([]models.PlannedPayment, 0, len(payments))
	for i, rec := range payments {
		p, err := parsePayment(rec.Amount, rec.Date, rec.Recipient, rec.PaymentMethod)
		if err != nil {
			s.skip("planned payment", i, err)
			continue
		}
		s.payments = append(s.payments, p)
	}

	s.appointments = make([]models.Appointment, 0, len(appointments))
	for i, rec := range appointments {
		a, err := parseAppointment(rec.Title, rec.Date, rec.Time)
		if err != nil {
			s.skip("appointment", i, err)
			continue
		}
		s.appointments = append(s.appointments, a)
	}

	s.logger.Debug("Loaded planner",
		logging.F("planned_payments", len(s.payments)),
		logging.F("appointments", len(s.appointments)))
	return nil
}

func (s *Store) skip(kind string, index int, err error) {
	s.logger.Warn("Skipping invalid "+kind,
		logging.F(logging.FieldIndex, index),
		logging.F(logging.FieldReason, err.Error()))
}

// AddPlannedPayment validates and appends a planned payment.
func (s *Store) AddPlannedPayment(amount, date, recipient, paymentMethod string) (models.PlannedPayment, error) {
	p, err := parsePayment(amount, date, recipient, paymentMethod)
	if err != nil {
		return models.PlannedPayment{}, err
	}

	next := append(s.PlannedPayments(), p)
	if err := s.paymentsFile.Save(paymentRecords(next)); err != nil {
		return models.PlannedPayment{}, err
	}
	s.payments = next
	s.logger.Info("Added planned payment",
		logging.F(logging.FieldRecipient, p.Recipient),
		logging.F(logging.FieldAmount, p.Amount.String()))
	return p, nil
}

// AddAppointment validates and appends an appointment.
func (s *Store) AddAppointment(title, date, clock string) (models.Appointment, error) {
	a, err := parseAppointment(title, date, clock)
	if err != nil {
		return models.Appointment{}, err
	}

	next := append(s.Appointments(), a)
	if err := s.appointmentsFile.Save(appointmentRecords(next)); err != nil {
		return models.Appointment{}, err
	}
	s.appointments = next
	s.logger.Info("Added appointment", logging.F("title", a.Title))
	return a, nil
}

// UpcomingPayments returns the planned payments dated from today through
// today+windowDays inclusive. Past entries are not returned.
func (s *Store) UpcomingPayments(windowDays int) ([]models.PlannedPayment, error) {
	if err := checkWindow(windowDays); err != nil {
		return nil, err
	}
	now := s.now()
	var result []models.PlannedPayment
	for _, p := range s.payments {
		if dateutils.WithinDays(p.Date, now, windowDays) {
			result = append(result, p)
		}
	}
	return result, nil
}

// UpcomingAppointments is UpcomingPayments for appointments.
func (s *Store) UpcomingAppointments(windowDays int) ([]models.Appointment, error) {
	if err := checkWindow(windowDays); err != nil {
		return nil, err
	}
	now := s.now()
	var result []models.Appointment
	for _, a := range s.appointments {
		if dateutils.WithinDays(a.Date, now, windowDays) {
			result = append(result, a)
		}
	}
	return result, nil
}

// PlannedPayments returns every planned payment in insertion order.
func (s *Store) PlannedPayments() []models.PlannedPayment {
	return append([]models.PlannedPayment(nil), s.payments...)
}

// Appointments returns every appointment in insertion order.
func (s *Store) Appointments() []models.Appointment {
	return append([]models.Appointment(nil), s.appointments...)
}

func checkWindow(days int) error {
	if days < 0 {
		return ledgererror.Invalid("window_days", "", "must not be negative")
	}
	return nil
}

func parsePayment(amount, date, recipient, paymentMethod string) (models.PlannedPayment, error) {
	value, err := models.ParseAmount(amount)
	if err != nil {
		return models.PlannedPayment{}, err
	}
	day, err := dateutils.ParseISODate(date)
	if err != nil {
		return models.PlannedPayment{}, ledgererror.Invalid("date", date, msgBadDate)
	}
	return models.PlannedPayment{
		Amount:        value,
		Date:          day,
		Recipient:     strings.TrimSpace(recipient),
		PaymentMethod: strings.TrimSpace(paymentMethod),
	}, nil
}

func parseAppointment(title, date, clock string) (models.Appointment, error) {
	day, err := dateutils.ParseISODate(date)
	if err != nil {
		return models.Appointment{}, ledgererror.Invalid("date", date, msgBadDate)
	}
	t, err := dateutils.ParseClock(clock)
	if err != nil {
		return models.Appointment{}, ledgererror.Invalid("time", clock, msgBadTime)
	}
	return models.Appointment{
		Title: strings.TrimSpace(title),
		Date:  day,
		Time:  t.Format(dateutils.TimeLayoutClock),
	}, nil
}

func paymentRecords(payments []models.PlannedPayment) []paymentRecord {
	records := make([]paymentRecord, len(payments))
	for i, p := range payments {
		records[i] = paymentRecord{
			Amount:        p.Amount.String(),
			Date:          dateutils.ToISODate(p.Date),
			Recipient:     p.Recipient,
			PaymentMethod: p.PaymentMethod,
		}
	}
	return records
}

func appointmentRecords(appointments []models.Appointment) []appointmentRecord {
	records := make([]appointmentRecord, len(appointments))
	for i, a := range appointments {
		records[i] = appointmentRecord{
			Title: a.Title,
			Date:  dateutils.ToISODate(a.Date),
			Time:  a.Time,
		}
	}
	return records
}
