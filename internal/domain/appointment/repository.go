package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// Transaction executa fn com um repositório preso à mesma transação.
	Transaction(
		ctx context.Context,
		fn func(repo Repository) error,
	) error

	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Professional / Service --------
	GetProfessional(
		ctx context.Context,
		salonID uint,
		professionalID uint,
	) (*models.User, error)

	DefaultProfessional(
		ctx context.Context,
		salonID uint,
	) (*models.User, error)

	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	GetClient(
		ctx context.Context,
		salonID uint,
		clientID uint,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
		skipID uint,
	) error

	// ClaimSlot grava a reserva somente se o registro ainda estiver
	// liberado. false significa que outra pessoa levou a vaga.
	ClaimSlot(
		ctx context.Context,
		ap *models.Appointment,
	) (bool, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// LockAppointment lê o registro com FOR UPDATE; use dentro de
	// Transaction antes de mudar o status.
	LockAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByDepositReference(
		ctx context.Context,
		reference string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SetDepositCheckout grava só o link do sinal e somente enquanto a
	// reserva está pendente. false significa que o status mudou.
	SetDepositCheckout(
		ctx context.Context,
		appointmentID uint,
		url string,
	) (bool, error)

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Finance --------
	CreateFinancialEntry(
		ctx context.Context,
		e *models.FinancialEntry,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// ListOverlapping devolve registros não cancelados do profissional
	// que cruzam [start, end), ordenados pelo início.
	ListOverlapping(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListSalonRecords devolve registros não cancelados do salão com
	// início em [start, end). professionalID=0 inclui todos.
	ListSalonRecords(
		ctx context.Context,
		salonID uint,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		professionalID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListClientAppointments(
		ctx context.Context,
		salonID uint,
		clientID uint,
	) ([]models.Appointment, error)
}
