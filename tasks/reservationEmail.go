package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"dorm-reservation-backend/config"
	"dorm-reservation-backend/db/models"
	"dorm-reservation-backend/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReservationEmail = "email:reservation_status"

// ReservationEmailPayload is everything the worker needs to render and send
// a status email without touching the database.
type ReservationEmailPayload struct {
	Email    string `json:"email"`
	RoomName string `json:"room_name"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Status   string `json:"status"`
}

func NewReservationEmailTask(payload ReservationEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation email payload: %w", err)
	}
	return asynq.NewTask(TypeReservationEmail, data, asynq.MaxRetry(3)), nil
}

func HandleReservationEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload ReservationEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal reservation email payload: %w", err)
	}

	subject, textBody, htmlBody := utils.BuildReservationEmail(payload.RoomName, payload.DateFrom, payload.DateTo, payload.Status)
	if err := utils.SendEmail(payload.Email, subject, textBody, htmlBody); err != nil {
		config.Logger.Error("Failed to send reservation status email",
			zap.String("email", payload.Email),
			zap.String("status", payload.Status),
			zap.Error(err),
		)
		return err
	}

	config.Logger.Info("Reservation status email sent",
		zap.String("email", payload.Email),
		zap.String("status", payload.Status),
	)
	return nil
}

// Notifier enqueues status emails onto asynq; the booking path returns
// immediately while the worker delivers.
type Notifier struct {
	client *asynq.Client
}

func NewNotifier(client *asynq.Client) *Notifier {
	return &Notifier{client: client}
}

func (n *Notifier) NotifyReservationStatus(email, roomName, dateFrom, dateTo string, status models.ReservationStatus) {
	task, err := NewReservationEmailTask(ReservationEmailPayload{
		Email:    email,
		RoomName: roomName,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Status:   string(status),
	})
	if err != nil {
		config.Logger.Error("Failed to build reservation email task", zap.Error(err))
		return
	}
	if _, err := n.client.Enqueue(task); err != nil {
		config.Logger.Error("Failed to enqueue reservation email task", zap.Error(err))
	}
}
