package services

import (
	"context"
	"fmt"
	"log/slog"

	"nhatro/internal/amqp"
	"nhatro/internal/backend"
	"nhatro/internal/core"
)

// BillService writes bills through the configured backend and publishes a
// mutation event for the export worker. Event publishing is best effort;
// the bill write already succeeded and is never rolled back for it.
type BillService struct {
	backend    backend.Backend
	amqpClient *amqp.Client
}

func NewBillService(b backend.Backend, amqpClient *amqp.Client) *BillService {
	return &BillService{backend: b, amqpClient: amqpClient}
}

func (s *BillService) CreateBill(ctx context.Context, b core.Bill) (string, error) {
	id, err := s.backend.CreateBill(ctx, b)
	if err != nil {
		return "", fmt.Errorf("create bill: %w", err)
	}
	s.publishEvent(ctx, amqp.NewBillEventMessage(id, amqp.ActionCreated, b.Month.String()))
	return id, nil
}

func (s *BillService) UpdateBill(ctx context.Context, id string, b core.Bill) error {
	if err := s.backend.UpdateBill(ctx, id, b); err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	s.publishEvent(ctx, amqp.NewBillEventMessage(id, amqp.ActionUpdated, b.Month.String()))
	return nil
}

func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	if err := s.backend.DeleteBill(ctx, id); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	s.publishEvent(ctx, amqp.NewBillEventMessage(id, amqp.ActionDeleted, ""))
	return nil
}

func (s *BillService) publishEvent(ctx context.Context, msg *amqp.BillEventMessage) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping bill event", "id", msg.ID)
		return
	}
	if err := s.amqpClient.PublishBillEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish bill event",
			"id", msg.ID,
			"action", msg.Action,
			"error", err)
	}
}
