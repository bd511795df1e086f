package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// OrderFSM wraps an order with its fulfillment state machine
type OrderFSM struct {
	order *models.Order
	fsm   *fsm.FSM
}

// NewOrderFSM creates a new order state machine
func NewOrderFSM(order *models.Order) *OrderFSM {
	ofsm := &OrderFSM{
		order: order,
	}

	ofsm.fsm = fsm.NewFSM(
		order.Status,
		fsm.Events{
			// PENDING → PROCESSING
			{Name: "process", Src: []string{models.OrderStatusPending}, Dst: models.OrderStatusProcessing},

			// PROCESSING → SHIPPED
			{Name: "ship", Src: []string{models.OrderStatusProcessing}, Dst: models.OrderStatusShipped},

			// SHIPPED → DELIVERED
			{Name: "deliver", Src: []string{models.OrderStatusShipped}, Dst: models.OrderStatusDelivered},

			// PENDING/PROCESSING → CANCELLED (shipped orders can no longer be cancelled)
			{Name: "cancel", Src: []string{models.OrderStatusPending, models.OrderStatusProcessing}, Dst: models.OrderStatusCancelled},
		},
		fsm.Callbacks{},
	)

	return ofsm
}

// Process transitions the order to processing
func (o *OrderFSM) Process(ctx context.Context) error {
	if !o.order.MayProcess() {
		return fmt.Errorf("order cannot be processed in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "process"); err != nil {
		return fmt.Errorf("failed to process order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Ship transitions the order to shipped
func (o *OrderFSM) Ship(ctx context.Context) error {
	if !o.order.MayShip() {
		return fmt.Errorf("order cannot be shipped in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "ship"); err != nil {
		return fmt.Errorf("failed to ship order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Deliver transitions the order to delivered
func (o *OrderFSM) Deliver(ctx context.Context) error {
	if !o.order.MayDeliver() {
		return fmt.Errorf("order cannot be delivered in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "deliver"); err != nil {
		return fmt.Errorf("failed to deliver order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Cancel transitions the order to cancelled
func (o *OrderFSM) Cancel(ctx context.Context) error {
	if !o.order.MayCancel() {
		return fmt.Errorf("order cannot be cancelled in current state: %s", o.order.Status)
	}

	if err := o.fsm.Event(ctx, "cancel"); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Current returns the current state
func (o *OrderFSM) Current() string {
	return o.fsm.Current()
}

// Can checks if a transition is possible
func (o *OrderFSM) Can(event string) bool {
	return o.fsm.Can(event)
}
