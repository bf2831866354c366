package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/salesorder/internal/observability"
	"github.com/odyssey-erp/salesorder/internal/sales/orders"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSalesOrderSubmitted is emitted once per order when it leaves DRAFT.
	TaskSalesOrderSubmitted = "sales_order:submitted"
)

// NewSalesOrderSubmittedTask constructs an Asynq task. The task ID is derived from the
// order so a repeated publish for the same order is rejected by the broker.
func NewSalesOrderSubmittedTask(event orders.SubmittedEvent) (*asynq.Task, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSalesOrderSubmitted, data,
		asynq.Queue(QueueDefault),
		asynq.TaskID(TaskSalesOrderSubmitted+":"+event.OrderID.String()),
		asynq.MaxRetry(5),
	), nil
}

// SubmittedHandler processes TaskSalesOrderSubmitted tasks.
type SubmittedHandler struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

func NewSubmittedHandler(logger *slog.Logger, metrics *observability.Metrics) *SubmittedHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SubmittedHandler{logger: logger, metrics: metrics}
}

func (h *SubmittedHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var event orders.SubmittedEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		h.metrics.ObserveJob(TaskSalesOrderSubmitted, err)
		return fmt.Errorf("decode %s payload: %v: %w", TaskSalesOrderSubmitted, err, asynq.SkipRetry)
	}
	h.logger.Info("sales order submitted",
		slog.String("job", TaskSalesOrderSubmitted),
		slog.String("order_id", event.OrderID.String()),
		slog.String("so_number", event.SONumber),
		slog.String("total_amount", event.TotalAmount.String()),
		slog.Time("submitted_at", event.SubmittedAt),
	)
	h.metrics.ObserveJob(TaskSalesOrderSubmitted, nil)
	return nil
}
