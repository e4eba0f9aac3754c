package worker

import (
    "context"
    "fmt"
    "log"
    "time"

    "arbt-storefront-api/database"
    "arbt-storefront-api/models"
    "arbt-storefront-api/queue"
    "arbt-storefront-api/services/email"
)

// Worker drains the job queue: confirming submitted orders, sending receipt
// and reminder mail. Order confirmation is the second phase of the two-phase
// submission: the handler optimistically created a pending order; the worker
// either confirms it or reverts it to failed.
type Worker struct {
    queue     *queue.Queue
    db        *database.Connection
    mailer    email.Sender
    shutdown  chan struct{}
    isRunning bool
}

func NewWorker(q *queue.Queue, db *database.Connection, mailer email.Sender) *Worker {
    return &Worker{
        queue:    q,
        db:       db,
        mailer:   mailer,
        shutdown: make(chan struct{}),
    }
}

// Start begins processing jobs with the given number of goroutines.
func (w *Worker) Start(concurrency int) {
    w.isRunning = true

    for i := 0; i < concurrency; i++ {
        go w.processJobs(i)
    }
    go w.promoteDelayedJobs()

    log.Printf("Started %d worker goroutines", concurrency)
}

// Stop signals the worker to stop processing jobs.
func (w *Worker) Stop() {
    if !w.isRunning {
        return
    }

    log.Println("Stopping worker...")
    close(w.shutdown)
    w.isRunning = false
}

func (w *Worker) processJobs(workerID int) {
    log.Printf("Worker %d starting", workerID)

    for {
        select {
        case <-w.shutdown:
            log.Printf("Worker %d shutting down", workerID)
            return
        default:
        }

        ctx := context.Background()
        job, err := w.queue.Dequeue(ctx, 5*time.Second)
        if err != nil {
            log.Printf("Worker %d dequeue error: %v", workerID, err)
            time.Sleep(time.Second)
            continue
        }
        if job == nil {
            continue
        }

        if err := w.handleJob(ctx, job); err != nil {
            log.Printf("Worker %d: job %s failed: %v", workerID, job.ID, err)
            if failErr := w.queue.FailJob(ctx, job, err); failErr != nil {
                log.Printf("Worker %d: error recording failure for job %s: %v", workerID, job.ID, failErr)
            }
            continue
        }

        if err := w.queue.CompleteJob(ctx, job); err != nil {
            log.Printf("Worker %d: error completing job %s: %v", workerID, job.ID, err)
        }
    }
}

func (w *Worker) promoteDelayedJobs() {
    ticker := time.NewTicker(10 * time.Second)
    defer ticker.Stop()

    for {
        select {
        case <-w.shutdown:
            return
        case <-ticker.C:
            if err := w.queue.ProcessDelayedJobs(context.Background()); err != nil {
                log.Printf("Error promoting delayed jobs: %v", err)
            }
        }
    }
}

func (w *Worker) handleJob(ctx context.Context, job *queue.Job) error {
    switch job.Type {
    case queue.JobTypeConfirmOrder:
        return w.confirmOrder(job)
    case queue.JobTypeSendReceipt:
        return w.sendReceipt(job)
    case queue.JobTypeBookingReminder:
        return w.sendBookingReminders()
    default:
        return fmt.Errorf("unknown job type %q", job.Type)
    }
}

// confirmOrder verifies the pending order and transitions it to confirmed.
// A missing payment proof on a gcash order reverts the optimistic pending
// state to failed instead.
func (w *Worker) confirmOrder(job *queue.Job) error {
    orderID, ok := job.Data["order_id"].(string)
    if !ok || orderID == "" {
        return fmt.Errorf("confirm_order job missing order_id")
    }

    order, err := w.db.GetOrderByID(orderID)
    if err != nil {
        return fmt.Errorf("error loading order %s: %v", orderID, err)
    }

    if order.Status != models.OrderStatusPending {
        log.Printf("Order %s already in status %s, nothing to confirm", orderID, order.Status)
        return nil
    }

    if order.PaymentMethod == "gcash" && order.PaymentProof == "" {
        log.Printf("Order %s has no payment proof, reverting to failed", orderID)
        return w.db.UpdateOrderStatus(orderID, models.OrderStatusPending, models.OrderStatusFailed)
    }

    if err := w.db.UpdateOrderStatus(orderID, models.OrderStatusPending, models.OrderStatusConfirmed); err != nil {
        return err
    }

    log.Printf("Order %s confirmed", orderID)

    if email, ok := job.Data["email"].(string); ok && email != "" {
        if err := w.queue.Enqueue(context.Background(), queue.JobTypeSendReceipt, map[string]interface{}{
            "order_id": orderID,
            "email":    email,
        }); err != nil {
            log.Printf("Warning: failed to enqueue receipt for order %s: %v", orderID, err)
        }
    }
    return nil
}

func (w *Worker) sendReceipt(job *queue.Job) error {
    orderID, _ := job.Data["order_id"].(string)
    to, _ := job.Data["email"].(string)
    if orderID == "" || to == "" {
        return fmt.Errorf("send_receipt job missing order_id or email")
    }

    order, err := w.db.GetOrderByID(orderID)
    if err != nil {
        return fmt.Errorf("error loading order %s: %v", orderID, err)
    }

    subject := fmt.Sprintf("ARBT order %s confirmed", order.ID)
    return w.mailer.SendEmail(to, subject, email.OrderReceiptBody(order))
}

func (w *Worker) sendBookingReminders() error {
    bookings, err := w.db.GetUpcomingBookings(24 * time.Hour)
    if err != nil {
        return err
    }

    for _, b := range bookings {
        subject := fmt.Sprintf("Reminder: %s appointment", b.Service)
        if err := w.mailer.SendEmail(b.Email, subject, email.BookingReminderBody(&b)); err != nil {
            log.Printf("Warning: failed to send reminder for booking %d: %v", b.ID, err)
        }
    }
    return nil
}
