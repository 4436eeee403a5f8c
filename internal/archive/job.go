package archive

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campuscanteen/canteen-api/internal/order"
)

// OrderSource is the slice of the order store the job reads.
type OrderSource interface {
	CreatedBetween(ctx context.Context, from, to time.Time) ([]order.Order, error)
}

// OrderCloser cancels orders left Pending at day's end.
type OrderCloser interface {
	ForceCancel(ctx context.Context, orderID primitive.ObjectID) error
}

type Job struct {
	archives Repository
	orders   OrderSource
	closer   OrderCloser
	onRun    func(outcome string)
}

func NewJob(archives Repository, orders OrderSource, closer OrderCloser) *Job {
	return &Job{archives: archives, orders: orders, closer: closer}
}

// WithHook wires a metrics callback reporting each run's outcome.
func (j *Job) WithHook(onRun func(outcome string)) *Job {
	j.onRun = onRun
	return j
}

// Run archives the given calendar date: aggregate count, revenue and
// per-status counts over [date 00:00, next day 00:00), persist one
// archive keyed by the date, then cancel orders from that day still
// Pending. Re-running for an archived date is a no-op.
func (j *Job) Run(ctx context.Context, date time.Time) error {
	day := Day(date)
	orders, err := j.orders.CreatedBetween(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	a := &DailyArchive{
		Date:        day,
		TotalOrders: len(orders),
		Orders:      make([]primitive.ObjectID, 0, len(orders)),
	}
	for _, o := range orders {
		a.Orders = append(a.Orders, o.ID)
		switch o.Status {
		case order.StatusPending:
			a.OrderCount.Pending++
		case order.StatusPreparing:
			a.OrderCount.Preparing++
		case order.StatusReady:
			a.OrderCount.Ready++
		case order.StatusDelivered:
			a.OrderCount.Delivered++
		case order.StatusCancelled:
			a.OrderCount.Cancelled++
		}
	}
	a.TotalRevenue = order.SumTotals(orders)

	if err := j.archives.Create(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicate) {
			// already archived; reruns must not corrupt state
			log.Printf("[archive] %s already archived, skipping", day.Format("2006-01-02"))
			j.report("skipped")
			return nil
		}
		j.report("error")
		return err
	}

	// Unacknowledged orders do not roll over to the next day.
	cancelled := 0
	for _, o := range orders {
		if o.Status != order.StatusPending {
			continue
		}
		if err := j.closer.ForceCancel(ctx, o.ID); err != nil {
			log.Printf("[archive] cancel stale order %s: %v", o.OrderNumber, err)
			continue
		}
		cancelled++
	}
	log.Printf("[archive] %s archived: %d orders, %.2f revenue, %d stale cancelled",
		day.Format("2006-01-02"), a.TotalOrders, a.TotalRevenue, cancelled)
	j.report("ok")
	return nil
}

func (j *Job) report(outcome string) {
	if j.onRun != nil {
		j.onRun(outcome)
	}
}

// Schedule runs the job every midnight (local time) for the day that
// just ended. SkipIfStillRunning guarantees runs never overlap; the next
// run is only admitted after the current one finishes.
func (j *Job) Schedule() *cron.Cron {
	quiet := cron.PrintfLogger(log.New(io.Discard, "", 0))
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(quiet)))
	_, err := c.AddFunc("0 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		yesterday := time.Now().AddDate(0, 0, -1)
		if err := j.Run(ctx, yesterday); err != nil {
			log.Printf("[archive] run failed: %v", err)
		}
	})
	if err != nil {
		// static spec, cannot fail at runtime
		panic(err)
	}
	c.Start()
	return c
}
