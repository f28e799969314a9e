package operator

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-ledger/internal/events"
	"github.com/carson-networks/budget-ledger/internal/operator/actions"
	"github.com/carson-networks/budget-ledger/internal/storage"
)

// WriteOpener opens units of work. *storage.Storage satisfies it.
type WriteOpener interface {
	Write(ctx context.Context) (*storage.Writer, error)
}

// Operator is the worker that processes items from the queue. Each action runs
// in its own unit of work; balance changes are published only after commit.
type Operator struct {
	storage   WriteOpener
	queue     chan ActionItem
	publisher events.Publisher
	log       *logrus.Logger
}

func NewOperator(s WriteOpener, queue chan ActionItem, publisher events.Publisher, log *logrus.Logger) *Operator {
	return &Operator{
		storage:   s,
		queue:     queue,
		publisher: publisher,
		log:       log,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		item.response <- ActionItemResponse{err: o.processItem(item)}
	}
}

func (o *Operator) processItem(item ActionItem) (err error) {
	if err := item.ctx.Err(); err != nil {
		return err
	}

	writer, err := o.storage.Write(item.ctx)
	if err != nil {
		return fmt.Errorf("open unit of work: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = writer.Rollback(context.WithoutCancel(item.ctx))
			err = fmt.Errorf("action %s panicked: %v", item.action.ActionName(), r)
			o.log.WithField("action", item.action.ActionName()).Error(err)
		}
	}()

	if err = item.action.Perform(item.ctx, writer); err != nil {
		_ = writer.Rollback(context.WithoutCancel(item.ctx))
		entry := o.log.WithError(err).WithField("action", item.action.ActionName())
		entry.Info("Operator.Action.RolledBack")
		if o.log.IsLevelEnabled(logrus.DebugLevel) {
			entry.Debug(spew.Sdump(item.action))
		}
		return err
	}

	if err = writer.Commit(item.ctx); err != nil {
		_ = writer.Rollback(context.WithoutCancel(item.ctx))
		return fmt.Errorf("commit %s: %w", item.action.ActionName(), err)
	}

	o.publish(item, writer)
	return nil
}

func (o *Operator) publish(item ActionItem, writer *storage.Writer) {
	entries := writer.Ledger.Entries()
	if len(entries) == 0 {
		return
	}
	evs := events.FromEntries(item.action.ActionName(), entries, time.Now().UTC())
	if err := o.publisher.Publish(context.WithoutCancel(item.ctx), evs); err != nil {
		o.log.WithError(err).WithFields(logrus.Fields{
			"action": item.action.ActionName(),
			"events": len(evs),
		}).Warn("Operator.Publish.Error")
	}
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
