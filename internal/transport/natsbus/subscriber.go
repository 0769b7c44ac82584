// Package natsbus delivers push events over NATS. Each message carries one PushEvent as JSON;
// request messages get a Reply.
package natsbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"explorer/internal/bootstrap/logging"
	domainexplorer "explorer/internal/domain/explorer"
	"explorer/internal/errs"
	"explorer/internal/usecase/explorer"
)

const (
	DefaultSubject = "explorer.events"
	DefaultQueue   = "explorer"
)

type Ingester interface {
	Ingest(ctx context.Context, event domainexplorer.PushEvent) (explorer.IngestResult, error)
}

// Reply answers a request message. Error is empty on success.
type Reply struct {
	OK     bool                   `json:"ok"`
	Result *explorer.IngestResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
	// Retry is set when the failure is transient and the same event may be sent again.
	Retry bool `json:"retry,omitempty"`
}

type Subscriber struct {
	conn    *nats.Conn
	subject string
	queue   string
	svc     Ingester
	respond func(msg *nats.Msg, data []byte) error
}

func NewSubscriber(conn *nats.Conn, subject string, queue string, svc Ingester) *Subscriber {
	if subject == "" {
		subject = DefaultSubject
	}
	if queue == "" {
		queue = DefaultQueue
	}
	return &Subscriber{
		conn:    conn,
		subject: subject,
		queue:   queue,
		svc:     svc,
		respond: func(msg *nats.Msg, data []byte) error { return msg.Respond(data) },
	}
}

// Run consumes the subject in the queue group until ctx is done, then drains the subscription.
func (s *Subscriber) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.conn == nil {
		return errors.New("nats connection is required")
	}
	if s.svc == nil {
		return errors.New("ingest service is required")
	}

	logCtx := logging.WithAttrs(ctx, slog.String("component", "transport.nats"))
	sub, err := s.conn.QueueSubscribe(s.subject, s.queue, func(msg *nats.Msg) {
		s.handle(logCtx, msg)
	})
	if err != nil {
		return errs.Wrapf(err, "subscribe %s", s.subject)
	}
	logging.Info(logCtx, "nats consumer started", slog.String("subject", s.subject), slog.String("queue", s.queue))

	<-ctx.Done()
	if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
		return errs.Wrap(err, "drain subscription")
	}
	logging.Info(logCtx, "nats consumer stopped")
	return nil
}

// handle detaches from cancellation so messages delivered while the subscription drains are
// still stored.
func (s *Subscriber) handle(ctx context.Context, msg *nats.Msg) {
	ctx = context.WithoutCancel(ctx)
	reply := s.ingest(ctx, msg.Data)
	if msg.Reply == "" {
		return
	}

	raw, err := json.Marshal(reply)
	if err == nil {
		err = s.respond(msg, raw)
	}
	if err != nil {
		logging.Warn(ctx, "reply to push event failed", slog.String("reply", msg.Reply), slog.Any("err", errs.Loggable(err)))
	}
}

func (s *Subscriber) ingest(ctx context.Context, data []byte) Reply {
	var event domainexplorer.PushEvent
	if err := json.Unmarshal(data, &event); err != nil {
		logging.Warn(ctx, "drop malformed push event", slog.Any("err", errs.Loggable(err)))
		return Reply{Error: fmt.Sprintf("decode push event: %v", err)}
	}

	result, err := s.svc.Ingest(ctx, event)
	if err != nil {
		retry := errors.Is(err, domainexplorer.ErrStoreUnavailable) ||
			errors.Is(err, context.Canceled) ||
			errors.Is(err, context.DeadlineExceeded)
		logging.Warn(
			ctx,
			"push event rejected",
			slog.String("network", event.Network),
			slog.Bool("retry", retry),
			slog.Any("err", errs.Loggable(err)),
		)
		return Reply{Error: err.Error(), Retry: retry}
	}
	return Reply{OK: true, Result: &result}
}

// Publish sends one event as a request and waits for the consumer's reply.
func Publish(ctx context.Context, conn *nats.Conn, subject string, event domainexplorer.PushEvent) (Reply, error) {
	if conn == nil {
		return Reply{}, errors.New("nats connection is required")
	}
	if subject == "" {
		subject = DefaultSubject
	}

	body, err := json.Marshal(event)
	if err != nil {
		return Reply{}, errs.Wrap(err, "encode push event")
	}
	msg, err := conn.RequestWithContext(ctx, subject, body)
	if err != nil {
		return Reply{}, errs.Wrapf(err, "request %s", subject)
	}

	var reply Reply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return Reply{}, errs.Wrap(err, "decode reply")
	}
	return reply, nil
}
