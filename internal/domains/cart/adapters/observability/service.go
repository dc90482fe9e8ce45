package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartports "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
)

const tracerName = "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Cart(ctx context.Context, session string) (*cartports.CartView, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Cart")
	defer span.End()

	view, err := s.inner.Cart(ctx, session)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load cart")
	}
	if view.Order != nil {
		span.SetAttributes(attribute.Int64("order.id", view.Order.ID), attribute.Int("cart.items", len(view.Items)))
	}
	return view, nil
}

func (s *Service) Add(ctx context.Context, session, class string, purchasableID int64, quantity int, filter cartports.Filter) (*cartports.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Add",
		trace.WithAttributes(
			attribute.String("purchasable.class", class),
			attribute.Int64("purchasable.id", purchasableID),
			attribute.Int("quantity", quantity),
		))
	defer span.End()

	s.logInfo(ctx, "adding to cart", slog.String("class", class), slog.Int64("purchasable.id", purchasableID), slog.Int("quantity", quantity))
	out, err := s.inner.Add(ctx, session, class, purchasableID, quantity, filter)
	if err != nil {
		s.recordOutcome(ctx, span, "add", out)
		return out, s.handleError(ctx, span, err, "failed to add to cart", slog.Int64("purchasable.id", purchasableID))
	}
	s.metrics.recordAdded(ctx, class, quantity)
	s.recordOutcome(ctx, span, "add", out)
	return out, nil
}

func (s *Service) Remove(ctx context.Context, session, class string, purchasableID int64, quantity int, filter cartports.Filter) (*cartports.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Remove",
		trace.WithAttributes(attribute.String("purchasable.class", class), attribute.Int64("purchasable.id", purchasableID)))
	defer span.End()

	s.logInfo(ctx, "removing from cart", slog.String("class", class), slog.Int64("purchasable.id", purchasableID), slog.Int("quantity", quantity))
	out, err := s.inner.Remove(ctx, session, class, purchasableID, quantity, filter)
	if err != nil {
		s.recordOutcome(ctx, span, "remove", out)
		return out, s.handleError(ctx, span, err, "failed to remove from cart", slog.Int64("purchasable.id", purchasableID))
	}
	s.recordOutcome(ctx, span, "remove", out)
	return out, nil
}

func (s *Service) SetQuantity(ctx context.Context, session, class string, purchasableID int64, quantity int, filter cartports.Filter) (*cartports.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.SetQuantity",
		trace.WithAttributes(
			attribute.String("purchasable.class", class),
			attribute.Int64("purchasable.id", purchasableID),
			attribute.Int("quantity", quantity),
		))
	defer span.End()

	s.logInfo(ctx, "setting cart quantity", slog.Int64("purchasable.id", purchasableID), slog.Int("quantity", quantity))
	out, err := s.inner.SetQuantity(ctx, session, class, purchasableID, quantity, filter)
	if err != nil {
		s.recordOutcome(ctx, span, "setquantity", out)
		return out, s.handleError(ctx, span, err, "failed to set quantity", slog.Int64("purchasable.id", purchasableID))
	}
	s.recordOutcome(ctx, span, "setquantity", out)
	return out, nil
}

func (s *Service) Clear(ctx context.Context, session string) (*cartports.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	s.logInfo(ctx, "clearing cart")
	out, err := s.inner.Clear(ctx, session)
	if err != nil {
		s.recordOutcome(ctx, span, "clear", out)
		return out, s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.metrics.recordCleared(ctx)
	s.recordOutcome(ctx, span, "clear", out)
	return out, nil
}

func (s *Service) Archive(ctx context.Context, session string, requestedID int64) (*cartports.Outcome, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Archive", trace.WithAttributes(attribute.Int64("order.id", requestedID)))
	defer span.End()

	s.logInfo(ctx, "archiving session order", slog.Int64("order.id", requestedID))
	out, err := s.inner.Archive(ctx, session, requestedID)
	if err != nil {
		s.recordOutcome(ctx, span, "archive", out)
		return out, s.handleError(ctx, span, err, "failed to archive session order", slog.Int64("order.id", requestedID))
	}
	s.metrics.recordArchived(ctx)
	s.recordOutcome(ctx, span, "archive", out)
	return out, nil
}

func (s *Service) History(ctx context.Context, session string) ([]int64, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.History")
	defer span.End()

	ids, err := s.inner.History(ctx, session)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list session history")
	}
	span.SetAttributes(attribute.Int("history.count", len(ids)))
	return ids, nil
}

func (s *Service) recordOutcome(ctx context.Context, span trace.Span, operation string, out *cartports.Outcome) {
	if out == nil {
		return
	}
	span.SetAttributes(
		attribute.Bool("cart.outcome.ok", out.OK),
		attribute.String("cart.outcome.severity", string(out.Severity)),
	)
	s.metrics.recordOutcome(ctx, operation, out.Severity)
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsAdded     metric.Int64Counter
	cartsCleared   metric.Int64Counter
	ordersArchived metric.Int64Counter
	outcomes       metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Quantity of purchasables added to carts"))
	cartsCleared, _ := m.Int64Counter("cart.service.carts_cleared", metric.WithDescription("Number of carts cleared"))
	ordersArchived, _ := m.Int64Counter("cart.service.orders_archived", metric.WithDescription("Number of session orders archived"))
	outcomes, _ := m.Int64Counter("cart.service.outcomes", metric.WithDescription("Operation outcomes by severity"))
	return serviceMetrics{itemsAdded: itemsAdded, cartsCleared: cartsCleared, ordersArchived: ordersArchived, outcomes: outcomes}
}

func (m serviceMetrics) recordAdded(ctx context.Context, class string, quantity int) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, int64(quantity), metric.WithAttributes(attribute.String("purchasable.class", class)))
	}
}

func (m serviceMetrics) recordCleared(ctx context.Context) {
	if m.cartsCleared != nil {
		m.cartsCleared.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordArchived(ctx context.Context) {
	if m.ordersArchived != nil {
		m.ordersArchived.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordOutcome(ctx context.Context, operation string, severity cartports.Severity) {
	if m.outcomes != nil {
		m.outcomes.Add(ctx, 1, metric.WithAttributes(
			attribute.String("cart.operation", operation),
			attribute.String("cart.severity", string(severity)),
		))
	}
}

var _ cartports.Service = (*Service)(nil)
