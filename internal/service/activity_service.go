package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/request-desk/internal/events"
	"github.com/spec-kit/request-desk/internal/observability"
)

// ActivityService records domain events in the log and in metrics.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventRequestCreated, a.handleRequestCreated)
	a.dispatcher.Subscribe(events.EventRequestStatusChanged, a.handleRequestStatusChanged)
	a.dispatcher.Subscribe(events.EventCommentAdded, a.handleCommentAdded)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
}

func (a *ActivityService) handleRequestCreated(_ context.Context, event events.Event) error {
	a.logger.Info("RequestCreated",
		zap.String("request_id", event.RequestID),
		zap.String("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	a.metrics.RecordRequestCreated()
	return nil
}

func (a *ActivityService) handleRequestStatusChanged(_ context.Context, event events.Event) error {
	a.logger.Info("RequestStatusChanged",
		zap.String("request_id", event.RequestID),
		zap.String("user_id", event.Actor.UserID),
		zap.String("role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.RequestStatusChangedPayload); ok {
		a.metrics.RecordTransition(string(payload.OldStatus), string(payload.NewStatus), string(event.Actor.Role))
	}
	return nil
}

func (a *ActivityService) handleCommentAdded(_ context.Context, event events.Event) error {
	a.logger.Info("CommentAdded",
		zap.String("request_id", event.RequestID),
		zap.String("user_id", event.Actor.UserID),
		zap.Any("payload", event.Payload))
	a.metrics.RecordCommentAdded()
	return nil
}

func (a *ActivityService) handleLoginFailed(_ context.Context, event events.Event) error {
	email := ""
	if payload, ok := event.Payload.(events.LoginFailedPayload); ok {
		email = payload.Email
	}
	a.logger.Warn("LoginFailed", zap.String("email", email))
	a.metrics.RecordLoginFailure()
	return nil
}
