package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/request-desk/internal/auth"
	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/events"
	"github.com/spec-kit/request-desk/internal/observability"
	"github.com/spec-kit/request-desk/internal/persistence"
	"github.com/spec-kit/request-desk/internal/repository"
)

type fixture struct {
	store      *persistence.FileStore
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
	auth       *AuthService
	requests   *RequestService
	comments   *CommentService
	categories *CategoryService
	published  []events.Event
}

var (
	requester = domain.User{ID: "user-1", Name: "요청자", Role: domain.RoleRequester}
	otherUser = domain.User{ID: "user-9", Name: "다른 요청자", Role: domain.RoleRequester}
	approver  = domain.User{ID: "user-2", Name: "승인자", Role: domain.RoleApprover}
	handler   = domain.User{ID: "user-3", Name: "처리자", Role: domain.RoleHandler}
	admin     = domain.User{ID: "user-4", Name: "관리자", Role: domain.RoleAdmin}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := persistence.NewFileStore(t.TempDir())
	require.NoError(t, err)

	hash := func(plain string) (string, error) { return auth.HashPassword(plain, 4) }
	require.NoError(t, persistence.Seed(context.Background(), store, hash, zap.NewNop()))

	f := &fixture{
		store:      store,
		metrics:    observability.NewMetrics(),
		dispatcher: events.NewInMemoryDispatcher(zap.NewNop()),
	}
	for _, et := range []events.EventType{events.EventRequestCreated, events.EventRequestStatusChanged, events.EventCommentAdded, events.EventLoginFailed} {
		f.dispatcher.Subscribe(et, func(_ context.Context, e events.Event) error {
			f.published = append(f.published, e)
			return nil
		})
	}
	NewActivityService(f.dispatcher, zap.NewNop(), f.metrics).RegisterHandlers()

	users := repository.NewUserRepository(store)
	requests := repository.NewRequestRepository(store)
	categories := repository.NewCategoryRepository(store)
	sessions := auth.NewSessionManager(auth.NewTokenManager("test-secret", time.Hour), repository.NewMemorySessionRepository())

	f.auth = NewAuthService(AuthDependencies{UserRepo: users, Sessions: sessions, Dispatcher: f.dispatcher})
	f.requests = NewRequestService(RequestDependencies{RequestRepo: requests, CategoryRepo: categories, Dispatcher: f.dispatcher})
	f.comments = NewCommentService(repository.NewCommentRepository(store), requests, f.dispatcher)
	f.categories = NewCategoryService(categories)
	return f
}

func (f *fixture) eventsOf(et events.EventType) []events.Event {
	var out []events.Event
	for _, e := range f.published {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}

func (f *fixture) create(t *testing.T, user domain.User, title string) *domain.Request {
	t.Helper()
	req, err := f.requests.CreateRequest(context.Background(), user, RequestCreateInput{
		MajorCategory: "네트워크",
		MinorCategory: "VPN",
		Title:         title,
		Description:   "재택 근무 중 VPN 연결이 되지 않습니다.",
	})
	require.NoError(t, err)
	return req
}
