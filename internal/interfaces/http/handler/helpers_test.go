package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	referralapp "github.com/acp/web/internal/application/referral"
	"github.com/acp/web/internal/domain/course"
	"github.com/acp/web/internal/domain/person"
	"github.com/acp/web/internal/domain/pni"
	"github.com/acp/web/internal/domain/referral"
	"github.com/acp/web/internal/infrastructure/cache"
	"github.com/acp/web/internal/infrastructure/session"
	"github.com/acp/web/internal/interfaces/http/middleware"
	"github.com/acp/web/internal/interfaces/http/presenter"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

const (
	testUsername  = "USER1"
	testUserToken = "user-token"
	testReferral  = "R1"
)

// capturingRender records every page instead of executing templates
type capturingRender struct {
	mu    sync.Mutex
	pages []capturedPage
}

type capturedPage struct {
	name string
	data any
}

func (r *capturingRender) Instance(name string, data any) render.Render {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages = append(r.pages, capturedPage{name: name, data: data})
	return render.Data{ContentType: "text/html; charset=utf-8", Data: []byte(name)}
}

type testEnv struct {
	t       *testing.T
	engine  *gin.Engine
	render  *capturingRender
	session *session.Session
}

// newTestEnv builds an engine with a signed-in user and a session shared by
// every request, so tests can inspect it after each call
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := cache.NewInMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	env := &testEnv{
		t:       t,
		engine:  gin.New(),
		render:  &capturingRender{},
		session: session.NewManager(store, time.Hour).New(),
	}
	env.engine.HTMLRender = env.render
	env.engine.Use(middleware.ErrorPages())
	env.engine.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, env.session)
		c.Set(middleware.JWTUsernameKey, testUsername)
		c.Set(middleware.JWTTokenKey, testUserToken)
		c.Next()
	})
	return env
}

// mount registers h under both journeys
func (e *testEnv) mount(method, suffix string, h gin.HandlerFunc) {
	for _, j := range []presenter.Journey{presenter.Refer, presenter.Assess} {
		e.engine.Handle(method, j.Base+"/referrals/:referralId"+suffix, h)
	}
}

func (e *testEnv) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func (e *testEnv) post(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func (e *testEnv) lastPage() capturedPage {
	e.t.Helper()
	e.render.mu.Lock()
	defer e.render.mu.Unlock()
	require.NotEmpty(e.t, e.render.pages, "no page rendered")
	return e.render.pages[len(e.render.pages)-1]
}

func (e *testEnv) renderedNothing() bool {
	e.render.mu.Lock()
	defer e.render.mu.Unlock()
	return len(e.render.pages) == 0
}

// startUpdate puts an update in progress into the session
func (e *testEnv) startUpdate(data referral.StatusUpdateSessionData) {
	e.session.SetStatusUpdate(&data)
}

// MockReferralService is a mock of ReferralService
type MockReferralService struct {
	mock.Mock
}

func (m *MockReferralService) GetReferral(ctx context.Context, username, referralID string, opts referralapp.GetReferralOptions) (*referral.Referral, error) {
	args := m.Called(ctx, username, referralID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*referral.Referral), args.Error(1)
}

func (m *MockReferralService) GetReferralStatusHistory(ctx context.Context, userToken, username, referralID string) ([]referral.StatusHistoryEntry, error) {
	args := m.Called(ctx, userToken, username, referralID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]referral.StatusHistoryEntry), args.Error(1)
}

func (m *MockReferralService) GetStatusTransitions(ctx context.Context, username, referralID string, opts referral.TransitionOptions) ([]referral.StatusTransition, error) {
	args := m.Called(ctx, username, referralID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]referral.StatusTransition), args.Error(1)
}

func (m *MockReferralService) UpdateReferralStatus(ctx context.Context, username, referralID string, update referral.StatusUpdate) error {
	args := m.Called(ctx, username, referralID, update)
	return args.Error(0)
}

// MockReferenceDataService is a mock of ReferenceDataService
type MockReferenceDataService struct {
	mock.Mock
}

func (m *MockReferenceDataService) GetReferralStatusCodeCategories(ctx context.Context, username string, decision referral.StatusCode) ([]referral.StatusCategory, error) {
	args := m.Called(ctx, username, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]referral.StatusCategory), args.Error(1)
}

func (m *MockReferenceDataService) GetReferralStatusCodeReasons(ctx context.Context, username, categoryCode string, decision referral.StatusCode) ([]referral.StatusReason, error) {
	args := m.Called(ctx, username, categoryCode, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]referral.StatusReason), args.Error(1)
}

// MockCourseService is a mock of CourseService
type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) GetCourseByOffering(ctx context.Context, username, offeringID string) (*course.Course, error) {
	args := m.Called(ctx, username, offeringID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*course.Course), args.Error(1)
}

// MockPersonService is a mock of PersonService
type MockPersonService struct {
	mock.Mock
}

func (m *MockPersonService) GetPerson(ctx context.Context, username, prisonNumber string) (*person.Person, error) {
	args := m.Called(ctx, username, prisonNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*person.Person), args.Error(1)
}

// MockPniService is a mock of PniService
type MockPniService struct {
	mock.Mock
}

func (m *MockPniService) GetPni(ctx context.Context, username, prisonNumber string) (*pni.Pni, error) {
	args := m.Called(ctx, username, prisonNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pni.Pni), args.Error(1)
}

func testHistory() []referral.StatusHistoryEntry {
	return []referral.StatusHistoryEntry{
		{
			ID:                "H2",
			Status:            referral.StatusAssessmentStarted,
			StatusDescription: "Assessment started",
			StatusColour:      "yellow",
			StatusStartDate:   time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
			Username:          testUsername,
			ByLineText:        "You",
		},
		{
			ID:                "H1",
			Status:            referral.StatusReferralSubmitted,
			StatusDescription: "Referral submitted",
			StatusColour:      "green",
			StatusStartDate:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			Username:          "OTHER",
			ByLineText:        "Other User",
		},
	}
}

func testReferralRecord() *referral.Referral {
	return &referral.Referral{
		ID:                testReferral,
		OfferingID:        "OFF1",
		PrisonNumber:      "A1234AA",
		Status:            referral.StatusAssessedSuitable,
		StatusDescription: "Assessed as suitable",
		StatusColour:      "green",
	}
}
