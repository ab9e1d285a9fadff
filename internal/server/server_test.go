package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MarioWinter/coderr/internal/identity"
	offerdomain "github.com/MarioWinter/coderr/internal/offer/domain"
	orderdomain "github.com/MarioWinter/coderr/internal/order/domain"
	"github.com/MarioWinter/coderr/internal/policy"
	profiledomain "github.com/MarioWinter/coderr/internal/profile/domain"
	reviewdomain "github.com/MarioWinter/coderr/internal/review/domain"
	statsdomain "github.com/MarioWinter/coderr/internal/stats/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type fakeProfileService struct {
	tokens map[string]identity.Principal
}

func (f *fakeProfileService) Register(ctx context.Context, req profiledomain.RegisterRequest) (*profiledomain.AuthResponse, error) {
	_ = ctx
	_ = req
	return &profiledomain.AuthResponse{Token: "fresh-token"}, nil
}

func (f *fakeProfileService) Login(ctx context.Context, req profiledomain.LoginRequest) (*profiledomain.AuthResponse, error) {
	_ = ctx
	_ = req
	return &profiledomain.AuthResponse{Token: "fresh-token"}, nil
}

func (f *fakeProfileService) Authenticate(ctx context.Context, token string) (identity.Principal, error) {
	_ = ctx
	if p, ok := f.tokens[token]; ok {
		return p, nil
	}
	return identity.Anonymous(), profiledomain.ErrInvalidToken
}

func (f *fakeProfileService) Get(ctx context.Context, id string) (*profiledomain.Response, error) {
	_ = ctx
	return &profiledomain.Response{ID: id}, nil
}

func (f *fakeProfileService) Update(ctx context.Context, principal identity.Principal, req profiledomain.UpdateRequest) (*profiledomain.Response, error) {
	_ = ctx
	_ = principal
	return &profiledomain.Response{ID: req.ID}, nil
}

func (f *fakeProfileService) ListByType(ctx context.Context, userType identity.UserType) ([]profiledomain.Response, error) {
	_ = ctx
	_ = userType
	return nil, nil
}

type fakeOfferService struct {
	createCalls int
	err         error
}

func (f *fakeOfferService) Create(ctx context.Context, principal identity.Principal, req offerdomain.CreateRequest) (*offerdomain.Response, error) {
	f.createCalls++
	_ = ctx
	if err := policy.CanCreateOffer(principal); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &offerdomain.Response{Title: req.Title}, nil
}

func (f *fakeOfferService) Update(ctx context.Context, principal identity.Principal, req offerdomain.UpdateRequest) (*offerdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = req
	return nil, f.err
}

func (f *fakeOfferService) Delete(ctx context.Context, principal identity.Principal, id string) error {
	_ = ctx
	_ = principal
	_ = id
	return f.err
}

func (f *fakeOfferService) Get(ctx context.Context, id string) (*offerdomain.DetailResponse, error) {
	_ = ctx
	_ = id
	return nil, f.err
}

func (f *fakeOfferService) List(ctx context.Context, req offerdomain.ListRequest) (*offerdomain.ListResponse, error) {
	_ = ctx
	_ = req
	return &offerdomain.ListResponse{Results: []offerdomain.Response{}}, nil
}

func (f *fakeOfferService) GetTier(ctx context.Context, id string) (*offerdomain.TierView, error) {
	_ = ctx
	_ = id
	return nil, f.err
}

type fakeOrderService struct {
	err error
}

func (f *fakeOrderService) Create(ctx context.Context, principal identity.Principal, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = req
	return nil, f.err
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, principal identity.Principal, req orderdomain.UpdateStatusRequest) (*orderdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = req
	return nil, f.err
}

func (f *fakeOrderService) Delete(ctx context.Context, principal identity.Principal, id string) error {
	_ = ctx
	_ = principal
	_ = id
	return f.err
}

func (f *fakeOrderService) Get(ctx context.Context, principal identity.Principal, id string) (*orderdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = id
	return nil, f.err
}

func (f *fakeOrderService) List(ctx context.Context, principal identity.Principal) ([]orderdomain.Response, error) {
	_ = ctx
	_ = principal
	return nil, f.err
}

func (f *fakeOrderService) CountInProgress(ctx context.Context, businessUserID string) (*orderdomain.CountResponse, error) {
	_ = ctx
	_ = businessUserID
	if f.err != nil {
		return nil, f.err
	}
	return &orderdomain.CountResponse{OrderCount: 2}, nil
}

func (f *fakeOrderService) CountCompleted(ctx context.Context, businessUserID string) (*orderdomain.CompletedCountResponse, error) {
	_ = ctx
	_ = businessUserID
	return nil, f.err
}

type fakeReviewService struct {
	updateCalls int
}

func (f *fakeReviewService) Create(ctx context.Context, principal identity.Principal, req reviewdomain.CreateRequest) (*reviewdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = req
	return &reviewdomain.Response{}, nil
}

func (f *fakeReviewService) Update(ctx context.Context, principal identity.Principal, req reviewdomain.UpdateRequest) (*reviewdomain.Response, error) {
	f.updateCalls++
	_ = ctx
	_ = principal
	_ = req
	return &reviewdomain.Response{}, nil
}

func (f *fakeReviewService) Delete(ctx context.Context, principal identity.Principal, id string) error {
	_ = ctx
	_ = principal
	_ = id
	return nil
}

func (f *fakeReviewService) Get(ctx context.Context, principal identity.Principal, id string) (*reviewdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = id
	return &reviewdomain.Response{ID: id}, nil
}

func (f *fakeReviewService) List(ctx context.Context, principal identity.Principal, req reviewdomain.ListRequest) ([]reviewdomain.Response, error) {
	_ = ctx
	_ = principal
	_ = req
	return nil, nil
}

type fakeStatsService struct{}

func (f *fakeStatsService) BaseInfo(ctx context.Context) (*statsdomain.Response, error) {
	_ = ctx
	return &statsdomain.Response{ReviewCount: 3, AverageRating: 4.2}, nil
}

func newTestServer(offerSvc *fakeOfferService, orderSvc *fakeOrderService, reviewSvc *fakeReviewService) (*Server, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine: engine,
		profileSvc: &fakeProfileService{
			tokens: map[string]identity.Principal{
				"business-token": {UserID: snowflake.ID(1), Type: identity.TypeBusiness, Authenticated: true},
				"customer-token": {UserID: snowflake.ID(2), Type: identity.TypeCustomer, Authenticated: true},
			},
		},
		offerSvc:  offerSvc,
		orderSvc:  orderSvc,
		reviewSvc: reviewSvc,
		statsSvc:  &fakeStatsService{},
	}
	srv.registerAPIRoutes()
	return srv, engine
}

func doJSON(engine *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestCreateOfferAnonymousReturns401(t *testing.T) {
	offerSvc := &fakeOfferService{}
	_, engine := newTestServer(offerSvc, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodPost, "/api/offers/", "", `{"title":"x","details":[]}`)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestCreateOfferCustomerReturns403(t *testing.T) {
	offerSvc := &fakeOfferService{}
	_, engine := newTestServer(offerSvc, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodPost, "/api/offers/", "customer-token", `{"title":"x","details":[]}`)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
	if offerSvc.createCalls != 1 {
		t.Fatalf("expected service to decide authorization, got %d calls", offerSvc.createCalls)
	}
}

func TestCreateOfferBusinessReturns201(t *testing.T) {
	offerSvc := &fakeOfferService{}
	_, engine := newTestServer(offerSvc, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodPost, "/api/offers/", "business-token", `{"title":"Website Design","details":[]}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnknownTokenReturns401(t *testing.T) {
	_, engine := newTestServer(&fakeOfferService{}, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodGet, "/api/offers/", "bogus", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestListOffersIsPublic(t *testing.T) {
	_, engine := newTestServer(&fakeOfferService{}, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodGet, "/api/offers/", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestProfileRequiresAuthentication(t *testing.T) {
	_, engine := newTestServer(&fakeOfferService{}, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodGet, "/api/profile/1/", "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}

	resp = doJSON(engine, http.MethodGet, "/api/profile/1/", "customer-token", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestUpdateReviewRejectsUnsupportedField(t *testing.T) {
	reviewSvc := &fakeReviewService{}
	_, engine := newTestServer(&fakeOfferService{}, &fakeOrderService{}, reviewSvc)

	resp := doJSON(engine, http.MethodPatch, "/api/reviews/1/", "customer-token", `{"rating":3,"business_user":"99"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
	if reviewSvc.updateCalls != 0 {
		t.Fatal("expected review service not to be called")
	}

	resp = doJSON(engine, http.MethodPatch, "/api/reviews/1/", "customer-token", `{"rating":3,"description":"ok"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestDeleteOfferInUseReturns409(t *testing.T) {
	offerSvc := &fakeOfferService{err: offerdomain.ErrOfferInUse}
	_, engine := newTestServer(offerSvc, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodDelete, "/api/offers/1/", "business-token", "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", resp.Code)
	}
}

func TestOrderCountUnknownBusinessReturns404(t *testing.T) {
	orderSvc := &fakeOrderService{err: orderdomain.ErrBusinessNotFound}
	_, engine := newTestServer(&fakeOfferService{}, orderSvc, &fakeReviewService{})

	resp := doJSON(engine, http.MethodGet, "/api/order-count/42/", "customer-token", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestBaseInfoIsPublic(t *testing.T) {
	_, engine := newTestServer(&fakeOfferService{}, &fakeOrderService{}, &fakeReviewService{})

	resp := doJSON(engine, http.MethodGet, "/api/base-info/", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}
