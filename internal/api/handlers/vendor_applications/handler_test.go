package vendor_applications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/api/middleware"
	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/vendorapplications/models"
	approveApplication "github.com/m04kA/SMC-MarketplaceService/internal/usecase/approve_vendor_application"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
)

type fakeService struct {
	submitErr  error
	rejectErr  error
	rejectReq  *models.RejectApplicationRequest
	reviewerID int64
}

func (f *fakeService) Submit(_ context.Context, userID int64, req *models.SubmitApplicationRequest) (*models.ApplicationResponse, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &models.ApplicationResponse{ID: 1, UserID: userID, BusinessName: req.BusinessName, Status: "pending"}, nil
}

func (f *fakeService) GetMine(context.Context, int64) (*models.ApplicationResponse, error) {
	return nil, vendorapplications.ErrApplicationNotFound
}

func (f *fakeService) List(context.Context, *string) (*models.ApplicationListResponse, error) {
	return &models.ApplicationListResponse{Applications: []models.ApplicationResponse{}}, nil
}

func (f *fakeService) Reject(_ context.Context, id, reviewerID int64, req *models.RejectApplicationRequest) (*models.ApplicationResponse, error) {
	f.rejectReq = req
	f.reviewerID = reviewerID
	if f.rejectErr != nil {
		return nil, f.rejectErr
	}
	return &models.ApplicationResponse{ID: id, Status: "rejected"}, nil
}

type fakeApprove struct {
	err error
}

func (f *fakeApprove) Execute(_ context.Context, req *approveApplication.Request) (*approveApplication.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &approveApplication.Response{
		Application: &domain.VendorApplication{ID: req.ApplicationID, UserID: 5, Status: domain.ApplicationApproved},
		Vendor:      &domain.VendorProfile{ID: 40, UserID: 5, BusinessName: "Glow Studio"},
	}, nil
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/vendor-applications", h.Submit).Methods(http.MethodPost)
	r.HandleFunc("/vendor-applications/me", h.GetMine).Methods(http.MethodGet)
	r.HandleFunc("/admin/vendor-applications/{id}/approve", h.Approve).Methods(http.MethodPost)
	r.HandleFunc("/admin/vendor-applications/{id}/reject", h.Reject).Methods(http.MethodPost)
	return r
}

func serve(router *mux.Router, method, path, body string, userID int64) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	r = r.WithContext(middleware.WithUserID(r.Context(), userID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandler_Submit(t *testing.T) {
	body := `{"businessName":"Glow Studio","businessType":"salon","businessAddress":"Park st. 5","businessDescription":"Hair"}`

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "open application exists", err: vendorapplications.ErrApplicationExists, wantStatus: http.StatusConflict},
		{name: "already vendor", err: vendorapplications.ErrAlreadyVendor, wantStatus: http.StatusConflict},
		{name: "invalid input", err: vendorapplications.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&fakeService{submitErr: tt.err}, &fakeApprove{}, logger.NewNop()))
			w := serve(router, http.MethodPost, "/vendor-applications", body, 5)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_GetMine_NotFound(t *testing.T) {
	router := newRouter(NewHandler(&fakeService{}, &fakeApprove{}, logger.NewNop()))
	w := serve(router, http.MethodGet, "/vendor-applications/me", "", 5)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Approve(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		router := newRouter(NewHandler(&fakeService{}, &fakeApprove{}, logger.NewNop()))
		w := serve(router, http.MethodPost, "/admin/vendor-applications/9/approve", "", 1)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ApproveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "approved", resp.Application.Status)
		assert.Equal(t, int64(40), resp.Vendor.ID)
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: approveApplication.ErrApplicationNotFound, wantStatus: http.StatusNotFound},
		{name: "already reviewed", err: approveApplication.ErrAlreadyReviewed, wantStatus: http.StatusConflict},
		{name: "vendor exists", err: approveApplication.ErrVendorExists, wantStatus: http.StatusConflict},
		{name: "applicant deleted", err: approveApplication.ErrUserNotFound, wantStatus: http.StatusNotFound},
		{name: "internal", err: approveApplication.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRouter(NewHandler(&fakeService{}, &fakeApprove{err: tt.err}, logger.NewNop()))
			w := serve(router, http.MethodPost, "/admin/vendor-applications/9/approve", "", 1)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}

	t.Run("invalid id", func(t *testing.T) {
		router := newRouter(NewHandler(&fakeService{}, &fakeApprove{}, logger.NewNop()))
		w := serve(router, http.MethodPost, "/admin/vendor-applications/abc/approve", "", 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Reject(t *testing.T) {
	t.Run("without body", func(t *testing.T) {
		svc := &fakeService{}
		router := newRouter(NewHandler(svc, &fakeApprove{}, logger.NewNop()))
		w := serve(router, http.MethodPost, "/admin/vendor-applications/9/reject", "", 1)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(1), svc.reviewerID)
		assert.Nil(t, svc.rejectReq.Reason)
	})

	t.Run("with reason", func(t *testing.T) {
		svc := &fakeService{}
		router := newRouter(NewHandler(svc, &fakeApprove{}, logger.NewNop()))
		w := serve(router, http.MethodPost, "/admin/vendor-applications/9/reject", `{"reason":"no documents"}`, 1)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.rejectReq.Reason)
		assert.Equal(t, "no documents", *svc.rejectReq.Reason)
	})

	t.Run("already reviewed", func(t *testing.T) {
		svc := &fakeService{rejectErr: vendorapplications.ErrAlreadyReviewed}
		router := newRouter(NewHandler(svc, &fakeApprove{}, logger.NewNop()))
		w := serve(router, http.MethodPost, "/admin/vendor-applications/9/reject", "", 1)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
