package validate_coupon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons"
	"github.com/m04kA/SMC-MarketplaceService/internal/service/coupons/models"
	"github.com/m04kA/SMC-MarketplaceService/pkg/logger"
)

type fakeCoupons struct {
	err error
}

func (f *fakeCoupons) Quote(_ context.Context, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.QuoteResponse{
		CouponID:      7,
		Code:          "SAVE10",
		DiscountType:  "percentage",
		Subtotal:      req.Amount.StringFixed(2),
		Discount:      "100.00",
		Total:         "1400.00",
		PlatformFee:   "210.00",
		VendorEarning: "1190.00",
	}, nil
}

func TestHandler_Quote(t *testing.T) {
	h := NewHandler(&fakeCoupons{}, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(`{"code":"save10","amount":"1500"}`)))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.QuoteResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "1500.00", resp.Subtotal)
	assert.Equal(t, "1400.00", resp.Total)
	assert.Equal(t, "1190.00", resp.VendorEarning)
}

func TestHandler_Quote_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"empty body", ``, nil, http.StatusBadRequest},
		{"unknown field", `{"coupon":"X"}`, nil, http.StatusBadRequest},
		{"invalid input", `{"code":"","amount":"10"}`, fmt.Errorf("%w: code is required", coupons.ErrInvalidInput), http.StatusBadRequest},
		{"not found", `{"code":"NOPE","amount":"10"}`, coupons.ErrCouponNotFound, http.StatusNotFound},
		{"expired", `{"code":"OLD","amount":"10"}`, coupons.ErrCouponExpired, http.StatusGone},
		{"usage exceeded", `{"code":"USED","amount":"10"}`, coupons.ErrCouponUsageExceeded, http.StatusConflict},
		{"below minimum", `{"code":"BIG","amount":"300"}`, coupons.ErrBelowMinimum, http.StatusUnprocessableEntity},
		{"internal", `{"code":"X","amount":"10"}`, coupons.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeCoupons{err: tt.err}, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/coupons/validate", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
