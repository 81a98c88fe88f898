package freight

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"packquote/internal/core/apperror"
	"packquote/internal/core/types"
)

func testRequest() QuoteRequest {
	return QuoteRequest{
		OriginPostalCode:      "89000-000",
		DestinationPostalCode: "01000-000",
		InvoiceValue:          types.MustMoney("350.00"),
		Boxes: []BoxManifest{{
			Count:    3,
			WeightKg: decimal.NewFromFloat(4.5),
			Dimensions: Dimensions{
				LengthCm: decimal.NewFromInt(30),
				WidthCm:  decimal.NewFromInt(20),
				HeightCm: decimal.NewFromInt(10),
			},
		}},
	}
}

func TestClientQuoteParsesOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/shipping/quote", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("token"))

		var req wireRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "01000-000", req.RecipientCEP)
		assert.Equal(t, "350.00", req.ShipmentInvoiceValue)
		require.Len(t, req.ShippingItemArray, 1)
		assert.Equal(t, 3, req.ShippingItemArray[0].Quantity)

		_ = json.NewEncoder(w).Encode(wireResponse{
			ShippingServicesArray: []wireService{
				{Carrier: "QuickShip", ServiceCode: "QS1", ShippingPrice: "42.90", DeliveryTime: "4"},
				{Carrier: "Broken", Error: true, ResponseMessage: "no coverage"},
				{Carrier: "BadPrice", ShippingPrice: "n/a"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	options, err := c.Quote(context.Background(), testRequest())
	require.NoError(t, err)

	require.Len(t, options, 1)
	assert.Equal(t, "QuickShip", options[0].CarrierName)
	assert.Equal(t, "42.90", options[0].Price.StringFixed(2))
	assert.Equal(t, 4, options[0].LeadTimeDays)
}

func TestClientQuoteUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	_, err := c.Quote(context.Background(), testRequest())
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeUpstream, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.HTTPStatus)
}

func TestClientQuoteValidation(t *testing.T) {
	c := NewClient("http://localhost:0", "secret", time.Second)

	req := testRequest()
	req.DestinationPostalCode = ""
	_, err := c.Quote(context.Background(), req)
	require.Error(t, err)

	req = testRequest()
	req.Boxes = nil
	_, err = c.Quote(context.Background(), req)
	require.Error(t, err)
}
