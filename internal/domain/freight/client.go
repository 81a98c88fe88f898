package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"packquote/internal/core/apperror"
	"packquote/internal/core/types"
)

// QuoteRequest is a carrier quoting call.
type QuoteRequest struct {
	OriginPostalCode      string
	DestinationPostalCode string
	InvoiceValue          types.Money
	Boxes                 []BoxManifest
}

// BoxManifest is one box line of the shipment.
type BoxManifest struct {
	Count      int
	WeightKg   decimal.Decimal
	Dimensions Dimensions
}

// Quoter abstracts the carrier API for tests and alternate providers.
type Quoter interface {
	Quote(ctx context.Context, req QuoteRequest) ([]Option, error)
}

// Client calls the carrier aggregator HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// NewClient creates a carrier API client. timeout bounds each call.
func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiToken:   apiToken,
	}
}

// Wire types for the aggregator protocol. Monetary and day values
// arrive as strings.
type wireRequest struct {
	SellerCEP            string     `json:"SellerCEP"`
	RecipientCEP         string     `json:"RecipientCEP"`
	ShipmentInvoiceValue string     `json:"ShipmentInvoiceValue"`
	ShippingItemArray    []wireItem `json:"ShippingItemArray"`
}

type wireItem struct {
	Weight   string `json:"Weight"`
	Length   string `json:"Length"`
	Width    string `json:"Width"`
	Height   string `json:"Height"`
	Quantity int    `json:"Quantity"`
}

type wireResponse struct {
	ShippingServicesArray []wireService `json:"ShippingSevicesArray"`
}

type wireService struct {
	Carrier         string `json:"Carrier"`
	ServiceCode     string `json:"ServiceCode"`
	ShippingPrice   string `json:"ShippingPrice"`
	DeliveryTime    string `json:"DeliveryTime"`
	Error           bool   `json:"Error"`
	ResponseMessage string `json:"Msg"`
}

// Quote posts the shipment manifest and returns usable carrier options.
// Carrier entries flagged as errors by the aggregator are dropped.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) ([]Option, error) {
	if req.DestinationPostalCode == "" {
		return nil, apperror.NewValidation("destination postal code is required")
	}
	if len(req.Boxes) == 0 {
		return nil, apperror.NewValidation("shipment has no boxes")
	}

	payload := wireRequest{
		SellerCEP:            req.OriginPostalCode,
		RecipientCEP:         req.DestinationPostalCode,
		ShipmentInvoiceValue: req.InvoiceValue.StringFixed(2),
	}
	for _, box := range req.Boxes {
		payload.ShippingItemArray = append(payload.ShippingItemArray, wireItem{
			Weight:   box.WeightKg.String(),
			Length:   box.Dimensions.LengthCm.String(),
			Width:    box.Dimensions.WidthCm.String(),
			Height:   box.Dimensions.HeightCm.String(),
			Quantity: box.Count,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/shipping/quote", bytes.NewReader(body))
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("token", c.apiToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, apperror.NewUpstream("freight", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.NewUpstream("freight",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, apperror.NewUpstream("freight", err)
	}

	var options []Option
	for _, svc := range wire.ShippingServicesArray {
		if svc.Error {
			continue
		}
		price, err := decimal.NewFromString(svc.ShippingPrice)
		if err != nil || !price.IsPositive() {
			continue
		}
		days, err := strconv.Atoi(svc.DeliveryTime)
		if err != nil {
			days = 0
		}
		options = append(options, Option{
			CarrierName:  svc.Carrier,
			ServiceCode:  svc.ServiceCode,
			Price:        types.Round2(price),
			LeadTimeDays: days,
		})
	}
	return options, nil
}
