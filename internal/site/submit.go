package site

import (
	"context"
	"fmt"
	"strings"

	"github.com/voltrak-labs/showroom/internal/errors"
	"github.com/voltrak-labs/showroom/internal/forms"
	"github.com/voltrak-labs/showroom/pkg/api"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// Buyer types on the order and demo forms.
const (
	BuyerIndividual = "individual"
	BuyerCompany    = "company"
)

// Confirmation messages shown after a successful submission.
const (
	OrderSubmitted       = "Your order request has been submitted successfully!"
	DemoSubmitted        = "Your demo request has been submitted successfully!"
	ApplicationSubmitted = "Your application has been submitted successfully!"
	Subscribed           = "Thank you for subscribing!"
)

// SubmitError is a failed public-form submission.
type SubmitError struct {
	// Action completes "Failed to ...", e.g. "submit order".
	Action string
	Err    error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("Failed to %s: %s", e.Action, errors.UserMessage(e.Err))
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// RequestForm is the order/demo form.
type RequestForm struct {
	BuyerType    string `json:"buyer_type" validate:"omitempty,oneof=individual company"`
	ProductName  string `json:"product_name" validate:"required"`
	FullName     string `json:"full_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	PhoneNumber  string `json:"phone_number" validate:"required"`
	Address      string `json:"address"`
	Country      string `json:"country"`
	State        string `json:"state"`
	City         string `json:"city"`
	Pincode      string `json:"pincode"`
	Message      string `json:"message"`
	CompanyName  string `json:"company_name" validate:"required_if=BuyerType company"`
	AadharNumber string `json:"aadhar_number"`
	PanNumber    string `json:"pan_number"`
	Quantity     int    `json:"quantity" validate:"min=1"`
}

// Request builds the wire record. Individuals send an Aadhar number and no
// company; companies the reverse. An empty PAN is sent as null.
func (f RequestForm) Request(requestType string) models.Request {
	r := models.Request{
		RequestType: requestType,
		ProductName: f.ProductName,
		FullName:    f.FullName,
		Email:       f.Email,
		PhoneNumber: f.PhoneNumber,
		Address:     f.Address,
		Country:     f.Country,
		State:       f.State,
		City:        f.City,
		Pincode:     f.Pincode,
		Message:     f.Message,
		Quantity:    f.Quantity,
		PanNumber:   models.String(strings.TrimSpace(f.PanNumber)),
	}
	if f.BuyerType == BuyerCompany {
		company := f.CompanyName
		r.CompanyName = &company
	} else {
		aadhar := f.AadharNumber
		r.AadharNumber = &aadhar
	}
	return r
}

func (f *RequestForm) defaults() {
	if f.BuyerType == "" {
		f.BuyerType = BuyerIndividual
	}
	if f.Quantity == 0 {
		f.Quantity = 1
	}
}

// SubmitOrder posts an order request.
func (s *Site) SubmitOrder(ctx context.Context, f RequestForm) error {
	return s.submitRequest(ctx, f, models.RequestTypeOrder, "submit order")
}

// SubmitDemo posts a demo request.
func (s *Site) SubmitDemo(ctx context.Context, f RequestForm) error {
	return s.submitRequest(ctx, f, models.RequestTypeDemo, "submit demo request")
}

func (s *Site) submitRequest(ctx context.Context, f RequestForm, requestType, action string) error {
	f.defaults()
	if err := forms.Validate(f); err != nil {
		return err
	}
	if _, err := s.client.Post(ctx, api.EndpointRequests, f.Request(requestType), nil); err != nil {
		return &SubmitError{Action: action, Err: err}
	}
	return nil
}

// ApplicationForm is the careers apply form.
type ApplicationForm struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Position string `json:"position"`
}

// Apply posts a job application.
func (s *Site) Apply(ctx context.Context, f ApplicationForm) error {
	if err := forms.Validate(f); err != nil {
		return err
	}
	if _, err := s.client.Post(ctx, api.EndpointApply, f, nil); err != nil {
		return &SubmitError{Action: "submit application", Err: err}
	}
	return nil
}

type subscribeForm struct {
	Email string `json:"email" validate:"required,email"`
}

// Subscribe signs email up for the newsletter.
func (s *Site) Subscribe(ctx context.Context, email string) error {
	f := subscribeForm{Email: strings.TrimSpace(email)}
	if err := forms.Validate(f); err != nil {
		return err
	}
	if _, err := s.client.Post(ctx, api.EndpointSubscribe, models.Subscription{Email: f.Email}, nil); err != nil {
		return &SubmitError{Action: "subscribe", Err: err}
	}
	return nil
}
