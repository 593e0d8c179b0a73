package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"farmdirect/internal/app/session"
	"farmdirect/internal/common"
	"farmdirect/internal/common/retry"
	"farmdirect/internal/domain/model"
	"farmdirect/internal/domain/spec"

	"github.com/rs/zerolog/log"
)

type Step int

const (
	StepPersonalDetails Step = iota + 1
	StepProductDetails
	StepComplete
)

// Entry names how the user arrived at the registration wizard. The entry
// point decides which step the flow opens on.
type Entry string

const (
	// EntryDefault starts at personal details.
	EntryDefault Entry = "default"
	// EntrySell is the storefront "Sell" button; same two steps but the
	// seller role is implied.
	EntrySell Entry = "sell"
	// EntryAddProduct is a signed-in seller adding another listing; the
	// personal details step is skipped entirely.
	EntryAddProduct Entry = "add-product"
)

// Flow is the wizard state carried between submissions. The service is
// stateless; callers hold the flow and pass it back on each step.
type Flow struct {
	Entry    Entry            `json:"entry"`
	Step     Step             `json:"step"`
	Session  *model.Session   `json:"session,omitempty"`
	FarmerID string           `json:"farmer_id,omitempty"`
	Business *BusinessDetails `json:"business,omitempty"`
	Created  []string         `json:"created_product_ids,omitempty"`
}

type PersonalDetailsInput struct {
	FullName      string  `json:"full_name"`
	AadhaarNumber string  `json:"aadhaar_number"`
	PhoneNumber   string  `json:"phone_number"`
	FullAddress   string  `json:"full_address"`
	State         string  `json:"state,omitempty"`
	Pincode       string  `json:"pincode,omitempty"`
	GSTNumber     *string `json:"gst_number,omitempty"`

	// Account fields, only consulted when the flow has no session yet.
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// composedAddress joins address, state and pincode into the stored form.
func (in PersonalDetailsInput) composedAddress() string {
	address := strings.TrimSpace(in.FullAddress)
	if state := strings.TrimSpace(in.State); state != "" {
		address += ", " + state
	}
	if pincode := strings.TrimSpace(in.Pincode); pincode != "" {
		address += " - " + pincode
	}
	return address
}

// ProductDetailsInput is the second wizard step: the listing itself plus the
// specification choices that become tags. Business is only consulted when
// the flow reaches this step without a profile.
type ProductDetailsInput struct {
	CreateProductInput
	SubType             string           `json:"sub_type,omitempty"`
	MappedSubCategories []string         `json:"mapped_sub_categories,omitempty"`
	Selections          spec.Selections  `json:"selections,omitempty"`
	ExtraTags           []spec.Tag       `json:"extra_tags,omitempty"`
	Business            *BusinessDetails `json:"business,omitempty"`
}

type RegistrationService struct {
	auth     *AuthService
	sessions *session.Manager
	farmers  *FarmerService
	products *ProductService

	pollAttempts   int
	pollDelay      time.Duration
	profileRetries int
	profileDelay   time.Duration
	sleep          retry.Sleeper
}

type RegistrationOption func(*RegistrationService)

func WithRegistrationSleeper(sleep retry.Sleeper) RegistrationOption {
	return func(s *RegistrationService) { s.sleep = sleep }
}

func NewRegistrationService(
	auth *AuthService,
	sessions *session.Manager,
	farmers *FarmerService,
	products *ProductService,
	pollAttempts int,
	pollDelay time.Duration,
	profileRetries int,
	profileDelay time.Duration,
	opts ...RegistrationOption,
) *RegistrationService {
	s := &RegistrationService{
		auth:           auth,
		sessions:       sessions,
		farmers:        farmers,
		products:       products,
		pollAttempts:   pollAttempts,
		pollDelay:      pollDelay,
		profileRetries: profileRetries,
		profileDelay:   profileDelay,
		sleep:          retry.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens a flow at the step the entry point implies. A signed-in user
// who already has a profile skips straight to product details regardless of
// entry, and the Sell page's captured business details ride along on the
// flow so a signed-in seller opens on the product step without re-entering
// them.
func (s *RegistrationService) Start(ctx context.Context, entry Entry, sess *model.Session, business *BusinessDetails) (*Flow, error) {
	flow := &Flow{Entry: entry, Step: StepPersonalDetails, Session: sess}
	if entry == EntryAddProduct {
		if sess == nil {
			return nil, fmt.Errorf("sign in before adding a product: %w", common.ErrUnauthorized)
		}
		flow.Step = StepProductDetails
	}
	if entry == EntrySell && business != nil {
		flow.Business = business
		if sess != nil {
			flow.Step = StepProductDetails
		}
	}
	if sess != nil {
		if farmer, err := s.farmers.GetByUser(ctx, sess.UserID); err == nil {
			flow.FarmerID = farmer.ID
			flow.Step = StepProductDetails
		}
	}
	return flow, nil
}

// SubmitPersonalDetails runs the first wizard step: validate the form,
// create the account if the user is not signed in yet, wait for a usable
// session, then create the seller profile. Transient authorization failures
// during the profile insert trigger a session refresh and a bounded retry.
func (s *RegistrationService) SubmitPersonalDetails(ctx context.Context, flow *Flow, in PersonalDetailsInput) error {
	if flow.Step != StepPersonalDetails {
		return fmt.Errorf("personal details already submitted: %w", common.ErrBadRequest)
	}
	if err := validatePersonalDetails(in); err != nil {
		return err
	}

	if flow.Session == nil {
		if err := validateAccountFields(in); err != nil {
			return err
		}
		sess, err := s.establishSession(ctx, in)
		if err != nil {
			return err
		}
		flow.Session = sess
	}

	farmer, err := s.createProfileWithRetry(ctx, flow, &BusinessDetails{
		FullName:      in.FullName,
		Address:       in.composedAddress(),
		ContactNumber: in.PhoneNumber,
		AadhaarNumber: in.AadhaarNumber,
		GSTNumber:     in.GSTNumber,
	})
	if err != nil {
		return err
	}

	flow.FarmerID = farmer.ID
	flow.Step = StepProductDetails
	return nil
}

// SubmitProductDetails runs the second wizard step. A flow that reached
// this step without a profile (the sell or add-product shortcut on a fresh
// account) gets one created inline from the business details, submitted or
// carried on the flow.
func (s *RegistrationService) SubmitProductDetails(ctx context.Context, flow *Flow, in ProductDetailsInput) (*model.Product, error) {
	if flow.Step != StepProductDetails {
		return nil, fmt.Errorf("product details step is not open: %w", common.ErrBadRequest)
	}
	if flow.FarmerID == "" {
		if flow.Session == nil {
			return nil, fmt.Errorf("no session on the flow: %w", common.ErrUnauthorized)
		}
		details := in.Business
		if details == nil {
			details = flow.Business
		}
		farmer, err := s.farmers.EnsureProfile(ctx, flow.Session.UserID, details)
		if err != nil {
			return nil, err
		}
		flow.FarmerID = farmer.ID
	}

	template := spec.Resolve(in.Category, in.SubType, in.MappedSubCategories)
	in.SpecTags = spec.Serialize(template.Groups, in.Selections, in.ExtraTags)

	product, err := s.products.Create(ctx, flow.FarmerID, in.CreateProductInput)
	if err != nil {
		return nil, err
	}
	flow.Created = append(flow.Created, product.ID)
	flow.Step = StepComplete
	return product, nil
}

// ResetForAnotherProduct reopens the product step after a completed flow,
// keeping the session and profile.
func (s *RegistrationService) ResetForAnotherProduct(flow *Flow) error {
	if flow.Step != StepComplete {
		return fmt.Errorf("flow has not completed a product yet: %w", common.ErrBadRequest)
	}
	flow.Step = StepProductDetails
	return nil
}

// establishSession signs the user up and, when no session comes back with
// the account, polls sign-in until the account becomes usable or the
// attempts run out.
func (s *RegistrationService) establishSession(ctx context.Context, in PersonalDetailsInput) (*model.Session, error) {
	res, err := s.auth.SignUp(ctx, SignUpInput{
		Email:    in.Email,
		Password: in.Password,
		FullName: in.FullName,
		Phone:    in.PhoneNumber,
		Role:     model.RoleFarmer,
	})
	if err != nil {
		if common.Categorize(err) == common.CategoryDuplicate {
			// Account already exists; a plain sign-in may still work.
			return s.auth.SignIn(ctx, in.Email, in.Password)
		}
		return nil, err
	}
	if res.Session != nil {
		return res.Session, nil
	}

	var sess *model.Session
	err = retry.Do(ctx, s.pollAttempts, s.pollDelay, s.sleep, func(attempt int) (bool, error) {
		got, err := s.auth.SignIn(ctx, in.Email, in.Password)
		if err != nil {
			return false, err
		}
		sess = got
		return true, nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return nil, fmt.Errorf("could not establish a session, please verify your email and sign in: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	return sess, nil
}

// createProfileWithRetry inserts the seller profile. A transient
// authorization failure refreshes the session and retries after a short
// delay; a duplicate resolves to the existing profile; a missing required
// column surfaces as a single field-specific validation message.
func (s *RegistrationService) createProfileWithRetry(ctx context.Context, flow *Flow, details *BusinessDetails) (*model.Farmer, error) {
	attempts := s.profileRetries + 1
	var farmer *model.Farmer
	err := retry.Do(ctx, attempts, s.profileDelay, s.sleep, func(attempt int) (bool, error) {
		f, err := s.farmers.EnsureProfile(ctx, flow.Session.UserID, details)
		if err == nil {
			farmer = f
			return true, nil
		}
		switch common.Categorize(err) {
		case common.CategoryTransientAuth:
			log.Warn().Err(err).Int("attempt", attempt+1).Msg("profile insert hit an auth error, refreshing session")
			if refreshed, refreshErr := s.sessions.Refresh(ctx, flow.Session.RefreshToken); refreshErr == nil {
				flow.Session = refreshed
			}
			return false, err
		case common.CategoryDuplicate:
			existing, lookupErr := s.farmers.GetByUser(ctx, flow.Session.UserID)
			if lookupErr != nil {
				return true, lookupErr
			}
			farmer = existing
			return true, nil
		case common.CategoryMissingField:
			return true, fmt.Errorf("%s: %w", common.MissingFieldMessage(err), common.ErrValidation)
		default:
			return true, err
		}
	})
	if err != nil {
		if errors.Is(err, retry.ErrExhausted) {
			return nil, fmt.Errorf("could not create your seller profile, please sign in and try again: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	return farmer, nil
}

func validatePersonalDetails(in PersonalDetailsInput) error {
	switch {
	case strings.TrimSpace(in.FullName) == "":
		return fmt.Errorf("Full Name is required: %w", common.ErrValidation)
	case strings.TrimSpace(in.AadhaarNumber) == "":
		return fmt.Errorf("Aadhaar Number is required: %w", common.ErrValidation)
	case strings.TrimSpace(in.PhoneNumber) == "":
		return fmt.Errorf("Phone Number is required: %w", common.ErrValidation)
	case strings.TrimSpace(in.FullAddress) == "":
		return fmt.Errorf("Full Address is required: %w", common.ErrValidation)
	}
	return nil
}

func validateAccountFields(in PersonalDetailsInput) error {
	switch {
	case !strings.Contains(in.Email, "@"):
		return fmt.Errorf("A valid email address is required: %w", common.ErrValidation)
	case len(in.Password) < 6:
		return fmt.Errorf("Password must be at least 6 characters: %w", common.ErrValidation)
	case in.ConfirmPassword != "" && in.ConfirmPassword != in.Password:
		return fmt.Errorf("Passwords do not match: %w", common.ErrValidation)
	}
	return nil
}
