// Package wizard implements the three-step profile wizard: the step state
// machine, field sanitation, the country -> state -> city cascade and the
// final submission.
package wizard

import (
	"context"
	"sync"
	"time"

	"profilewizard/models"

	"go.uber.org/zap"
)

// LastStep is the step on which AdvanceOrSubmit submits.
const LastStep = 3

// LocationLookup resolves the cascading location lists.
type LocationLookup interface {
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListStates(ctx context.Context, country string) ([]string, error)
	// ListCities is keyed by state; country disambiguates state names
	// shared between countries.
	ListCities(ctx context.Context, country, state string) ([]string, error)
}

// Submitter sends a finished draft to the server.
type Submitter interface {
	Submit(ctx context.Context, d Draft) (*models.Profile, error)
}

// Controller owns the wizard state. It is safe for concurrent use; location
// lookups resolve on their own goroutines.
type Controller struct {
	lookup    LocationLookup
	submitter Submitter
	logger    *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	step       int
	draft      Draft
	strength   Strength
	countries  []models.Country
	states     []string
	cities     []string
	stateGen   uint64
	cityGen    uint64
	lookupErr  error
	submitting bool

	pending sync.WaitGroup
}

func NewController(lookup LocationLookup, submitter Submitter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		lookup:    lookup,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
		step:      1,
		draft:     NewDraft(),
		strength:  StrengthNone,
	}
}

// LoadCountries fetches the country list. It is kept across resets.
func (c *Controller) LoadCountries(ctx context.Context) error {
	countries, err := c.lookup.ListCountries(ctx)
	if err != nil {
		c.logger.Error("failed to load countries", zap.Error(err))
		return err
	}
	c.mu.Lock()
	c.countries = countries
	c.mu.Unlock()
	return nil
}

// SetField sanitizes and stores raw, then applies the field's cascade rule.
// Lookups triggered by the change run in the background under ctx.
func (c *Controller) SetField(ctx context.Context, f Field, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmitting
	}

	rule := ruleFor(f)
	value := rule.sanitize(raw)
	if err := c.draft.set(f, value); err != nil {
		return err
	}

	if rule.clearIf == nil || rule.clearIf(value) {
		for _, down := range rule.clears {
			c.draft.clear(down)
		}
	}
	if rule.rescore {
		c.strength = ScorePassword(value)
	}

	switch rule.lookup {
	case lookupStates:
		c.stateGen++
		c.cityGen++
		c.states, c.cities = nil, nil
		c.lookupErr = nil
		if value != "" {
			c.pending.Add(1)
			go c.fetchStates(ctx, c.stateGen, value)
		}
	case lookupCities:
		c.cityGen++
		c.cities = nil
		c.lookupErr = nil
		if value != "" {
			c.pending.Add(1)
			go c.fetchCities(ctx, c.cityGen, c.draft.Country, value)
		}
	}
	return nil
}

// SetPhoto stores the chosen photo. nil removes it.
func (c *Controller) SetPhoto(ref *PhotoRef) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmitting
	}
	if ref == nil {
		c.draft.Photo = nil
		return nil
	}
	cp := *ref
	c.draft.Photo = &cp
	return nil
}

func (c *Controller) fetchStates(ctx context.Context, gen uint64, country string) {
	defer c.pending.Done()

	states, err := c.lookup.ListStates(ctx, country)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.stateGen || country != c.draft.Country {
		c.logger.Debug("discarding stale state list", zap.String("country", country))
		return
	}
	if err != nil {
		c.logger.Warn("state lookup failed", zap.String("country", country), zap.Error(err))
		c.lookupErr = err
		return
	}
	c.states = states
}

func (c *Controller) fetchCities(ctx context.Context, gen uint64, country, state string) {
	defer c.pending.Done()

	cities, err := c.lookup.ListCities(ctx, country, state)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.cityGen || country != c.draft.Country || state != c.draft.State {
		c.logger.Debug("discarding stale city list", zap.String("state", state))
		return
	}
	if err != nil {
		c.logger.Warn("city lookup failed", zap.String("state", state), zap.Error(err))
		c.lookupErr = err
		return
	}
	c.cities = cities
}

// Wait blocks until every lookup started so far has resolved.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// AdvanceOrSubmit validates the current step. Before the last step it moves
// forward and returns a nil profile. On the last step it submits a copy of
// the draft; on success the wizard resets to step 1 and the stored profile is
// returned. A failed submission returns a *SubmissionError and leaves the
// step and draft untouched.
func (c *Controller) AdvanceOrSubmit(ctx context.Context) (*models.Profile, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitting
	}
	if err := validateStep(c.step, &c.draft, c.now()); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.step < LastStep {
		c.step++
		c.mu.Unlock()
		return nil, nil
	}

	frozen := c.draft
	if frozen.Photo != nil {
		photo := *frozen.Photo
		frozen.Photo = &photo
	}
	c.submitting = true
	c.mu.Unlock()

	profile, err := c.submitter.Submit(ctx, frozen)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.logger.Warn("profile submission failed", zap.String("username", frozen.Username), zap.Error(err))
		return nil, newSubmissionError(err)
	}
	c.logger.Info("profile submitted", zap.String("id", profile.ID), zap.String("username", profile.Username))
	c.reset()
	return profile, nil
}

// Back returns to the previous step. The draft is kept.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting {
		return ErrSubmitting
	}
	if c.step > 1 {
		c.step--
	}
	return nil
}

// reset restores the initial state. Outstanding lookups become stale.
func (c *Controller) reset() {
	c.step = 1
	c.draft = NewDraft()
	c.strength = StrengthNone
	c.states, c.cities = nil, nil
	c.stateGen++
	c.cityGen++
	c.lookupErr = nil
}

func (c *Controller) Step() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := c.draft
	if d.Photo != nil {
		photo := *d.Photo
		d.Photo = &photo
	}
	return d
}

func (c *Controller) PasswordStrength() Strength {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strength
}

func (c *Controller) Countries() []models.Country {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Country(nil), c.countries...)
}

func (c *Controller) States() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.states...)
}

func (c *Controller) Cities() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.cities...)
}

// LookupErr returns the error of the latest state or city lookup, if any.
func (c *Controller) LookupErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookupErr
}
