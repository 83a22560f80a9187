package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"profilewizard/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("not found")

// fakeLookup serves a fixed dataset. A lookup whose key has a gate blocks
// until the gate is closed.
type fakeLookup struct {
	mu     sync.Mutex
	states map[string][]string
	cities map[string][]string
	gates  map[string]chan struct{}
	calls  []string
}

func newFakeLookup() *fakeLookup {
	return &fakeLookup{
		states: map[string][]string{
			"USA":   {"California", "Texas", "New York"},
			"India": {"Maharashtra", "Karnataka", "Delhi"},
		},
		cities: map[string][]string{
			"California":  {"Los Angeles", "San Francisco", "San Diego"},
			"Texas":       {"Houston", "Dallas", "Austin"},
			"Maharashtra": {"Mumbai", "Pune", "Nagpur"},
		},
		gates: map[string]chan struct{}{},
	}
}

func (f *fakeLookup) gate(key string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return ch
}

func (f *fakeLookup) wait(ctx context.Context, key string) {
	f.mu.Lock()
	f.calls = append(f.calls, key)
	ch := f.gates[key]
	f.mu.Unlock()
	if ch == nil {
		return
	}
	select {
	case <-ch:
	case <-ctx.Done():
	}
}

func (f *fakeLookup) ListCountries(context.Context) ([]models.Country, error) {
	return []models.Country{
		{Name: "USA", States: f.states["USA"]},
		{Name: "India", States: f.states["India"]},
	}, nil
}

func (f *fakeLookup) ListStates(ctx context.Context, country string) ([]string, error) {
	f.wait(ctx, country)
	s, ok := f.states[country]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

func (f *fakeLookup) ListCities(ctx context.Context, _, state string) ([]string, error) {
	f.wait(ctx, state)
	s, ok := f.cities[state]
	if !ok {
		return nil, errNotFound
	}
	return s, nil
}

type serverErr struct{ msg string }

func (e serverErr) Error() string         { return "server: " + e.msg }
func (e serverErr) ServerMessage() string { return e.msg }

type fakeSubmitter struct {
	mu      sync.Mutex
	got     []Draft
	err     error
	release chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, d Draft) (*models.Profile, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, d)
	if f.err != nil {
		return nil, f.err
	}
	return &models.Profile{ID: "id-1", Username: d.Username, CompanyName: d.CompanyName}, nil
}

func newTestController(t *testing.T) (*Controller, *fakeLookup, *fakeSubmitter) {
	t.Helper()
	lookup := newFakeLookup()
	sub := &fakeSubmitter{}
	c := NewController(lookup, sub, nil)
	c.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return c, lookup, sub
}

func set(t *testing.T, c *Controller, f Field, v string) {
	t.Helper()
	require.NoError(t, c.SetField(context.Background(), f, v))
}

// fillToStep3 completes steps 1 and 2 with the alice profile.
func fillToStep3(t *testing.T, c *Controller) {
	t.Helper()
	set(t, c, FieldUsername, "alice")
	set(t, c, FieldDateOfBirth, "1990-04-01")
	set(t, c, FieldNewPassword, "Abcd1234!")
	_, err := c.AdvanceOrSubmit(context.Background())
	require.NoError(t, err)

	set(t, c, FieldProfession, "Developer")
	set(t, c, FieldAddressLine1, "1 Main St")
	_, err = c.AdvanceOrSubmit(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, c.Step())

	set(t, c, FieldCountry, "India")
	c.Wait()
	set(t, c, FieldState, "Maharashtra")
	c.Wait()
	set(t, c, FieldCity, "Mumbai")
	set(t, c, FieldSubscriptionPlan, "Pro")
}

func TestNewController_Defaults(t *testing.T) {
	c, _, _ := newTestController(t)

	d := c.Draft()
	assert.Equal(t, 1, c.Step())
	assert.Equal(t, "Basic", d.SubscriptionPlan)
	assert.True(t, d.Newsletter)
	assert.Equal(t, StrengthNone, c.PasswordStrength())
}

func TestSetField_UsernameStripsWhitespace(t *testing.T) {
	c, _, _ := newTestController(t)

	cases := []struct{ in, want string }{
		{"al ice", "alice"},
		{" a\tb\nc\r d ", "abcd"},
		{"bob\u00a0smith", "bobsmith"},
		{"carol", "carol"},
	}
	for _, tc := range cases {
		require.NoError(t, c.SetField(context.Background(), FieldUsername, tc.in))
		assert.Equal(t, tc.want, c.Draft().Username, "input %q", tc.in)
	}
}

func TestSetField_OtherFieldsKeepWhitespace(t *testing.T) {
	c, _, _ := newTestController(t)

	set(t, c, FieldAddressLine1, "1 Main St")
	assert.Equal(t, "1 Main St", c.Draft().AddressLine1)
}

func TestSetField_UnknownField(t *testing.T) {
	c, _, _ := newTestController(t)

	err := c.SetField(context.Background(), Field("profilePhoto"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetField_Newsletter(t *testing.T) {
	c, _, _ := newTestController(t)

	set(t, c, FieldNewsletter, "false")
	assert.False(t, c.Draft().Newsletter)

	var ferr *FieldError
	assert.ErrorAs(t, c.SetField(context.Background(), FieldNewsletter, "maybe"), &ferr)
	assert.False(t, c.Draft().Newsletter)
}

func TestSetField_PasswordRescored(t *testing.T) {
	c, _, _ := newTestController(t)

	set(t, c, FieldNewPassword, "abc")
	assert.Equal(t, StrengthWeak, c.PasswordStrength())
	set(t, c, FieldNewPassword, "Abcd1234!")
	assert.Equal(t, StrengthVeryStrong, c.PasswordStrength())
	set(t, c, FieldNewPassword, "")
	assert.Equal(t, StrengthWeak, c.PasswordStrength())
}

func TestSetField_CountryResetsDownstream(t *testing.T) {
	c, lookup, _ := newTestController(t)

	set(t, c, FieldCountry, "USA")
	c.Wait()
	set(t, c, FieldState, "California")
	c.Wait()
	set(t, c, FieldCity, "San Diego")
	require.Equal(t, []string{"Los Angeles", "San Francisco", "San Diego"}, c.Cities())

	gate := lookup.gate("India")
	set(t, c, FieldCountry, "India")

	d := c.Draft()
	assert.Equal(t, "India", d.Country)
	assert.Empty(t, d.State)
	assert.Empty(t, d.City)
	assert.Empty(t, c.States())
	assert.Empty(t, c.Cities())

	close(gate)
	c.Wait()
	assert.Equal(t, []string{"Maharashtra", "Karnataka", "Delhi"}, c.States())
}

func TestSetField_StateResetsCity(t *testing.T) {
	c, _, _ := newTestController(t)

	set(t, c, FieldCountry, "USA")
	c.Wait()
	set(t, c, FieldState, "California")
	c.Wait()
	set(t, c, FieldCity, "San Diego")
	set(t, c, FieldState, "Texas")

	d := c.Draft()
	assert.Equal(t, "USA", d.Country)
	assert.Equal(t, "Texas", d.State)
	assert.Empty(t, d.City)

	c.Wait()
	assert.Equal(t, []string{"Houston", "Dallas", "Austin"}, c.Cities())
}

func TestSetField_StaleStateListDiscarded(t *testing.T) {
	c, lookup, _ := newTestController(t)

	slow := lookup.gate("USA")
	set(t, c, FieldCountry, "USA")
	set(t, c, FieldCountry, "India")

	india := []string{"Maharashtra", "Karnataka", "Delhi"}
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(india, c.States())
	}, time.Second, 5*time.Millisecond)

	close(slow)
	c.Wait()
	assert.Equal(t, india, c.States())
	assert.Equal(t, "India", c.Draft().Country)
}

func TestSetField_StaleCityListDiscarded(t *testing.T) {
	c, lookup, _ := newTestController(t)

	set(t, c, FieldCountry, "USA")
	c.Wait()

	slow := lookup.gate("California")
	set(t, c, FieldState, "California")
	set(t, c, FieldState, "Texas")

	texas := []string{"Houston", "Dallas", "Austin"}
	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(texas, c.Cities())
	}, time.Second, 5*time.Millisecond)

	close(slow)
	c.Wait()
	assert.Equal(t, texas, c.Cities())
}

func TestSetField_CityLookupStaleAfterCountryChange(t *testing.T) {
	c, lookup, _ := newTestController(t)

	set(t, c, FieldCountry, "USA")
	c.Wait()
	slow := lookup.gate("California")
	set(t, c, FieldState, "California")
	set(t, c, FieldCountry, "India")

	close(slow)
	c.Wait()
	assert.Empty(t, c.Cities())
}

func TestSetField_LookupNotFound(t *testing.T) {
	c, _, _ := newTestController(t)

	set(t, c, FieldCountry, "Atlantis")
	c.Wait()
	assert.ErrorIs(t, c.LookupErr(), errNotFound)
	assert.Empty(t, c.States())

	set(t, c, FieldCountry, "USA")
	assert.NoError(t, c.LookupErr())
	c.Wait()
	assert.NoError(t, c.LookupErr())
}

func TestSetField_ProfessionClearsCompany(t *testing.T) {
	c, _, _ := newTestController(t)

	set(t, c, FieldProfession, "Entrepreneur")
	set(t, c, FieldCompanyName, "Acme")
	set(t, c, FieldProfession, "Entrepreneur")
	assert.Equal(t, "Acme", c.Draft().CompanyName)

	set(t, c, FieldProfession, "Student")
	assert.Empty(t, c.Draft().CompanyName)
}

func TestSetPhoto(t *testing.T) {
	c, _, _ := newTestController(t)

	ref := &PhotoRef{Path: "/tmp/me.gif", Filename: "me.gif", ContentType: "image/gif", Size: 10 << 20}
	require.NoError(t, c.SetPhoto(ref))
	ref.Filename = "changed"
	assert.Equal(t, "me.gif", c.Draft().Photo.Filename)

	require.NoError(t, c.SetPhoto(nil))
	assert.Nil(t, c.Draft().Photo)
}

func TestLoadCountries(t *testing.T) {
	c, _, _ := newTestController(t)

	require.NoError(t, c.LoadCountries(context.Background()))
	countries := c.Countries()
	require.Len(t, countries, 2)
	assert.Equal(t, "USA", countries[0].Name)
}

func TestAdvanceOrSubmit_StepGating(t *testing.T) {
	c, _, _ := newTestController(t)
	ctx := context.Background()

	cases := []struct {
		field Field
		value string
		want  Field
	}{
		{FieldUsername, "abc", FieldUsername},
		{FieldUsername, "abcdefghijklmnopqrstu", FieldUsername},
		{FieldUsername, "alice", FieldDateOfBirth},
		{FieldDateOfBirth, "01/04/1990", FieldDateOfBirth},
		{FieldDateOfBirth, "2025-06-16", FieldDateOfBirth},
		{FieldDateOfBirth, "2025-06-15", FieldNewPassword},
		{FieldNewPassword, "Abcdefg~1", FieldNewPassword},
		{FieldNewPassword, "abcdefgh!", FieldNewPassword},
	}
	for _, tc := range cases {
		set(t, c, tc.field, tc.value)
		_, err := c.AdvanceOrSubmit(ctx)
		var ferr *FieldError
		require.ErrorAs(t, err, &ferr, "after %s=%q", tc.field, tc.value)
		assert.Equal(t, tc.want, ferr.Field, "after %s=%q", tc.field, tc.value)
		assert.Equal(t, 1, c.Step())
	}

	set(t, c, FieldNewPassword, "abcdefg1!")
	_, err := c.AdvanceOrSubmit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Step())

	set(t, c, FieldProfession, "Entrepreneur")
	_, err = c.AdvanceOrSubmit(ctx)
	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, FieldCompanyName, ferr.Field)

	set(t, c, FieldCompanyName, "Acme")
	_, err = c.AdvanceOrSubmit(ctx)
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, FieldAddressLine1, ferr.Field)

	// whitespace counts as a value
	set(t, c, FieldAddressLine1, "   ")
	_, err = c.AdvanceOrSubmit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Step())

	_, err = c.AdvanceOrSubmit(ctx)
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, FieldCountry, ferr.Field)
}

func TestAdvanceOrSubmit_Success(t *testing.T) {
	c, _, sub := newTestController(t)
	require.NoError(t, c.LoadCountries(context.Background()))
	fillToStep3(t, c)

	p, err := c.AdvanceOrSubmit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "alice", p.Username)

	require.Len(t, sub.got, 1)
	sent := sub.got[0]
	assert.Equal(t, "Mumbai", sent.City)
	assert.Equal(t, "Pro", sent.SubscriptionPlan)
	assert.True(t, sent.Newsletter)
	assert.Nil(t, sent.Photo)

	assert.Equal(t, 1, c.Step())
	assert.Equal(t, NewDraft(), c.Draft())
	assert.Equal(t, StrengthNone, c.PasswordStrength())
	assert.Empty(t, c.States())
	assert.Len(t, c.Countries(), 2)
}

func TestAdvanceOrSubmit_FailureKeepsDraft(t *testing.T) {
	c, _, sub := newTestController(t)
	fillToStep3(t, c)
	sub.err = serverErr{msg: "a profile with this username already exists"}

	before := c.Draft()
	_, err := c.AdvanceOrSubmit(context.Background())

	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "a profile with this username already exists", serr.Error())
	assert.Equal(t, 3, c.Step())
	assert.Equal(t, before, c.Draft())
	assert.Len(t, sub.got, 1)
}

func TestAdvanceOrSubmit_TransportFailure(t *testing.T) {
	c, _, sub := newTestController(t)
	fillToStep3(t, c)
	cause := errors.New("connection refused")
	sub.err = cause

	_, err := c.AdvanceOrSubmit(context.Background())
	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, genericSubmitMessage, serr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestAdvanceOrSubmit_BlocksEditsWhileSubmitting(t *testing.T) {
	c, _, sub := newTestController(t)
	fillToStep3(t, c)
	sub.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := c.AdvanceOrSubmit(context.Background())
		done <- err
	}()

	assert.Eventually(t, func() bool {
		return errors.Is(c.SetField(context.Background(), FieldCity, "Pune"), ErrSubmitting)
	}, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, c.SetPhoto(nil), ErrSubmitting)

	close(sub.release)
	require.NoError(t, <-done)
	assert.Equal(t, "Mumbai", sub.got[0].City)
}

func TestBack_KeepsDraft(t *testing.T) {
	c, _, sub := newTestController(t)
	fillToStep3(t, c)
	sub.err = serverErr{msg: "a profile with this username already exists"}
	_, err := c.AdvanceOrSubmit(context.Background())
	require.Error(t, err)

	require.NoError(t, c.Back())
	require.NoError(t, c.Back())
	require.NoError(t, c.Back())
	assert.Equal(t, 1, c.Step())

	set(t, c, FieldUsername, "alice2")
	_, err = c.AdvanceOrSubmit(context.Background())
	require.NoError(t, err)
	_, err = c.AdvanceOrSubmit(context.Background())
	require.NoError(t, err)

	sub.err = nil
	p, err := c.AdvanceOrSubmit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice2", p.Username)
	assert.Equal(t, "Mumbai", sub.got[1].City)
}
