package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"profilewizard/client/wizard"
)

var (
	professions = []string{"Student", "Developer", "Entrepreneur"}
	plans       = []string{"Basic", "Pro", "Enterprise"}
)

// App drives a wizard.Controller from line-based terminal input.
type App struct {
	ctrl   *wizard.Controller
	reader *bufio.Reader
	out    io.Writer
}

// Run loops over the steps until a profile is created or the user quits.
func (a *App) Run(ctx context.Context) error {
	if err := a.ctrl.LoadCountries(ctx); err != nil {
		return fmt.Errorf("failed to load countries: %w", err)
	}

	for {
		var err error
		switch a.ctrl.Step() {
		case 1:
			fmt.Fprintln(a.out, "\nStep 1: Personal Info")
			err = a.personal(ctx)
		case 2:
			fmt.Fprintln(a.out, "\nStep 2: Professional Details")
			err = a.professional(ctx)
		default:
			fmt.Fprintln(a.out, "\nStep 3: Preferences")
			err = a.preferences(ctx)
		}
		if err != nil {
			return err
		}

		p, err := a.ctrl.AdvanceOrSubmit(ctx)
		var fieldErr *wizard.FieldError
		var subErr *wizard.SubmissionError
		switch {
		case errors.As(err, &fieldErr):
			fmt.Fprintf(a.out, "Please fix %s.\n", fieldErr.Error())
		case errors.As(err, &subErr):
			fmt.Fprintln(a.out, "Error: "+subErr.Message)
			quit, err := a.revisit()
			if err != nil || quit {
				return err
			}
		case err != nil:
			return err
		case p != nil:
			fmt.Fprintf(a.out, "Profile updated successfully! (id %s)\n", p.ID)
			return nil
		}
	}
}

// revisit lets the user pick a step to edit after a failed submission.
func (a *App) revisit() (bool, error) {
	choice, err := choose(a.reader, a.out, "Which step do you want to edit?",
		[]string{"Personal Info", "Professional Details", "Preferences", "Quit"}, "Preferences")
	if err != nil {
		return true, err
	}
	var target int
	switch choice {
	case "Quit":
		return true, nil
	case "Personal Info":
		target = 1
	case "Professional Details":
		target = 2
	default:
		target = 3
	}
	for a.ctrl.Step() > target {
		if err := a.ctrl.Back(); err != nil {
			return true, err
		}
	}
	return false, nil
}

// text prompts for field, keeping the current value on an empty answer.
func (a *App) text(ctx context.Context, f wizard.Field, prompt, current string) error {
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}
	answer, err := getText(a.reader, a.out, prompt)
	if err != nil || answer == "" {
		return err
	}
	return a.ctrl.SetField(ctx, f, answer)
}

func (a *App) password(ctx context.Context, f wizard.Field, prompt, current string) error {
	if current != "" {
		prompt += " (leave empty to keep)"
	}
	answer, err := getPassword(a.reader, a.out, prompt)
	if err != nil || answer == "" {
		return err
	}
	return a.ctrl.SetField(ctx, f, answer)
}

func (a *App) personal(ctx context.Context) error {
	if err := a.photo(); err != nil {
		return err
	}
	d := a.ctrl.Draft()
	if err := a.text(ctx, wizard.FieldUsername, "Username (4-20 characters, spaces are removed)", d.Username); err != nil {
		return err
	}
	if err := a.text(ctx, wizard.FieldDateOfBirth, "Date of birth (YYYY-MM-DD)", d.DateOfBirth); err != nil {
		return err
	}
	if err := a.password(ctx, wizard.FieldCurrentPassword, "Current password (optional)", d.CurrentPassword); err != nil {
		return err
	}
	if err := a.password(ctx, wizard.FieldNewPassword, "New password", d.NewPassword); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Password strength: %s\n", a.ctrl.PasswordStrength())
	return nil
}

// photo asks for an optional photo path. Type and size are only checked by
// the server.
func (a *App) photo() error {
	for {
		path, err := getText(a.reader, a.out, "Profile photo path (.png, .jpg, .jpeg; empty to skip)")
		if err != nil || path == "" {
			return err
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			fmt.Fprintf(a.out, "Cannot use %q as a photo.\n", path)
			continue
		}
		return a.ctrl.SetPhoto(&wizard.PhotoRef{
			Path:        path,
			Filename:    filepath.Base(path),
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Size:        info.Size(),
		})
	}
}

func (a *App) professional(ctx context.Context) error {
	d := a.ctrl.Draft()
	prof, err := choose(a.reader, a.out, "Profession", professions, d.Profession)
	if err != nil {
		return err
	}
	if err := a.ctrl.SetField(ctx, wizard.FieldProfession, prof); err != nil {
		return err
	}
	if prof == "Entrepreneur" {
		if err := a.text(ctx, wizard.FieldCompanyName, "Company name", a.ctrl.Draft().CompanyName); err != nil {
			return err
		}
	}
	return a.text(ctx, wizard.FieldAddressLine1, "Address line 1", d.AddressLine1)
}

func (a *App) preferences(ctx context.Context) error {
	d := a.ctrl.Draft()

	names := make([]string, 0)
	for _, c := range a.ctrl.Countries() {
		names = append(names, c.Name)
	}
	if err := a.cascade(ctx, wizard.FieldCountry, "Country", names, d.Country); err != nil {
		return err
	}
	if err := a.cascade(ctx, wizard.FieldState, "State", a.ctrl.States(), a.ctrl.Draft().State); err != nil {
		return err
	}
	if err := a.cascade(ctx, wizard.FieldCity, "City", a.ctrl.Cities(), a.ctrl.Draft().City); err != nil {
		return err
	}

	plan, err := choose(a.reader, a.out, "Subscription plan", plans, a.ctrl.Draft().SubscriptionPlan)
	if err != nil {
		return err
	}
	if err := a.ctrl.SetField(ctx, wizard.FieldSubscriptionPlan, plan); err != nil {
		return err
	}

	news, err := confirm(a.reader, a.out, "Subscribe to the newsletter?", a.ctrl.Draft().Newsletter)
	if err != nil {
		return err
	}
	return a.ctrl.SetField(ctx, wizard.FieldNewsletter, fmt.Sprint(news))
}

// cascade picks one of options for f and waits for the lookups the change
// triggers. Re-picking the current value changes nothing.
func (a *App) cascade(ctx context.Context, f wizard.Field, prompt string, options []string, current string) error {
	if len(options) == 0 {
		if err := a.ctrl.LookupErr(); err != nil {
			fmt.Fprintf(a.out, "No %s options available: %v\n", f, err)
		}
		return nil
	}
	picked, err := choose(a.reader, a.out, prompt, options, current)
	if err != nil {
		return err
	}
	if picked == current {
		return nil
	}
	if err := a.ctrl.SetField(ctx, f, picked); err != nil {
		return err
	}
	a.ctrl.Wait()
	return nil
}
