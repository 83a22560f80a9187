package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"profilewizard/client/wizard"
	"profilewizard/models"

	"go.uber.org/zap"
)

var (
	_ wizard.LocationLookup = (*Client)(nil)
	_ wizard.Submitter      = (*Client)(nil)
)

// Submit posts d to /api/user as multipart form data, photo included.
func (c *Client) Submit(ctx context.Context, d wizard.Draft) (*models.Profile, error) {
	body, contentType, err := encodeDraft(d)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/user", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("profile submission failed", zap.String("username", d.Username), zap.Error(err))
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, readServerError(resp)
	}

	var created models.ProfileCreatedResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	c.logger.Info(created.Message, zap.String("id", created.User.ID))
	return &created.User, nil
}

func encodeDraft(d wizard.Draft) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name  wizard.Field
		value string
	}{
		{wizard.FieldUsername, d.Username},
		{wizard.FieldCurrentPassword, d.CurrentPassword},
		{wizard.FieldNewPassword, d.NewPassword},
		{wizard.FieldDateOfBirth, d.DateOfBirth},
		{wizard.FieldProfession, d.Profession},
		{wizard.FieldCompanyName, d.CompanyName},
		{wizard.FieldAddressLine1, d.AddressLine1},
		{wizard.FieldCountry, d.Country},
		{wizard.FieldState, d.State},
		{wizard.FieldCity, d.City},
		{wizard.FieldSubscriptionPlan, d.SubscriptionPlan},
		{wizard.FieldNewsletter, strconv.FormatBool(d.Newsletter)},
	}
	for _, f := range fields {
		if err := w.WriteField(string(f.name), f.value); err != nil {
			return nil, "", fmt.Errorf("failed to encode %s: %w", f.name, err)
		}
	}

	if d.Photo != nil {
		if err := writePhoto(w, d.Photo); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to encode form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// writePhoto adds the profilePhoto part with the photo's own content type;
// CreateFormFile would label it application/octet-stream.
func writePhoto(w *multipart.Writer, photo *wizard.PhotoRef) error {
	f, err := os.Open(photo.Path)
	if err != nil {
		return fmt.Errorf("failed to open photo: %w", err)
	}
	defer f.Close()

	name := photo.Filename
	if name == "" {
		name = filepath.Base(photo.Path)
	}
	ctype := photo.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="profilePhoto"; filename="%s"`, quoteEscaper.Replace(name)))
	h.Set("Content-Type", ctype)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to encode photo: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read photo: %w", err)
	}
	return nil
}
