package connector

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/wiredwork/orcheo/internal/config"
	"github.com/wiredwork/orcheo/internal/domain/trace"
	"github.com/wiredwork/orcheo/internal/service"
)

const (
	googleAdminAPI = "https://admin.googleapis.com/admin/directory/v1"
	googleGmailAPI = "https://gmail.googleapis.com/gmail/v1"
	googleCalAPI   = "https://www.googleapis.com/calendar/v3"
)

// NewGoogle builds the google service against the Google Workspace Admin
// SDK, Gmail, and Calendar APIs.
//
// Required settings: GoogleSettings.ServiceAccountJSON, AdminEmail.
// A real deployment exchanges the service account JSON for an OAuth2
// access token per request (JWT-bearer grant); that token-minting step is
// out of scope here and is the caller's responsibility via client — the
// supplied *http.Client is expected to already attach a valid bearer token,
// e.g. via golang.org/x/oauth2/google.
func NewGoogle(settings config.GoogleSettings, client *http.Client, tr *trace.Trace) *service.ActionRegistry {
	b := newBase("google", client, tr)
	domain := settings.Domain
	adminEmail := settings.AdminEmail

	return service.NewActionRegistry("google", map[string]service.ActionFunc{
		"provision_account": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			name := getString(params, "employee_name", "")
			parts := strings.Fields(name)
			given := name
			family := ""
			if len(parts) > 0 {
				given = parts[0]
			}
			if len(parts) > 1 {
				family = parts[len(parts)-1]
			}

			safeName := strings.ReplaceAll(strings.ToLower(name), " ", ".")
			email := getString(params, "email", safeName+"@"+domain)

			password, err := tempPassword(name)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "failed to generate temporary password", err)
			}

			payload := map[string]interface{}{
				"primaryEmail": email,
				"name":         map[string]string{"givenName": given, "familyName": family},
				"password":     password,
				"changePasswordAtNextLogin": true,
			}

			status, raw, err := b.doJSON(ctx, http.MethodPost, googleAdminAPI+"/users", jsonHeaders(), payload, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "google provision_account request failed", err)
			}
			if status == http.StatusConflict {
				return nil, service.NewError(service.ErrAlreadyExists, "google account "+email+" already exists", nil)
			}
			if !okStatus(status, http.StatusCreated) {
				return nil, StatusError(status, "google provision_account", string(raw))
			}

			result := service.Result{"email": email, "status": "provisioned"}
			b.logSuccess(nodeID, "provision_account", params, result)
			return result, nil
		},
		"send_email": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			to := getString(params, "to", "")
			subject := getString(params, "subject", "")
			payload := map[string]interface{}{
				"raw": encodeMIME(adminEmail, to, subject, getString(params, "body", "")),
			}

			status, raw, err := b.doJSON(ctx, http.MethodPost, googleGmailAPI+"/users/"+adminEmail+"/messages/send", jsonHeaders(), payload, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "google send_email request failed", err)
			}
			if !okStatus(status, http.StatusCreated) {
				return nil, StatusError(status, "google send_email", string(raw))
			}

			result := service.Result{"to": to, "subject": subject, "status": "sent"}
			b.logSuccess(nodeID, "send_email", params, result)
			return result, nil
		},
		"create_calendar_event": func(ctx context.Context, nodeID string, params service.Params) (service.Result, error) {
			title := getString(params, "title", "Meeting")
			attendees := getStringSlice(params, "attendees")
			date := getString(params, "date", "2026-01-01")

			attendeeObjs := make([]map[string]string, 0, len(attendees))
			for _, a := range attendees {
				attendeeObjs = append(attendeeObjs, map[string]string{"email": a})
			}
			payload := map[string]interface{}{
				"summary":   title,
				"attendees": attendeeObjs,
				"start":     map[string]string{"date": date},
				"end":       map[string]string{"date": date},
			}

			status, raw, err := b.doJSON(ctx, http.MethodPost, googleCalAPI+"/calendars/"+adminEmail+"/events", jsonHeaders(), payload, nil)
			if err != nil {
				return nil, service.NewError(service.ErrConnectorError, "google create_calendar_event request failed", err)
			}
			if !okStatus(status, http.StatusCreated) {
				return nil, StatusError(status, "google create_calendar_event", string(raw))
			}

			result := service.Result{"title": title, "attendees": attendees, "status": "created"}
			b.logSuccess(nodeID, "create_calendar_event", params, result)
			return result, nil
		},
	})
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

// tempPassword generates a secure random temporary password for a newly
// provisioned account.
func tempPassword(employeeName string) (string, error) {
	const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, len(buf))
	for i, v := range buf {
		out[i] = alphabet[int(v)%len(alphabet)]
	}
	return string(out), nil
}

func encodeMIME(from, to, subject, body string) string {
	msg := "From: " + from + "\r\nTo: " + to + "\r\nSubject: " + subject + "\r\n\r\n" + body
	return base64.URLEncoding.EncodeToString([]byte(msg))
}
