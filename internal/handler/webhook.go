package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/filedrive/filedrive/internal/service"
)

// WebhookHandler receives identity-provider sync events: user sign-ups,
// profile updates, and organization membership changes. All provisioning
// flows through here; there is no self-service user registration.
type WebhookHandler struct {
	userService *service.UserService
	secret      string
}

func NewWebhookHandler(userService *service.UserService, secret string) *WebhookHandler {
	return &WebhookHandler{
		userService: userService,
		secret:      secret,
	}
}

type identityEvent struct {
	Type string `json:"type"`
	Data struct {
		TokenIdentifier string `json:"tokenIdentifier"`
		Name            string `json:"name"`
		ImageURL        string `json:"imageUrl"`
		OrgID           string `json:"orgId"`
		Role            string `json:"role"`
	} `json:"data"`
}

func (h *WebhookHandler) Identity(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	err = h.verify(payload, r.Header)
	if err != nil {
		slog.Warn("identity webhook signature rejected", "error", err)
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	var event identityEvent
	err = json.Unmarshal(payload, &event)
	if err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	slog.Info("identity webhook received", "event_type", event.Type)

	switch event.Type {
	case "user.created":
		_, err = h.userService.Create(event.Data.TokenIdentifier, event.Data.Name, event.Data.ImageURL)
	case "user.updated":
		err = h.userService.Update(event.Data.TokenIdentifier, event.Data.Name, event.Data.ImageURL)
	case "organizationMembership.created":
		err = h.userService.AddOrgMembership(event.Data.TokenIdentifier, event.Data.OrgID, event.Data.Role)
	case "organizationMembership.updated":
		err = h.userService.UpdateOrgRole(event.Data.TokenIdentifier, event.Data.OrgID, event.Data.Role)
	default:
		slog.Warn("identity webhook unknown event type", "event_type", event.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	if err != nil {
		slog.Error("identity webhook processing failed", "event_type", event.Type, "error", err)
		http.Error(w, "failed to process event", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) verify(payload []byte, headers http.Header) error {
	if h.secret == "" {
		slog.Warn("identity webhook no secret configured, skipping signature verification")
		return nil
	}

	wh, err := standardwebhooks.NewWebhookRaw([]byte(h.secret))
	if err != nil {
		return fmt.Errorf("failed to create webhook verifier: %w", err)
	}

	err = wh.Verify(payload, headers)
	if err != nil {
		return fmt.Errorf("invalid webhook signature: %w", err)
	}
	return nil
}
