package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/dhruvrajput1/letmecook2.0/internal/middleware"
	"github.com/dhruvrajput1/letmecook2.0/internal/models"
)

type subscriptionRepository interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	ListSubscribers(ctx context.Context, channelID uuid.UUID) ([]models.OwnerSummary, error)
	ListSubscribedChannels(ctx context.Context, subscriberID uuid.UUID) ([]models.OwnerSummary, error)
}

type SubscriptionHandler struct {
	subscriptions subscriptionRepository
}

func NewSubscriptionHandler(subscriptions subscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

func (h *SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	channelID, ok := uuidParam(w, r, "channelId")
	if !ok {
		return
	}

	user := middleware.GetUser(r.Context())
	if channelID == user.ID {
		respondError(w, http.StatusBadRequest, "You cannot subscribe to your own channel")
		return
	}

	subscribed, err := h.subscriptions.Toggle(r.Context(), user.ID, channelID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	message := "Unsubscribed successfully"
	if subscribed {
		message = "Subscribed successfully"
	}
	respond(w, http.StatusOK, map[string]bool{"isSubscribed": subscribed}, message)
}

func (h *SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, ok := uuidParam(w, r, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.subscriptions.ListSubscribers(r.Context(), channelID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, subscribers, "Subscribers fetched successfully")
}

func (h *SubscriptionHandler) SubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID, ok := uuidParam(w, r, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.subscriptions.ListSubscribedChannels(r.Context(), subscriberID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respond(w, http.StatusOK, channels, "Subscribed channels fetched successfully")
}
