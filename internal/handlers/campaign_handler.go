package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"campaign-system/internal/services"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	broadcaster     *services.BroadcastService
}

func NewCampaignHandler(campaignService *services.CampaignService, broadcaster *services.BroadcastService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		broadcaster:     broadcaster,
	}
}

// ListCampaigns - Get all campaigns with derived availability
func (h *CampaignHandler) ListCampaigns(e *core.RequestEvent) error {
	campaigns, err := h.campaignService.ListCampaigns(e.Request.Context())
	if err != nil {
		return apis.NewApiError(http.StatusInternalServerError, "Failed to get campaigns", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"campaigns": campaigns,
		"count":     len(campaigns),
	})
}

// StreamChanges - Push channel for availability and booking events.
// One persistent SSE connection per client; no client->server messages.
func (h *CampaignHandler) StreamChanges(e *core.RequestEvent) error {
	flusher, ok := e.Response.(http.Flusher)
	if !ok {
		return apis.NewApiError(http.StatusInternalServerError, "Streaming unsupported", nil)
	}

	e.Response.Header().Set("Content-Type", "text/event-stream")
	e.Response.Header().Set("Cache-Control", "no-cache")
	e.Response.Header().Set("Connection", "keep-alive")
	e.Response.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(sub)

	ctx := e.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, open := <-sub.Events:
			if !open {
				return nil
			}
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(e.Response, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}
