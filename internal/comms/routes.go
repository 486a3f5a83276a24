package comms

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers communications endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/acks/mine", h.myAcks)
	r.Group(func(r chi.Router) {
		r.Use(h.guards.RequireAckAllowed)
		r.Post("/", h.create)
	})
	r.Get("/{id}", h.detail)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.remove)
	r.Group(func(r chi.Router) {
		r.Use(h.guards.RequireRecipient)
		r.Post("/{id}/ack", h.acknowledge)
	})
	r.Get("/{id}/ack/summary", h.ackSummary)
}
