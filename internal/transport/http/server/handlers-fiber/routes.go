package handlers_fiber

import "github.com/gofiber/fiber/v2"

// LandingPage is where the root path redirects.
const LandingPage = "/static/index.html"

// RegisterHandlers mounts the activities API on router.
func RegisterHandlers(router fiber.Router, h *Handler) {
	router.Get("/", h.GetRoot)
	router.Get("/activities", h.GetActivities)
	router.Post("/activities/:name/signup", h.PostActivitySignup)
	router.Delete("/activities/:name/unregister", h.DeleteActivityUnregister)
}
