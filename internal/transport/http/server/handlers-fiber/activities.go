package handlers_fiber

import (
	"net/http"
	"net/url"

	"mergington-activities/internal/mapper"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// GetRoot redirects to the static landing page.
func (h *Handler) GetRoot(c *fiber.Ctx) error {
	return c.Redirect(LandingPage, http.StatusTemporaryRedirect)
}

// GetActivities returns all activities keyed by name.
func (h *Handler) GetActivities(c *fiber.Ctx) error {
	activities, err := h.uc.Activities(c.UserContext())
	if err != nil {
		h.log.Errorw("failed to list activities", "error", err.Error())
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToActivityList(activities))
}

// PostActivitySignup signs a student up for an activity.
func (h *Handler) PostActivitySignup(c *fiber.Ctx) error {
	name := activityName(c)
	email, ok := emailParam(c)
	if !ok {
		return c.Status(http.StatusUnprocessableEntity).JSON(errorResponse("email is required"))
	}

	res, err := h.uc.Signup(c.UserContext(), name, email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToMessage(*res))
}

// DeleteActivityUnregister removes a student from an activity.
func (h *Handler) DeleteActivityUnregister(c *fiber.Ctx) error {
	name := activityName(c)
	email, ok := emailParam(c)
	if !ok {
		return c.Status(http.StatusUnprocessableEntity).JSON(errorResponse("email is required"))
	}

	res, err := h.uc.Unregister(c.UserContext(), name, email)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(mapper.ToMessage(*res))
}

// activityName decodes the :name segment. It is not trimmed or case folded.
// A malformed escape keeps the raw text, so the lookup reports not found.
func activityName(c *fiber.Ctx) string {
	raw := utils.CopyString(c.Params("name"))
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// emailParam reads email from the query string, then the urlencoded body,
// then a multipart form. A present but empty value is accepted.
// Values are copied since fiber reuses request buffers.
func emailParam(c *fiber.Ctx) (string, bool) {
	if args := c.Context().QueryArgs(); args.Has("email") {
		return string(args.Peek("email")), true
	}
	if args := c.Request().PostArgs(); args.Has("email") {
		return string(args.Peek("email")), true
	}
	if form, err := c.MultipartForm(); err == nil {
		if v, ok := form.Value["email"]; ok && len(v) > 0 {
			return utils.CopyString(v[0]), true
		}
	}
	return "", false
}
