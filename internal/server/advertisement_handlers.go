package server

import (
	"classifieds/internal/models"
	"classifieds/internal/service"

	"github.com/gofiber/fiber/v2"
)

func listInput(c *fiber.Ctx) service.ListInput {
	page := parsePagination(c)
	return service.ListInput{Limit: page.Limit, Offset: page.Offset}
}

func parseFields(c *fiber.Ctx) (models.AdvertisementFields, error) {
	var fields models.AdvertisementFields
	if err := c.BodyParser(&fields); err != nil {
		return fields, models.NewValidationError("Invalid request body")
	}
	return fields, nil
}

// CreateAdvertisement handles POST /advertisements/
// @Summary Create a listing
// @Tags advertisements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AdvertisementFields true "Listing fields"
// @Success 200 {object} models.Advertisement
// @Failure 401 {object} models.ErrorResponse
// @Router /advertisements/ [post]
func (s *Server) CreateAdvertisement(c *fiber.Ctx) error {
	fields, err := parseFields(c)
	if err != nil {
		return respondError(c, err)
	}

	ad, err := s.adService.Create(c.UserContext(), currentUser(c), fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ad)
}

// ListAdvertisements handles GET /advertisements/
// @Summary List listings
// @Tags advertisements
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Advertisement
// @Router /advertisements/ [get]
func (s *Server) ListAdvertisements(c *fiber.Ctx) error {
	ads, err := s.adService.List(c.UserContext(), listInput(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ads)
}

// SearchAdvertisements handles GET /advertisements/search/?query=
// @Summary Search listings by title
// @Description Case-insensitive substring match on the title
// @Tags advertisements
// @Produce json
// @Param query query string true "Substring to look for"
// @Success 200 {array} models.Advertisement
// @Failure 400 {object} models.ErrorResponse
// @Router /advertisements/search/ [get]
func (s *Server) SearchAdvertisements(c *fiber.Ctx) error {
	ads, err := s.adService.Search(c.UserContext(), c.Query("query"), listInput(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ads)
}

// GetAdvertisement handles GET /advertisements/:id
// @Summary Get a listing
// @Tags advertisements
// @Produce json
// @Param id path int true "Advertisement ID"
// @Success 200 {object} models.Advertisement
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id} [get]
func (s *Server) GetAdvertisement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	ad, err := s.adService.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ad)
}

// UpdateAdvertisement handles PUT /advertisements/:id
// @Summary Replace a listing's fields
// @Tags advertisements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advertisement ID"
// @Param request body models.AdvertisementFields true "Listing fields"
// @Success 200 {object} models.Advertisement
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id} [put]
func (s *Server) UpdateAdvertisement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	fields, err := parseFields(c)
	if err != nil {
		return respondError(c, err)
	}

	ad, err := s.adService.Update(c.UserContext(), currentUser(c), id, fields)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ad)
}

// DeleteAdvertisement handles DELETE /advertisements/:id
// @Summary Delete a listing
// @Tags advertisements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Advertisement ID"
// @Success 200 {object} object{detail=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /advertisements/{id} [delete]
func (s *Server) DeleteAdvertisement(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adService.Delete(c.UserContext(), currentUser(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"detail": "Advertisement deleted successfully"})
}
