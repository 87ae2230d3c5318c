package api

import (
	"errors"
	"net/url"
	"time"

	"weather-dashboard/internal/astro"
	"weather-dashboard/internal/geo"
	"weather-dashboard/internal/services"
	"weather-dashboard/internal/store"
	"weather-dashboard/internal/units"
	"weather-dashboard/pkg/client"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

type Handler struct {
	weather   *services.WeatherService
	locations *store.LocationStore
	logger    *zap.Logger
}

func NewHandler(weather *services.WeatherService, locations *store.LocationStore, logger *zap.Logger) *Handler {
	return &Handler{
		weather:   weather,
		locations: locations,
		logger:    logger,
	}
}

// placeQuery identifies a place either by free-text city or by coordinates.
type placeQuery struct {
	City  string   `query:"city"`
	Lat   *float64 `query:"lat" validate:"omitempty,min=-90,max=90"`
	Lon   *float64 `query:"lon" validate:"omitempty,min=-180,max=180"`
	Units string   `query:"units" validate:"omitempty,oneof=imperial metric"`
}

func (q *placeQuery) bind(c *fiber.Ctx) error {
	if err := c.QueryParser(q); err != nil {
		return err
	}
	if err := validate.Struct(q); err != nil {
		return err
	}
	if q.City == "" && (q.Lat == nil || q.Lon == nil) {
		return errors.New("either city or lat and lon are required")
	}
	return nil
}

func (q *placeQuery) units() units.Units {
	return units.Parse(q.Units)
}

func (q *placeQuery) byCoords() bool {
	return q.City == "" && q.Lat != nil && q.Lon != nil
}

// GetCurrentWeather handles GET /api/v1/weather/current
func (h *Handler) GetCurrentWeather(c *fiber.Ctx) error {
	var q placeQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.logger.Info("Fetching current weather", zap.String("city", q.City))

	if q.byCoords() {
		current, err := h.weather.CurrentByCoords(c.Context(), *q.Lat, *q.Lon, q.units())
		if err != nil {
			return providerError(err)
		}
		return c.JSON(current)
	}

	current, err := h.weather.CurrentByCity(c.Context(), q.City, q.units())
	if err != nil {
		return providerError(err)
	}
	return c.JSON(current)
}

// GetForecast handles GET /api/v1/weather/forecast
func (h *Handler) GetForecast(c *fiber.Ctx) error {
	var q placeQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.logger.Info("Fetching forecast", zap.String("city", q.City))

	if q.byCoords() {
		days, err := h.weather.ForecastByCoords(c.Context(), *q.Lat, *q.Lon, q.units())
		if err != nil {
			return providerError(err)
		}
		return c.JSON(fiber.Map{"days": days})
	}

	days, err := h.weather.ForecastByCity(c.Context(), q.City, q.units())
	if err != nil {
		return providerError(err)
	}
	return c.JSON(fiber.Map{"days": days})
}

type hourlyQuery struct {
	placeQuery
	Hours int `query:"hours" validate:"omitempty,min=1,max=48"`
}

// GetHourly handles GET /api/v1/weather/hourly
func (h *Handler) GetHourly(c *fiber.Ctx) error {
	var q hourlyQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := q.placeQuery.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if q.byCoords() {
		points, err := h.weather.HourlyByCoords(c.Context(), *q.Lat, *q.Lon, q.units(), q.Hours)
		if err != nil {
			return providerError(err)
		}
		return c.JSON(fiber.Map{"hours": points})
	}

	points, err := h.weather.HourlyByCity(c.Context(), q.City, q.units(), q.Hours)
	if err != nil {
		return providerError(err)
	}
	return c.JSON(fiber.Map{"hours": points})
}

// ResolveCity handles GET /api/v1/geo/resolve
func (h *Handler) ResolveCity(c *fiber.Ctx) error {
	city := c.Query("city")
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city parameter is required")
	}

	loc, err := h.weather.ResolveCity(c.Context(), city)
	if err != nil {
		return providerError(err)
	}
	return c.JSON(loc)
}

type moonQuery struct {
	Days int `query:"days" validate:"omitempty,min=1,max=31"`
}

// GetMoon handles GET /api/v1/astro/moon
func (h *Handler) GetMoon(c *fiber.Ctx) error {
	var q moonQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	now := time.Now().UTC()
	if q.Days <= 1 {
		return c.JSON(astro.Phase(now))
	}
	return c.JSON(fiber.Map{"calendar": astro.Calendar(now, q.Days)})
}

// GetLocations handles GET /api/v1/locations
func (h *Handler) GetLocations(c *fiber.Ctx) error {
	list, last, err := h.locations.Init(c.Context())
	if err != nil {
		h.logger.Error("Failed to load locations", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"locations": list, "last_city": last})
}

type addLocationBody struct {
	City string `json:"city" validate:"required"`
}

// AddLocation handles POST /api/v1/locations
func (h *Handler) AddLocation(c *fiber.Ctx) error {
	var body addLocationBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	list, err := h.locations.Add(c.Context(), body.City)
	if err != nil {
		h.logger.Error("Failed to add location", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"locations": list})
}

// RemoveLocation handles DELETE /api/v1/locations/:city
func (h *Handler) RemoveLocation(c *fiber.Ctx) error {
	city, err := urlParam(c, "city")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	list, err := h.locations.Remove(c.Context(), city)
	if err != nil {
		h.logger.Error("Failed to remove location", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.JSON(fiber.Map{"locations": list})
}

// SetLastCity handles PUT /api/v1/locations/last
func (h *Handler) SetLastCity(c *fiber.Ctx) error {
	var body addLocationBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.locations.SetLastCity(c.Context(), body.City); err != nil {
		h.logger.Error("Failed to set last city", zap.Error(err))
		return fiber.ErrInternalServerError
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startTime).String(),
	})
}

var startTime = time.Now()

func urlParam(c *fiber.Ctx, name string) (string, error) {
	v, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", err
	}
	return v, nil
}

// providerError maps service failures to HTTP statuses: an empty geocoding
// result is the caller's 404, a provider-side failure is a 502.
func providerError(err error) error {
	if errors.Is(err, geo.ErrNoMatch) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	var reqErr *client.RequestError
	if errors.As(err, &reqErr) {
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
