package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"foodgram/internal/domain"
	"foodgram/internal/logging"
	"foodgram/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Guards bundles the per-route middleware handlers need.
type Guards struct {
	Required fiber.Handler
	Optional fiber.Handler
	Throttle fiber.Handler
}

// throttle returns the Throttle guard or a pass-through when unset.
func (g Guards) throttle() fiber.Handler {
	if g.Throttle != nil {
		return g.Throttle
	}
	return func(c *fiber.Ctx) error { return c.Next() }
}

// NewValidator returns a validator with the project's custom rules.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return services.UsernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// bind parses the body into dst and validates it.
func bind(c *fiber.Ctx, v *validator.Validate, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.NewValidationError("body", "invalid request body")
	}
	if err := v.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		verr := &domain.ValidationError{}
		for _, e := range validationErrors {
			verr.Add(jsonField(e), fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
		}
		return verr
	}
	return nil
}

// jsonField strips the root struct from the namespace, leaving the
// request path such as "ingredients[0].amount".
func jsonField(e validator.FieldError) string {
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok {
		return rest
	}
	return e.Field()
}

// respondError maps domain errors onto HTTP responses.
func respondError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Not found",
			"error":   err.Error(),
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Request conflicts with existing data",
			"error":   err.Error(),
		})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You do not have permission to perform this action",
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unable to log in with provided credentials",
		})
	case errors.Is(err, domain.ErrCodeGenerationExhausted):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not generate a short link",
		})
	}

	logging.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
