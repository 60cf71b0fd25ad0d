package routes

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func queryBool(c *fiber.Ctx, key string, fallback bool) (bool, error) {
	value := c.Query(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("Parameter %s should be a boolean", key)
	}
	return parsed, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	value := c.Query(key)
	if value == "" {
		return fallback, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("Parameter %s should be an integer", key)
	}
	return parsed, nil
}
