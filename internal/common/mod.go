package common

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

const (
	REQUEST_TIMEOUT_SECS = 2 * 60 * time.Second

	CART_COOKIE_NAME    = "_cart_id"
	CART_COOKIE_MAX_AGE = 60 * 60 * 24 * 30

	DISPLAY_CART_CACHE_TTL = 15 * time.Minute
)

// IsEmptyString checks if a string is empty
func IsEmptyString(s string) bool {
	return strings.Compare(s, "") == 0
}
