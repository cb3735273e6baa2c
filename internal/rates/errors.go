package rates

import "fmt"

// Category classifies a failed fetch for the user.
type Category string

const (
	// CategoryNetwork means the last provider could not be reached.
	CategoryNetwork Category = "network"
	// CategoryAPI means a provider answered but returned nothing usable.
	CategoryAPI Category = "api"
)

// FetchError is returned when every provider failed.
type FetchError struct {
	Category Category
	Err      error
}

func (e *FetchError) Error() string {
	switch e.Category {
	case CategoryNetwork:
		return "network error, using cached rates"
	default:
		return "API error, using cached rates"
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// NoRateError reports a currency with no known exchange rate.
type NoRateError struct {
	Code string
}

func (e *NoRateError) Error() string {
	return fmt.Sprintf("could not find exchange rate for %s", e.Code)
}
