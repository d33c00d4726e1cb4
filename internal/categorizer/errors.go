package categorizer

import "errors"

// Failure classes of a remote categorization. They are wrapped in a
// *parsererror.CategorizationError together with the underlying cause.
var (
	ErrProviderTimeout   = errors.New("provider timed out")
	ErrProviderTransport = errors.New("provider request failed")
	ErrResponseFormat    = errors.New("provider response is not valid categorization JSON")
	ErrNoCredentials     = errors.New("no API key configured for provider")
)
