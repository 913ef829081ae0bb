package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errNameRequired     = errors.New("name is required")
	errNameInvalid      = errors.New("name must be 2-32 lowercase alphanumeric characters or hyphens, starting with a letter")
	errHostnameRequired = errors.New("hostname is required")
	errHostnameInvalid  = errors.New("hostname must be a fully qualified domain name")
	errCertARNRequired  = errors.New("certificate ARN is required for HTTPS")
	errCertARNInvalid   = errors.New("certificate ARN must start with arn:aws:acm:")
	errCountInvalid     = errors.New("must be a whole number of at least 2")
)
