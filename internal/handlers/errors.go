package handlers

import "errors"

var (
	errMissingProviderFields = errors.New("missing_provider_fields")
	errSlugTaken             = errors.New("slug_already_exists")
	errProviderCreateFailed  = errors.New("failed_to_create_provider")
)
