package settings

import "errors"

var (
	ErrConfigUnavailable = errors.New("configuration unavailable")
	ErrSettingsNotFound  = errors.New("app settings row not found")
)
