package config

import "errors"

// ErrInvalidConfig is wrapped by every validation failure of this package.
var ErrInvalidConfig = errors.New("invalid config")
