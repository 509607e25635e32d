package meta

import "errors"

// ErrUnknownPage is returned for pages that carry no metadata.
var ErrUnknownPage = errors.New("unknown page")
