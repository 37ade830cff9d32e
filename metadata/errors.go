// SPDX-License-Identifier: EPL-2.0

package metadata

import "errors"

var (
	ErrUnsupportedFormat = errors.New("no metadata reader for format")
	ErrInvalidPicture    = errors.New("invalid embedded picture")
)
