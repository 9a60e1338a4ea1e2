// SPDX-License-Identifier: MIT

package modelinfo

import "errors"

// ErrBadOption indicates an enumerated option outside its valid set.
var ErrBadOption = errors.New("modelinfo: invalid option value")
