// CLAUDE:SUMMARY Sentinel errors for the bulletin service.
package bulletin

import (
	"errors"

	"github.com/hazyhaar/bulletin/scan"
)

// ErrNoRecords is returned when a scan finds zero complete records for
// the requested department/year.
var ErrNoRecords = scan.ErrNoRecords

// ErrInvalidInput is returned when the department or year is missing.
var ErrInvalidInput = errors.New("bulletin: invalid input")
