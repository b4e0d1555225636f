package aggregate

import (
	"time"

	"lunchly/internal/domain/model"
)

// now is overridable in tests.
var now = time.Now

func today() model.Date {
	return model.DateOf(now())
}
