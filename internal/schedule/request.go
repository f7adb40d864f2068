package schedule

import (
	"fmt"
	"time"

	"github.com/ka-tamaki/work-scheduler/internal/holidays"
	"github.com/ka-tamaki/work-scheduler/pkg/dateutil"
)

// DefaultTitle is used when a request carries no title
const DefaultTitle = "製造工程"

// Request describes one schedule to lay out
type Request struct {
	Title   string
	Start   dateutil.YearMonth
	End     dateutil.YearMonth
	Factory holidays.Factory
}

// Validate checks both bounds and that Start is not after End
func (r Request) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("invalid start: %w", err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("invalid end: %w", err)
	}
	if r.Start.After(r.End) {
		return &dateutil.DateRangeError{
			Year:   r.Start.Year,
			Month:  r.Start.Month,
			Reason: fmt.Sprintf("start is after end %s", r.End),
		}
	}
	return nil
}

// Heading returns the document heading for the request title
func (r Request) Heading() string {
	return Heading(r.Title)
}

// Heading returns the document heading for a title, e.g. "製造工程 製造工程計画"
func Heading(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	return title + " 製造工程計画"
}

// OutputFileName names a saved schedule after its title and creation time
func OutputFileName(title string, created time.Time, ext string) string {
	if title == "" {
		title = DefaultTitle
	}
	return fmt.Sprintf("%s製造工程表_%s%s", title, created.Format("2006-01-02_15-04-05"), ext)
}
