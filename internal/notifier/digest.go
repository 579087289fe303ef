package notifier

import (
	"fmt"
	"strings"
	"time"

	"bambawatch/internal/models"
)

// DigestComposer renders the daily summary for daily-frequency subscribers:
// every run of the day, with a per-store checkmark roundup.
type DigestComposer struct {
	subjectPrefix string
	location      *time.Location
}

// NewDigestComposer creates a DigestComposer rendering times in loc.
func NewDigestComposer(subjectPrefix string, loc *time.Location) *DigestComposer {
	return &DigestComposer{subjectPrefix: subjectPrefix, location: loc}
}

// Compose builds the digest for one subscriber from the day's run batches.
// Returns false when there were no runs to report.
func (dc *DigestComposer) Compose(runs []models.RunBatch, sub models.Subscriber) (Message, bool) {
	if len(runs) == 0 {
		return Message{}, false
	}

	var body strings.Builder
	body.WriteString("<h2>Bamba Daily Roundup</h2>\n")

	for _, run := range runs {
		if len(run) == 0 {
			continue
		}
		ts := run[0].Timestamp.In(dc.location)
		fmt.Fprintf(&body, "<h3>Checked at %s</h3>\n<ul>\n", ts.Format("15:04:05"))
		for _, obs := range run {
			if !sub.WantsStore(obs.Store) {
				continue
			}
			mark := "❌"
			if obs.Available {
				mark = "✅"
			}
			fmt.Fprintf(&body, "<li>%s %s — %d products seen</li>\n", mark, obs.Store, len(obs.Products))
		}
		body.WriteString("</ul>\n")
	}

	body.WriteString("<p>That's all for today. Stay nutty!</p>\n")

	return Message{
		To:      sub.Address,
		Subject: dc.subjectPrefix + " Daily report: your peanut roundup",
		Body:    body.String(),
		HTML:    true,
	}, true
}
