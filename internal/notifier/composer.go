package notifier

import (
	"fmt"
	"math/rand"
	"strings"

	"bambawatch/internal/models"

	"github.com/rs/zerolog"
)

// Composer renders subscriber-specific messages from a run batch and the
// detected changes. Composition does no I/O and has no side effects beyond
// advancing the injected random source.
type Composer struct {
	subjectPrefix string
	rng           *rand.Rand
	logger        zerolog.Logger
}

// NewComposer creates a Composer. The random source only picks
// supplementary facts; tests inject a seeded one.
func NewComposer(subjectPrefix string, rng *rand.Rand, logger zerolog.Logger) *Composer {
	return &Composer{
		subjectPrefix: subjectPrefix,
		rng:           rng,
		logger:        logger.With().Str("component", "Composer").Logger(),
	}
}

// Compose builds the notification for one subscriber, or reports false when
// the subscriber's preferences suppress it entirely.
//
// Filtering order matters: the change gate runs first, then the store and
// size filters narrow the content, and an empty remainder suppresses.
func (c *Composer) Compose(batch models.RunBatch, changes []models.Change, sub models.Subscriber) (Message, bool) {
	relevant := c.relevantChanges(changes, sub)

	if sub.OnlyOnChange && len(relevant) == 0 {
		return Message{}, false
	}

	type renderedStore struct {
		obs   models.Observation
		items []models.Item
	}
	var stores []renderedStore
	for _, obs := range batch {
		if !sub.WantsStore(obs.Store) {
			continue
		}
		var items []models.Item
		for _, item := range obs.Products {
			if sub.WantsSize(item.Size) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		stores = append(stores, renderedStore{obs: obs, items: items})
	}

	if len(stores) == 0 {
		return Message{}, false
	}

	changeByItem := make(map[string]models.Change, len(relevant))
	for _, ch := range relevant {
		changeByItem[ch.Store+"|"+ch.ItemName] = ch
	}

	var body strings.Builder
	if sub.IncludeFacts {
		fact := snackFacts[c.rng.Intn(len(snackFacts))]
		body.WriteString("Did you know? " + fact + "\n\n")
	}

	alert := false
	for _, rs := range stores {
		status := "out of stock"
		if rs.obs.Available {
			status = "IN STOCK"
		}
		fmt.Fprintf(&body, "%s (checked %s): %s\n",
			rs.obs.Store, rs.obs.Timestamp.Format("15:04 MST"), status)

		for _, item := range rs.items {
			mark := "✗"
			if item.Available {
				mark = "✓"
			}
			fmt.Fprintf(&body, "  %s %s @ %s", mark, item.Name, item.Price)
			if ch, ok := changeByItem[rs.obs.Store+"|"+item.Name]; ok {
				fmt.Fprintf(&body, "  << %s", transitionLabel(ch.Kind))
				if ch.Kind.IsNewlyAvailable() {
					alert = true
				}
			}
			body.WriteString("\n")
		}
		body.WriteString("\n")
	}

	subject := c.subjectPrefix + " Availability update"
	if alert {
		subject = c.subjectPrefix + " ALERT: Bamba spotted on shelves!"
	}

	return Message{To: sub.Address, Subject: subject, Body: body.String()}, true
}

// relevantChanges filters the change set down to the subscriber's store and
// size preferences.
func (c *Composer) relevantChanges(changes []models.Change, sub models.Subscriber) []models.Change {
	var out []models.Change
	for _, ch := range changes {
		if !sub.WantsStore(ch.Store) {
			continue
		}
		if !sub.WantsSize(models.SizeClassFromName(ch.ItemName)) {
			continue
		}
		out = append(out, ch)
	}
	return out
}

func transitionLabel(kind models.ChangeKind) string {
	switch kind {
	case models.ChangeNewAvailable:
		return "new on shelves"
	case models.ChangeNewUnavailable:
		return "new but sold out"
	case models.ChangeBecameAvailable:
		return "back in stock"
	case models.ChangeBecameUnavailable:
		return "just sold out"
	default:
		return string(kind)
	}
}
