package notifier

// Message is a composed notification ready for dispatch. Messages are
// immutable once built, which is what makes parallel dispatch safe.
type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}
