package notifier

// Supplementary facts prepended to notifications for subscribers who opted
// into them. Fixed static set; selection is pseudo-random per message.
var snackFacts = []string{
	"Bamba has been Israel's best-selling snack since the 1960s.",
	"Bamba is made from just peanut paste, corn grits, salt and oil.",
	"Early exposure to peanut snacks like Bamba is linked to lower rates of peanut allergy.",
	"A standard Bamba snack pack weighs 25 grams and disappears in about ninety seconds.",
	"Bamba contains no preservatives or food colouring.",
	"The Bamba mascot is a nappy-wearing baby that first aired in 1992.",
}
