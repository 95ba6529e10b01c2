package services

// procedureAbbreviations expands common shorthand for procedures into the
// full names that appear in clinic procedure lists. Keys are single lowercase
// tokens; multi-word shorthand is not supported by the classifier.
// Two-letter entries that collide with state abbreviations (e.g. "la") must
// stay out of this table, since state matching runs first and would swallow
// them anyway.
var procedureAbbreviations = map[string]string{
	"bbl":     "brazilian butt lift",
	"ba":      "breast augmentation",
	"tt":      "tummy tuck",
	"lipo":    "liposuction",
	"rhino":   "rhinoplasty",
	"bleph":   "blepharoplasty",
	"abdo":    "abdominoplasty",
	"brachio": "brachioplasty",
	"smp":     "scalp micropigmentation",
	"prp":     "platelet rich plasma",
	"ipl":     "intense pulsed light",
	"rf":      "radiofrequency",
	"coolsculpt": "coolsculpting",
}

// cityPrefixes lists leading words of common multi-word US city names. A
// token from this list followed by another word is classified as a two-word
// city even when the pair is not present in the dataset.
var cityPrefixes = map[string]struct{}{
	"san":   {},
	"santa": {},
	"new":   {},
	"los":   {},
	"las":   {},
	"saint": {},
	"st":    {},
	"fort":  {},
	"ft":    {},
	"lake":  {},
	"mount": {},
	"el":    {},
}
