package utils

import "log"

// Must aborts startup on err.
func Must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// LogFor logs err with context and reports whether there was one.
func LogFor(what string, err error) bool {
	if err != nil {
		log.Printf("%s: %v", what, err)
		return true
	}
	return false
}
