package wizard

import (
	"strings"
	"unicode"
)

type lookupKind int

const (
	lookupNone lookupKind = iota
	lookupStates
	lookupCities
)

// cascadeRule describes what happens when a field is set.
type cascadeRule struct {
	sanitize func(string) string
	// clears lists downstream fields emptied on every change. When clearIf
	// is set they are emptied only if it returns true for the new value.
	clears  []Field
	clearIf func(value string) bool
	lookup  lookupKind
	rescore bool
}

var cascade = map[Field]cascadeRule{
	FieldUsername:    {sanitize: stripWhitespace},
	FieldNewPassword: {rescore: true},
	FieldProfession: {
		clears:  []Field{FieldCompanyName},
		clearIf: func(v string) bool { return v != "Entrepreneur" },
	},
	FieldCountry: {clears: []Field{FieldState, FieldCity}, lookup: lookupStates},
	FieldState:   {clears: []Field{FieldCity}, lookup: lookupCities},
}

func ruleFor(f Field) cascadeRule {
	r := cascade[f]
	if r.sanitize == nil {
		r.sanitize = func(s string) string { return s }
	}
	return r
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
