// Package chatbot implements the keyword-matching specialization lookup
// behind POST /api/chatbot. Matching is a plain ordered scan: the first
// keyword found in the message wins, no ranking.
package chatbot

import "strings"

type keywordMapping struct {
	Keyword        string
	Specialization string
}

// specializationTable maps free-text terms to canonical specialization
// names. Order matters; do not sort.
var specializationTable = []keywordMapping{
	{"cardiologist", "Cardiology"},
	{"cardiology", "Cardiology"},
	{"heart", "Cardiology"},
	{"dermatologist", "Dermatology"},
	{"dermatology", "Dermatology"},
	{"skin", "Dermatology"},
	{"neurologist", "Neurology"},
	{"neurology", "Neurology"},
	{"pediatrician", "Pediatrics"},
	{"pediatrics", "Pediatrics"},
	{"children", "Pediatrics"},
	{"dentist", "Dentistry"},
	{"dental", "Dentistry"},
	{"general", "General Practice"},
	{"gp", "General Practice"},
}

// HelpMessage is returned when no keyword matches.
const HelpMessage = "I'm sorry, I didn't verify that specialization. Try asking for 'Cardiologist', 'Dermatologist', 'Pediatrician', etc."

// MatchSpecialization scans the message for the first known keyword and
// returns its canonical specialization.
func MatchSpecialization(message string) (string, bool) {
	message = strings.ToLower(message)
	for _, m := range specializationTable {
		if strings.Contains(message, m.Keyword) {
			return m.Specialization, true
		}
	}
	return "", false
}
