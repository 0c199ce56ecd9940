package services

import (
	"strings"
	"testing"
)

func TestChatbotRepondre(t *testing.T) {
	bot := NewChatbot()

	cas := []struct {
		message string
		attendu string
	}{
		{"Bonjour !", "Bonjour"},
		{"comment annuler mon rdv ?", "annuler"},
		{"je veux prendre un rendez-vous", "prendre rendez-vous"},
		{"quel est le tarif ?", "tarifs"},
		{"où sont mes notifications", "cloche"},
		{"blablabla", "pas compris"},
	}
	for _, c := range cas {
		reponse := bot.Repondre(c.message)
		if !strings.Contains(strings.ToLower(reponse), strings.ToLower(c.attendu)) {
			t.Errorf("Repondre(%q) = %q, attendait un fragment %q", c.message, reponse, c.attendu)
		}
	}
}
