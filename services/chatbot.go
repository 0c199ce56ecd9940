package services

import "strings"

// Chatbot is the keyword matcher behind the help widget. Stateless: the
// first word list hit wins, in declaration order.
type Chatbot struct{}

func NewChatbot() *Chatbot { return &Chatbot{} }

type regleChatbot struct {
	motsCles []string
	reponse  string
}

var reglesChatbot = []regleChatbot{
	{
		motsCles: []string{"bonjour", "salut", "bonsoir", "hello"},
		reponse:  "Bonjour ! Comment puis-je vous aider ?",
	},
	{
		motsCles: []string{"annuler", "annulation"},
		reponse:  "Pour annuler un rendez-vous, ouvrez 'Mes rendez-vous' et cliquez sur Annuler. Le professionnel sera notifié automatiquement.",
	},
	{
		motsCles: []string{"rendez-vous", "rendezvous", "rdv", "réserver", "reserver", "prendre"},
		reponse:  "Pour prendre rendez-vous, choisissez un professionnel, sélectionnez un créneau disponible et indiquez le motif de votre visite.",
	},
	{
		motsCles: []string{"prix", "tarif", "coût", "cout", "payer"},
		reponse:  "Les tarifs dépendent de la catégorie du professionnel. Vous les retrouvez sur chaque fiche professionnel.",
	},
	{
		motsCles: []string{"notification"},
		reponse:  "Vos notifications sont accessibles via l'icône cloche. Elles vous informent de chaque changement sur vos rendez-vous.",
	},
}

const reponseParDefaut = "Je n'ai pas compris votre demande. Essayez avec des mots comme 'rendez-vous', 'annuler' ou 'tarif'."

func (c *Chatbot) Repondre(message string) string {
	m := strings.ToLower(message)
	for _, regle := range reglesChatbot {
		for _, mot := range regle.motsCles {
			if strings.Contains(m, mot) {
				return regle.reponse
			}
		}
	}
	return reponseParDefaut
}
