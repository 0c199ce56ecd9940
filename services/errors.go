package services

import "errors"

// Sentinel kinds of the error taxonomy. The HTTP layer conflates some of
// them on the wire (ErrIntrouvable covers not-found, not-yours and
// wrong-owner alike) but internally the kind always names the real cause.
var (
	ErrValidation   = errors.New("entrée invalide")
	ErrIntrouvable  = errors.New("introuvable")
	ErrConflit      = errors.New("conflit")
	ErrEtat         = errors.New("état invalide")
	ErrIdentifiants = errors.New("identifiants invalides")
	ErrCompte       = errors.New("compte désactivé")
)

// Erreur pairs a sentinel kind with a message safe to put on the wire.
type Erreur struct {
	Kind    error
	Message string
}

func (e *Erreur) Error() string { return e.Message }
func (e *Erreur) Unwrap() error { return e.Kind }

func invalide(msg string) error    { return &Erreur{Kind: ErrValidation, Message: msg} }
func introuvable(msg string) error { return &Erreur{Kind: ErrIntrouvable, Message: msg} }
func conflit(msg string) error     { return &Erreur{Kind: ErrConflit, Message: msg} }
func etat(msg string) error        { return &Erreur{Kind: ErrEtat, Message: msg} }
