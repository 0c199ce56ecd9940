package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

type AuthService struct {
	utilisateurs repository.UtilisateurRepository
	secret       []byte
}

func NewAuthService(utilisateurs repository.UtilisateurRepository, secret string) *AuthService {
	return &AuthService{utilisateurs: utilisateurs, secret: []byte(secret)}
}

// Register creates an ACTIF account; the email must be globally unique.
func (s *AuthService) Register(ctx context.Context, in models.RegisterInput) (*models.Utilisateur, error) {
	if _, err := s.utilisateurs.FindByEmail(ctx, in.Email); err == nil {
		return nil, conflit("Un compte existe déjà avec cet email")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.MotDePasse), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.Utilisateur{
		Nom:        in.Nom,
		Prenom:     in.Prenom,
		Email:      in.Email,
		MotDePasse: string(hash),
		Role:       in.Role,
		Statut:     models.StatutActif,
	}
	if err := s.utilisateurs.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and returns a signed bearer token. An
// INACTIF or SUSPENDU account is refused even with a valid password.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.Utilisateur, string, error) {
	u, err := s.utilisateurs.FindByEmail(ctx, in.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", &Erreur{Kind: ErrIdentifiants, Message: "Email ou mot de passe invalide"}
	}
	if err != nil {
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.MotDePasse), []byte(in.MotDePasse)); err != nil {
		return nil, "", &Erreur{Kind: ErrIdentifiants, Message: "Email ou mot de passe invalide"}
	}
	if u.Statut != models.StatutActif {
		return nil, "", &Erreur{Kind: ErrCompte, Message: "Compte désactivé ou suspendu"}
	}

	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["id"] = u.ID.Hex()
	claims["role"] = u.Role
	claims["exp"] = time.Now().Add(72 * time.Hour).Unix()

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, "", err
	}
	if err := s.utilisateurs.SetToken(ctx, u.ID, signed); err != nil {
		return nil, "", err
	}
	return u, signed, nil
}

// Caller resolves an authenticated id back to an account, rejecting
// deactivated ones. Used by the auth middleware on every request.
func (s *AuthService) Caller(ctx context.Context, idHex string) (*models.Utilisateur, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, &Erreur{Kind: ErrIdentifiants, Message: "Token invalide"}
	}
	u, err := s.utilisateurs.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &Erreur{Kind: ErrIdentifiants, Message: "Token invalide"}
	}
	if err != nil {
		return nil, err
	}
	if u.Statut != models.StatutActif {
		return nil, &Erreur{Kind: ErrCompte, Message: "Compte désactivé ou suspendu"}
	}
	return u, nil
}

// Secret exposes the signing key to the middleware's token parser.
func (s *AuthService) Secret() []byte { return s.secret }
