// Package memory implements the repository contracts against in-process
// slices. It backs the test suite, where a running mongod is not assumed.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rdvpro/booking-api/models"
	"github.com/rdvpro/booking-api/repository"
)

type Store struct {
	mu             sync.Mutex
	utilisateurs   []models.Utilisateur
	categories     []models.Categorie
	disponibilites []models.Disponibilite
	rendezvous     []models.RendezVous
	notifications  []models.Notification

	// NotificationErr, when set, makes notification inserts fail. Used to
	// exercise the best-effort emission path.
	NotificationErr error
}

func NewStore() *Store { return &Store{} }

func (s *Store) Utilisateurs() repository.UtilisateurRepository     { return &utilisateurRepo{s} }
func (s *Store) Categories() repository.CategorieRepository         { return &categorieRepo{s} }
func (s *Store) Disponibilites() repository.DisponibiliteRepository { return &disponibiliteRepo{s} }
func (s *Store) RendezVous() repository.RendezVousRepository        { return &rendezVousRepo{s} }
func (s *Store) Notifications() repository.NotificationRepository   { return &notificationRepo{s} }

func memeParti(p repository.Partie, utilisateurID, professionnelID *primitive.ObjectID) bool {
	if p.ProfessionnelID != nil {
		return professionnelID != nil && *professionnelID == *p.ProfessionnelID
	}
	return utilisateurID != nil && *utilisateurID == *p.UtilisateurID
}

type utilisateurRepo struct{ s *Store }

func (r *utilisateurRepo) Create(_ context.Context, u *models.Utilisateur) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.s.utilisateurs = append(r.s.utilisateurs, *u)
	return nil
}

func (r *utilisateurRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Utilisateur, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.utilisateurs {
		if r.s.utilisateurs[i].ID == id {
			u := r.s.utilisateurs[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *utilisateurRepo) FindByEmail(_ context.Context, email string) (*models.Utilisateur, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.utilisateurs {
		if r.s.utilisateurs[i].Email == email {
			u := r.s.utilisateurs[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *utilisateurRepo) FindByRole(_ context.Context, role string) ([]models.Utilisateur, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Utilisateur
	for _, u := range r.s.utilisateurs {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *utilisateurRepo) FindProfessionnels(_ context.Context, categorieID *primitive.ObjectID, nom string) ([]models.Utilisateur, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Utilisateur
	for _, u := range r.s.utilisateurs {
		if u.Role != models.RoleProf || u.Statut != models.StatutActif {
			continue
		}
		if categorieID != nil && (u.CategorieID == nil || *u.CategorieID != *categorieID) {
			continue
		}
		if nom != "" {
			needle := strings.ToLower(nom)
			if !strings.Contains(strings.ToLower(u.Nom), needle) &&
				!strings.Contains(strings.ToLower(u.Prenom), needle) {
				continue
			}
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nom < out[j].Nom })
	return out, nil
}

func (r *utilisateurRepo) UpdateProfil(_ context.Context, id primitive.ObjectID, upd repository.ProfilUpdate) (*models.Utilisateur, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.utilisateurs {
		if r.s.utilisateurs[i].ID != id {
			continue
		}
		u := &r.s.utilisateurs[i]
		if upd.CategorieID != nil {
			u.CategorieID = upd.CategorieID
		}
		if upd.Specialites != nil {
			u.Specialites = upd.Specialites
		}
		if upd.TarifHoraire != nil {
			u.TarifHoraire = *upd.TarifHoraire
		}
		if upd.Description != nil {
			u.Description = *upd.Description
		}
		if upd.Photo != nil {
			u.Photo = *upd.Photo
		}
		if upd.ProfilComplet != nil {
			u.ProfilComplet = *upd.ProfilComplet
		}
		u.UpdatedAt = time.Now()
		out := *u
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *utilisateurRepo) SetToken(_ context.Context, id primitive.ObjectID, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.utilisateurs {
		if r.s.utilisateurs[i].ID == id {
			r.s.utilisateurs[i].Token = token
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *utilisateurRepo) SetStatut(_ context.Context, ids []primitive.ObjectID, statut string, unsetMotDePasse, unsetToken bool) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched int64
	for i := range r.s.utilisateurs {
		for _, id := range ids {
			if r.s.utilisateurs[i].ID != id {
				continue
			}
			r.s.utilisateurs[i].Statut = statut
			if unsetMotDePasse {
				r.s.utilisateurs[i].MotDePasse = ""
			}
			if unsetToken {
				r.s.utilisateurs[i].Token = ""
			}
			matched++
		}
	}
	return matched, nil
}

func (r *utilisateurRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.utilisateurs {
		if r.s.utilisateurs[i].ID == id {
			r.s.utilisateurs = append(r.s.utilisateurs[:i], r.s.utilisateurs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *utilisateurRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[string]int64)
	for _, u := range r.s.utilisateurs {
		counts[u.Role]++
	}
	return counts, nil
}

type categorieRepo struct{ s *Store }

func (r *categorieRepo) Create(_ context.Context, c *models.Categorie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now()
	if c.Specialites == nil {
		c.Specialites = []string{}
	}
	r.s.categories = append(r.s.categories, *c)
	return nil
}

func (r *categorieRepo) FindAll(_ context.Context) ([]models.Categorie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := append([]models.Categorie(nil), r.s.categories...)
	sort.Slice(out, func(i, j int) bool { return out[i].Nom < out[j].Nom })
	return out, nil
}

func (r *categorieRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Categorie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		if r.s.categories[i].ID == id {
			c := r.s.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *categorieRepo) FindByNom(_ context.Context, nom string) (*models.Categorie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		if r.s.categories[i].Nom == nom {
			c := r.s.categories[i]
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *categorieRepo) Update(_ context.Context, id primitive.ObjectID, c *models.Categorie) (*models.Categorie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		if r.s.categories[i].ID != id {
			continue
		}
		r.s.categories[i].Nom = c.Nom
		r.s.categories[i].Description = c.Description
		r.s.categories[i].Prix = c.Prix
		r.s.categories[i].Specialites = c.Specialites
		out := r.s.categories[i]
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *categorieRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.categories {
		if r.s.categories[i].ID == id {
			r.s.categories = append(r.s.categories[:i], r.s.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type disponibiliteRepo struct{ s *Store }

func (r *disponibiliteRepo) Create(_ context.Context, d *models.Disponibilite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now()
	r.s.disponibilites = append(r.s.disponibilites, *d)
	return nil
}

func (r *disponibiliteRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Disponibilite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.disponibilites {
		if r.s.disponibilites[i].ID == id {
			d := r.s.disponibilites[i]
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *disponibiliteRepo) Find(_ context.Context, f repository.DisponibiliteFilter) ([]models.Disponibilite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Disponibilite
	for _, d := range r.s.disponibilites {
		if d.ProfessionnelID != f.ProfessionnelID {
			continue
		}
		switch {
		case f.Tout:
		case f.Jour != nil:
			debut := time.Date(f.Jour.Year(), f.Jour.Month(), f.Jour.Day(), 0, 0, 0, 0, f.Jour.Location())
			fin := debut.Add(24*time.Hour - time.Millisecond)
			if d.Debut.Before(debut) || d.Debut.After(fin) {
				continue
			}
		default:
			if d.Debut.Before(time.Now()) {
				continue
			}
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Debut.Before(out[j].Debut) })
	return out, nil
}

func (r *disponibiliteRepo) Overlaps(_ context.Context, professionnelID primitive.ObjectID, debut, fin time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.disponibilites {
		if d.ProfessionnelID != professionnelID {
			continue
		}
		if d.Debut.Before(fin) && d.Fin.After(debut) {
			return true, nil
		}
		if !d.Debut.After(debut) && !d.Fin.Before(debut) {
			return true, nil
		}
	}
	return false, nil
}

func (r *disponibiliteRepo) FindCovering(_ context.Context, professionnelID primitive.ObjectID, ts time.Time) (*models.Disponibilite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.disponibilites {
		d := r.s.disponibilites[i]
		if d.ProfessionnelID != professionnelID {
			continue
		}
		if !d.Debut.After(ts) && !d.Fin.Before(ts) {
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *disponibiliteRepo) SetStatut(_ context.Context, id primitive.ObjectID, statut string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.disponibilites {
		if r.s.disponibilites[i].ID == id {
			r.s.disponibilites[i].Statut = statut
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *disponibiliteRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.disponibilites {
		if r.s.disponibilites[i].ID == id {
			r.s.disponibilites = append(r.s.disponibilites[:i], r.s.disponibilites[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type rendezVousRepo struct{ s *Store }

func (r *rendezVousRepo) Create(_ context.Context, rdv *models.RendezVous) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rdv.ID = primitive.NewObjectID()
	rdv.CreatedAt = time.Now()
	rdv.UpdatedAt = rdv.CreatedAt
	r.s.rendezvous = append(r.s.rendezvous, *rdv)
	return nil
}

func (r *rendezVousRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.RendezVous, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.rendezvous {
		if r.s.rendezvous[i].ID == id {
			rdv := r.s.rendezvous[i]
			return &rdv, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *rendezVousRepo) ExistsAt(_ context.Context, professionnelID primitive.ObjectID, ts time.Time, statuts []string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rdv := range r.s.rendezvous {
		if rdv.ProfessionnelID != professionnelID || !rdv.Date.Equal(ts) {
			continue
		}
		for _, st := range statuts {
			if rdv.Statut == st {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *rendezVousRepo) FindActifs(_ context.Context, professionnelID primitive.ObjectID) ([]models.RendezVous, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.RendezVous
	for _, rdv := range r.s.rendezvous {
		if rdv.ProfessionnelID != professionnelID {
			continue
		}
		if rdv.Statut == models.RdvPending || rdv.Statut == models.RdvConfirme {
			out = append(out, rdv)
		}
	}
	return out, nil
}

func (r *rendezVousRepo) FindByPartie(_ context.Context, p repository.Partie) ([]models.RendezVous, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.RendezVous
	for _, rdv := range r.s.rendezvous {
		if !memeParti(p, &rdv.UtilisateurID, &rdv.ProfessionnelID) {
			continue
		}
		if p.ProfessionnelID != nil && rdv.SupprimeProfessionnel {
			continue
		}
		if p.UtilisateurID != nil && rdv.SupprimeUtilisateur {
			continue
		}
		out = append(out, rdv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *rendezVousRepo) Transition(_ context.Context, id primitive.ObjectID, owner repository.Partie, from []string, to string) (*models.RendezVous, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.rendezvous {
		rdv := &r.s.rendezvous[i]
		if rdv.ID != id || !memeParti(owner, &rdv.UtilisateurID, &rdv.ProfessionnelID) {
			continue
		}
		for _, st := range from {
			if rdv.Statut == st {
				rdv.Statut = to
				rdv.UpdatedAt = time.Now()
				out := *rdv
				return &out, nil
			}
		}
		return nil, repository.ErrNotFound
	}
	return nil, repository.ErrNotFound
}

func (r *rendezVousRepo) MarquerSupprime(_ context.Context, id primitive.ObjectID, owner repository.Partie) (*models.RendezVous, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.rendezvous {
		rdv := &r.s.rendezvous[i]
		if rdv.ID != id || !memeParti(owner, &rdv.UtilisateurID, &rdv.ProfessionnelID) {
			continue
		}
		if owner.ProfessionnelID != nil {
			rdv.SupprimeProfessionnel = true
		} else {
			rdv.SupprimeUtilisateur = true
		}
		rdv.UpdatedAt = time.Now()
		out := *rdv
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *rendezVousRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.rendezvous {
		if r.s.rendezvous[i].ID == id {
			r.s.rendezvous = append(r.s.rendezvous[:i], r.s.rendezvous[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *rendezVousRepo) CountByStatut(_ context.Context) (map[string]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[string]int64)
	for _, rdv := range r.s.rendezvous {
		counts[rdv.Statut]++
	}
	return counts, nil
}

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.NotificationErr != nil {
		return r.s.NotificationErr
	}
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	r.s.notifications = append(r.s.notifications, *n)
	return nil
}

func (r *notificationRepo) FindByDestinataire(_ context.Context, dest repository.Partie) ([]models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Notification
	for _, n := range r.s.notifications {
		if memeParti(dest, n.UtilisateurID, n.ProfessionnelID) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *notificationRepo) MarquerLue(_ context.Context, id primitive.ObjectID, dest repository.Partie) (*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		n := &r.s.notifications[i]
		if n.ID != id || !memeParti(dest, n.UtilisateurID, n.ProfessionnelID) {
			continue
		}
		n.Lue = true
		out := *n
		return &out, nil
	}
	return nil, repository.ErrNotFound
}

func (r *notificationRepo) MarquerToutesLues(_ context.Context, dest repository.Partie) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var modified int64
	for i := range r.s.notifications {
		n := &r.s.notifications[i]
		if !n.Lue && memeParti(dest, n.UtilisateurID, n.ProfessionnelID) {
			n.Lue = true
			modified++
		}
	}
	return modified, nil
}

func (r *notificationRepo) Delete(_ context.Context, id primitive.ObjectID, dest repository.Partie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.notifications {
		n := r.s.notifications[i]
		if n.ID == id && memeParti(dest, n.UtilisateurID, n.ProfessionnelID) {
			r.s.notifications = append(r.s.notifications[:i], r.s.notifications[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
