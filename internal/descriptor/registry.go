package descriptor

import "github.com/jakoblorz/go-factory/internal/models"

// Registry holds the one Project instance per name for a whole run.
type Registry struct {
	byName map[string]*models.Project
	order  []*models.Project
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*models.Project)}
}

// Lookup returns the project registered under name.
func (r *Registry) Lookup(name string) (*models.Project, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Register stores p unless its name is already taken; the instance that ends
// up registered is returned.
func (r *Registry) Register(p *models.Project) *models.Project {
	if existing, ok := r.byName[p.Name]; ok {
		return existing
	}
	r.byName[p.Name] = p
	r.order = append(r.order, p)
	return p
}

// Projects returns every registered project in registration order.
func (r *Registry) Projects() []*models.Project {
	return append([]*models.Project(nil), r.order...)
}

// Len returns the number of registered projects.
func (r *Registry) Len() int {
	return len(r.order)
}
