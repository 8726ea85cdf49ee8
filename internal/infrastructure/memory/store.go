// Package memory implementa los repositorios sobre mapas en proceso. Sirve para pruebas y
// para levantar la API sin PostgreSQL (STORE_DRIVER=memory).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Alquiler-api/internal/application/ports"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

// table filas de una colección en orden de inserción. Guarda copias: nadie fuera
// del paquete recibe un puntero a la fila almacenada.
type table[E any] struct {
	rows  map[string]*E
	order []string
}

func newTable[E any]() *table[E] {
	return &table[E]{rows: make(map[string]*E)}
}

func (t *table[E]) put(id string, v *E) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	c := *v
	t.rows[id] = &c
}

func (t *table[E]) get(id string) *E {
	v, ok := t.rows[id]
	if !ok {
		return nil
	}
	c := *v
	return &c
}

func (t *table[E]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[E]) del(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}

// desc devuelve copias de las filas que cumplen match, de la más reciente a la más antigua.
func (t *table[E]) desc(match func(*E) bool) []*E {
	out := make([]*E, 0)
	for i := len(t.order) - 1; i >= 0; i-- {
		v := t.rows[t.order[i]]
		if match(v) {
			c := *v
			out = append(out, &c)
		}
	}
	return out
}

func (t *table[E]) first(match func(*E) bool) *E {
	for _, id := range t.order {
		v := t.rows[id]
		if match(v) {
			c := *v
			return &c
		}
	}
	return nil
}

func (t *table[E]) snapshot() *table[E] {
	s := &table[E]{rows: make(map[string]*E, len(t.rows)), order: append([]string(nil), t.order...)}
	for k, v := range t.rows {
		s.rows[k] = v
	}
	return s
}

type tables struct {
	orgs        *table[entity.Organization]
	users       *table[entity.User]
	equipment   *table[entity.Equipment]
	customers   *table[entity.Customer]
	rentals     *table[entity.Rental]
	inspections *table[entity.Inspection]
	maintenance *table[entity.MaintenanceRecord]
}

func (t tables) snapshot() tables {
	return tables{
		orgs:        t.orgs.snapshot(),
		users:       t.users.snapshot(),
		equipment:   t.equipment.snapshot(),
		customers:   t.customers.snapshot(),
		rentals:     t.rentals.snapshot(),
		inspections: t.inspections.snapshot(),
		maintenance: t.maintenance.snapshot(),
	}
}

// Store base de datos en memoria. Todas las operaciones se serializan con mu; una unidad
// de trabajo mantiene mu tomado de principio a fin y restaura la foto previa si falla.
type Store struct {
	mu sync.Mutex
	t  tables
}

func NewStore() *Store {
	return &Store{t: tables{
		orgs:        newTable[entity.Organization](),
		users:       newTable[entity.User](),
		equipment:   newTable[entity.Equipment](),
		customers:   newTable[entity.Customer](),
		rentals:     newTable[entity.Rental](),
		inspections: newTable[entity.Inspection](),
		maintenance: newTable[entity.MaintenanceRecord](),
	}}
}

// base comparte el store entre repositorios. Dentro de una transacción el lock ya está
// tomado por Run y no se vuelve a pedir.
type base struct {
	s    *Store
	inTx bool
}

func (b base) lock() func() {
	if b.inTx {
		return func() {}
	}
	b.s.mu.Lock()
	return b.s.mu.Unlock
}

func (s *Store) Organizations() *OrganizationRepo { return &OrganizationRepo{base{s: s}} }
func (s *Store) Users() *UserRepo                 { return &UserRepo{base{s: s}} }
func (s *Store) Equipment() *EquipmentRepo        { return &EquipmentRepo{base{s: s}} }
func (s *Store) Customers() *CustomerRepo         { return &CustomerRepo{base{s: s}} }
func (s *Store) Rentals() *RentalRepo             { return &RentalRepo{base{s: s}} }
func (s *Store) Inspections() *InspectionRepo     { return &InspectionRepo{base{s: s}} }
func (s *Store) Maintenance() *MaintenanceRepo    { return &MaintenanceRepo{base{s: s}} }

// Run ejecuta fn como unidad de trabajo: todo o nada.
func (s *Store) Run(ctx context.Context, fn func(repos ports.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	prev := s.t.snapshot()
	b := base{s: s, inTx: true}
	err := fn(ports.TxRepos{
		Equipment:   &EquipmentRepo{b},
		Customers:   &CustomerRepo{b},
		Rentals:     &RentalRepo{b},
		Inspections: &InspectionRepo{b},
		Maintenance: &MaintenanceRepo{b},
	})
	if err != nil {
		s.t = prev
		return err
	}
	return nil
}
