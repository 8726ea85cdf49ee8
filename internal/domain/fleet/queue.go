package fleet

import (
	"time"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Nombres usados cuando la referencia ya no existe.
const (
	UnknownEquipment = "Unknown Equipment"
	UnknownCustomer  = "Unknown Customer"
)

// RecentlyCompletedWindow ventana de la cola de mantenimientos completados.
const RecentlyCompletedWindow = 30 * Day

// Snapshot filas de una organización sobre las que se calculan las colas.
type Snapshot struct {
	Equipment   []*entity.Equipment
	Customers   []*entity.Customer
	Rentals     []*entity.Rental
	Inspections []*entity.Inspection
	Maintenance []*entity.MaintenanceRecord
}

// Names resuelve nombres de equipos y clientes por id.
type Names struct {
	equipment map[string]string
	customers map[string]string
}

func NewNames(equipment []*entity.Equipment, customers []*entity.Customer) Names {
	n := Names{
		equipment: make(map[string]string, len(equipment)),
		customers: make(map[string]string, len(customers)),
	}
	for _, e := range equipment {
		n.equipment[e.ID] = e.Name
	}
	for _, c := range customers {
		n.customers[c.ID] = c.Name
	}
	return n
}

func (n Names) Equipment(id string) string {
	if name, ok := n.equipment[id]; ok {
		return name
	}
	return UnknownEquipment
}

func (n Names) Customer(id string) string {
	if name, ok := n.customers[id]; ok {
		return name
	}
	return UnknownCustomer
}

// ── Cola de inspecciones ──────────────────────────────────────────────────────

type RentalInspectionDue struct {
	RentalID      string
	EquipmentID   string
	EquipmentName string
	CustomerName  string
	Date          time.Time // StartDate para pre_rental, ReturnDate para post_rental
}

type RoutineOverdue struct {
	EquipmentID     string
	EquipmentName   string
	NextServiceDate time.Time
	DaysOverdue     int
}

type FlaggedInspection struct {
	InspectionID     string
	EquipmentID      string
	EquipmentName    string
	MaintenanceNotes string
	InspectedAt      time.Time
}

type InspectionQueue struct {
	PreRentalDue          []RentalInspectionDue
	PostRentalDue         []RentalInspectionDue
	RoutineOverdue        []RoutineOverdue
	FlaggedFromInspection []FlaggedInspection
}

// DayBounds inicio (00:00:00.000) y fin (23:59:59.999) del día de now en su zona horaria.
func DayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}

// BuildInspectionQueue clasifica alquileres, equipos e inspecciones pendientes de atención.
// postRentalDue no tiene ventana de tiempo: todo alquiler devuelto sin inspección post_rental.
func BuildInspectionQueue(s Snapshot, now time.Time) InspectionQueue {
	names := NewNames(s.Equipment, s.Customers)
	q := InspectionQueue{
		PreRentalDue:          []RentalInspectionDue{},
		PostRentalDue:         []RentalInspectionDue{},
		RoutineOverdue:        []RoutineOverdue{},
		FlaggedFromInspection: []FlaggedInspection{},
	}

	preDone := make(map[string]bool)
	postDone := make(map[string]bool)
	for _, i := range s.Inspections {
		if i.RentalID == nil {
			continue
		}
		switch i.Type {
		case entity.InspectionPreRental:
			preDone[*i.RentalID] = true
		case entity.InspectionPostRental:
			postDone[*i.RentalID] = true
		}
	}

	todayStart, todayEnd := DayBounds(now)
	for _, r := range s.Rentals {
		if !r.StartDate.Before(todayStart) && !r.StartDate.After(todayEnd) && !preDone[r.ID] {
			q.PreRentalDue = append(q.PreRentalDue, RentalInspectionDue{
				RentalID:      r.ID,
				EquipmentID:   r.EquipmentID,
				EquipmentName: names.Equipment(r.EquipmentID),
				CustomerName:  names.Customer(r.CustomerID),
				Date:          r.StartDate,
			})
		}
		if r.ReturnDate != nil && !postDone[r.ID] {
			q.PostRentalDue = append(q.PostRentalDue, RentalInspectionDue{
				RentalID:      r.ID,
				EquipmentID:   r.EquipmentID,
				EquipmentName: names.Equipment(r.EquipmentID),
				CustomerName:  names.Customer(r.CustomerID),
				Date:          *r.ReturnDate,
			})
		}
	}

	for _, e := range s.Equipment {
		if e.Status == entity.EquipmentRented || e.NextServiceDate == nil || !e.NextServiceDate.Before(now) {
			continue
		}
		q.RoutineOverdue = append(q.RoutineOverdue, RoutineOverdue{
			EquipmentID:     e.ID,
			EquipmentName:   e.Name,
			NextServiceDate: *e.NextServiceDate,
			DaysOverdue:     int(now.Sub(*e.NextServiceDate) / Day),
		})
	}

	pendingByInspection := make(map[string]bool)
	for _, m := range s.Maintenance {
		if m.InspectionID != nil && m.Status == entity.MaintenancePending {
			pendingByInspection[*m.InspectionID] = true
		}
	}
	for _, i := range s.Inspections {
		if !i.MaintenanceRequired || pendingByInspection[i.ID] {
			continue
		}
		q.FlaggedFromInspection = append(q.FlaggedFromInspection, FlaggedInspection{
			InspectionID:     i.ID,
			EquipmentID:      i.EquipmentID,
			EquipmentName:    names.Equipment(i.EquipmentID),
			MaintenanceNotes: i.MaintenanceNotes,
			InspectedAt:      i.InspectedAt,
		})
	}
	return q
}

// ── Cola de mantenimiento ─────────────────────────────────────────────────────

type WorkOrderItem struct {
	RecordID      string
	EquipmentID   string
	EquipmentName string
	WorkOrder     string
	InspectionID  *string
	AssignedTo    string
	Cost          *decimal.Decimal
	CreatedAt     time.Time
	CompletedAt   *time.Time
}

type PreventiveDue struct {
	EquipmentID      string
	EquipmentName    string
	Source           entity.MaintenanceSource
	NextServiceDate  *time.Time
	NextServiceHours *float64
	CurrentHours     *float64
}

type MaintenanceQueue struct {
	FlaggedFromInspections []WorkOrderItem
	PreventiveDue          []PreventiveDue
	InProgress             []WorkOrderItem
	RecentlyCompleted      []WorkOrderItem
}

func workOrderItem(r *entity.MaintenanceRecord, names Names) WorkOrderItem {
	return WorkOrderItem{
		RecordID:      r.ID,
		EquipmentID:   r.EquipmentID,
		EquipmentName: names.Equipment(r.EquipmentID),
		WorkOrder:     r.WorkOrder,
		InspectionID:  r.InspectionID,
		AssignedTo:    r.AssignedTo,
		Cost:          r.Cost,
		CreatedAt:     r.CreatedAt,
		CompletedAt:   r.CompletedAt,
	}
}

// BuildMaintenanceQueue clasifica órdenes de trabajo y equipos con servicio preventivo vencido.
// Un equipo con un registro pending/in_progress no aparece en PreventiveDue.
func BuildMaintenanceQueue(s Snapshot, now time.Time) MaintenanceQueue {
	names := NewNames(s.Equipment, nil)
	q := MaintenanceQueue{
		FlaggedFromInspections: []WorkOrderItem{},
		PreventiveDue:          []PreventiveDue{},
		InProgress:             []WorkOrderItem{},
		RecentlyCompleted:      []WorkOrderItem{},
	}
	covered := make(map[string]bool)
	since := now.Add(-RecentlyCompletedWindow)
	for _, r := range s.Maintenance {
		if r.Open() {
			covered[r.EquipmentID] = true
		}
		switch r.Status {
		case entity.MaintenancePending:
			if r.Source == entity.SourceInspectionFlagged {
				q.FlaggedFromInspections = append(q.FlaggedFromInspections, workOrderItem(r, names))
			}
		case entity.MaintenanceInProgress:
			q.InProgress = append(q.InProgress, workOrderItem(r, names))
		case entity.MaintenanceCompleted:
			if r.CompletedAt != nil && !r.CompletedAt.Before(since) {
				q.RecentlyCompleted = append(q.RecentlyCompleted, workOrderItem(r, names))
			}
		}
	}
	for _, e := range s.Equipment {
		if covered[e.ID] {
			continue
		}
		timeDue := IsTimeOverdue(e, now)
		if !timeDue && !IsHoursOverdue(e) {
			continue
		}
		source := entity.SourcePreventiveHours
		if timeDue {
			source = entity.SourcePreventiveTime
		}
		q.PreventiveDue = append(q.PreventiveDue, PreventiveDue{
			EquipmentID:      e.ID,
			EquipmentName:    e.Name,
			Source:           source,
			NextServiceDate:  e.NextServiceDate,
			NextServiceHours: e.NextServiceHours,
			CurrentHours:     e.TotalHoursUsed,
		})
	}
	return q
}
