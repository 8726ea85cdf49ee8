package fleet

import (
	"time"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
)

// ServiceSchedule umbrales recalculados al completar un mantenimiento.
type ServiceSchedule struct {
	LastServiceDate  time.Time
	LastServiceHours float64
	NextServiceDate  time.Time
	NextServiceHours float64
}

// NextService calcula la programación tras un servicio completado en now.
// Las horas del servicio son hoursAtService, si no TotalHoursUsed, si no 0.
// Intervalos <= 0 se tratan como no definidos y toman el valor por defecto.
func NextService(e *entity.Equipment, hoursAtService *float64, now time.Time) ServiceSchedule {
	var last float64
	switch {
	case hoursAtService != nil:
		last = *hoursAtService
	case e.TotalHoursUsed != nil:
		last = *e.TotalHoursUsed
	}
	days := e.ServiceIntervalDays
	if days <= 0 {
		days = entity.DefaultServiceIntervalDays
	}
	hours := e.ServiceIntervalHours
	if hours <= 0 {
		hours = entity.DefaultServiceIntervalHours
	}
	return ServiceSchedule{
		LastServiceDate:  now,
		LastServiceHours: last,
		NextServiceDate:  now.Add(time.Duration(days) * Day),
		NextServiceHours: last + hours,
	}
}

// Apply copia la programación sobre el equipo.
func (s ServiceSchedule) Apply(e *entity.Equipment) {
	lastDate, lastHours := s.LastServiceDate, s.LastServiceHours
	nextDate, nextHours := s.NextServiceDate, s.NextServiceHours
	e.LastServiceDate = &lastDate
	e.LastServiceHours = &lastHours
	e.NextServiceDate = &nextDate
	e.NextServiceHours = &nextHours
}

// HasOtherOpenRecord indica si existe otro registro pending/in_progress sobre el equipo,
// excluyendo excludeID.
func HasOtherOpenRecord(records []*entity.MaintenanceRecord, equipmentID, excludeID string) bool {
	for _, r := range records {
		if r.ID == excludeID || r.EquipmentID != equipmentID {
			continue
		}
		if r.Open() {
			return true
		}
	}
	return false
}
