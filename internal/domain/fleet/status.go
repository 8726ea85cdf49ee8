// Package fleet reúne los cálculos puros del ciclo de vida de la flota: estados derivados,
// programación de servicio, colas y estadísticas. Ninguna función lee el reloj; el instante
// actual siempre llega como parámetro.
package fleet

import (
	"math"
	"time"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Day duración de un día de calendario en los cálculos de servicio y facturación.
const Day = 24 * time.Hour

// IsTimeOverdue: NextServiceDate definido y <= now.
func IsTimeOverdue(e *entity.Equipment, now time.Time) bool {
	return e.NextServiceDate != nil && !e.NextServiceDate.After(now)
}

// IsHoursOverdue: NextServiceHours y TotalHoursUsed definidos y TotalHoursUsed >= NextServiceHours.
func IsHoursOverdue(e *entity.Equipment) bool {
	if e.NextServiceHours == nil || e.TotalHoursUsed == nil {
		return false
	}
	return *e.TotalHoursUsed >= *e.NextServiceHours
}

// MaintenanceDue equipo con servicio vencido y el motivo.
type MaintenanceDue struct {
	Equipment    *entity.Equipment
	TimeOverdue  bool
	HoursOverdue bool
}

// MaintenanceDueList filtra equipos no alquilados con servicio vencido por tiempo u horas.
func MaintenanceDueList(equipment []*entity.Equipment, now time.Time) []MaintenanceDue {
	out := make([]MaintenanceDue, 0)
	for _, e := range equipment {
		if e.Status == entity.EquipmentRented {
			continue
		}
		timeDue := IsTimeOverdue(e, now)
		hoursDue := IsHoursOverdue(e)
		if timeDue || hoursDue {
			out = append(out, MaintenanceDue{Equipment: e, TimeOverdue: timeDue, HoursOverdue: hoursDue})
		}
	}
	return out
}

// RentalStatus deriva el estado del alquiler: returned si tiene ReturnDate,
// overdue si now > EndDate, active en otro caso.
func RentalStatus(r *entity.Rental, now time.Time) entity.RentalStatus {
	if r.ReturnDate != nil {
		return entity.RentalReturned
	}
	if now.After(r.EndDate) {
		return entity.RentalOverdue
	}
	return entity.RentalActive
}

// BillableDays días facturables de un alquiler devuelto: max(1, ceil((return - start) / día)).
// Devuelve 0 si el alquiler no ha sido devuelto.
func BillableDays(r *entity.Rental) int64 {
	if r.ReturnDate == nil {
		return 0
	}
	days := int64(math.Ceil(float64(r.ReturnDate.Sub(r.StartDate)) / float64(Day)))
	if days < 1 {
		days = 1
	}
	return days
}

// RentalRevenue ingreso causado por un alquiler devuelto (0 si sigue abierto).
func RentalRevenue(r *entity.Rental) decimal.Decimal {
	days := BillableDays(r)
	if days == 0 {
		return decimal.Zero
	}
	return r.DailyRate.Mul(decimal.NewFromInt(days))
}
