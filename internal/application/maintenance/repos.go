// Package maintenance implementa inspecciones y órdenes de trabajo de mantenimiento,
// incluida la máquina de estados pending -> in_progress -> completed y su efecto
// sobre el estado y la programación de servicio del equipo.
package maintenance

import "github.com/jhoicas/Alquiler-api/internal/domain/repository"

const (
	equipmentEntity   = "equipo"
	rentalEntity      = "alquiler"
	inspectionEntity  = "inspección"
	maintenanceEntity = "mantenimiento"
)

// Repos repositorios usados fuera de una unidad de trabajo.
type Repos struct {
	Equipment   repository.EquipmentRepository
	Rentals     repository.RentalRepository
	Inspections repository.InspectionRepository
	Maintenance repository.MaintenanceRepository
	Users       repository.UserRepository
}
