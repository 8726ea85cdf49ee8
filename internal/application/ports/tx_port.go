package ports

import (
	"context"

	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma unidad de trabajo.
type TxRepos struct {
	Equipment   repository.EquipmentRepository
	Customers   repository.CustomerRepository
	Rentals     repository.RentalRepository
	Inspections repository.InspectionRepository
	Maintenance repository.MaintenanceRepository
}

// TxRunner ejecuta fn dentro de una transacción. Si fn devuelve error no queda
// ninguna escritura visible. Los cambios de estado de un equipo deben leerlo con
// GetByIDForUpdate para quedar serializados por equipo.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}
