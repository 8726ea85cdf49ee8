package ports

import "github.com/jhoicas/Alquiler-api/internal/domain/entity"

// WorkOrderDocument datos necesarios para imprimir una orden de trabajo.
// Inspection es nil cuando el registro no proviene de una inspección.
type WorkOrderDocument struct {
	Organization *entity.Organization
	Record       *entity.MaintenanceRecord
	Equipment    *entity.Equipment
	Inspection   *entity.Inspection
}

// WorkOrderPDFGenerator genera la representación PDF de una orden de trabajo.
type WorkOrderPDFGenerator interface {
	Generate(doc WorkOrderDocument) ([]byte, error)
}
