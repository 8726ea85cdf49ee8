package fleet

import (
	"time"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EquipmentStats conteos por estado y valor de la flota.
type EquipmentStats struct {
	Total           int
	Available       int
	Rented          int
	Maintenance     int
	TotalAssetValue decimal.Decimal
	UtilizationRate float64 // rented / total * 100
}

func ComputeEquipmentStats(equipment []*entity.Equipment) EquipmentStats {
	s := EquipmentStats{Total: len(equipment), TotalAssetValue: decimal.Zero}
	for _, e := range equipment {
		switch e.Status {
		case entity.EquipmentAvailable:
			s.Available++
		case entity.EquipmentRented:
			s.Rented++
		case entity.EquipmentMaintenance:
			s.Maintenance++
		}
		s.TotalAssetValue = s.TotalAssetValue.Add(e.AssetValue)
	}
	if s.Total > 0 {
		s.UtilizationRate = float64(s.Rented) / float64(s.Total) * 100
	}
	return s
}

// RentalStats conteos por estado derivado e ingreso de alquileres devueltos.
type RentalStats struct {
	Total        int
	Active       int
	Returned     int
	Overdue      int
	TotalRevenue decimal.Decimal
}

func ComputeRentalStats(rentals []*entity.Rental, now time.Time) RentalStats {
	s := RentalStats{Total: len(rentals), TotalRevenue: decimal.Zero}
	for _, r := range rentals {
		switch RentalStatus(r, now) {
		case entity.RentalActive:
			s.Active++
		case entity.RentalReturned:
			s.Returned++
		case entity.RentalOverdue:
			s.Overdue++
		}
		s.TotalRevenue = s.TotalRevenue.Add(RentalRevenue(r))
	}
	return s
}

// InspectionStats resumen de inspecciones.
type InspectionStats struct {
	Total                 int
	PreRental             int
	PostRental            int
	Routine               int
	PassedCount           int
	NeedsMaintenanceCount int
	DamageFoundCount      int
	TotalDamageCost       decimal.Decimal
}

func ComputeInspectionStats(inspections []*entity.Inspection) InspectionStats {
	s := InspectionStats{Total: len(inspections), TotalDamageCost: decimal.Zero}
	for _, i := range inspections {
		switch i.Type {
		case entity.InspectionPreRental:
			s.PreRental++
		case entity.InspectionPostRental:
			s.PostRental++
		case entity.InspectionRoutine:
			s.Routine++
		}
		if i.OverallCondition.Passed() {
			s.PassedCount++
		}
		if i.MaintenanceRequired {
			s.NeedsMaintenanceCount++
		}
		if i.DamageFound {
			s.DamageFoundCount++
		}
		if i.DamageCost != nil {
			s.TotalDamageCost = s.TotalDamageCost.Add(*i.DamageCost)
		}
	}
	return s
}

// MaintenanceStats resumen de órdenes de trabajo. TotalCost suma el costo de todos los
// registros; AvgCompletionTime es el promedio en horas de (completedAt - createdAt).
type MaintenanceStats struct {
	Total             int
	Pending           int
	InProgress        int
	Completed         int
	TotalCost         decimal.Decimal
	AvgCompletionTime float64
}

func ComputeMaintenanceStats(records []*entity.MaintenanceRecord) MaintenanceStats {
	s := MaintenanceStats{Total: len(records), TotalCost: decimal.Zero}
	var completedSpan time.Duration
	var completedCount int
	for _, r := range records {
		switch r.Status {
		case entity.MaintenancePending:
			s.Pending++
		case entity.MaintenanceInProgress:
			s.InProgress++
		case entity.MaintenanceCompleted:
			s.Completed++
			if r.CompletedAt != nil {
				completedSpan += r.CompletedAt.Sub(r.CreatedAt)
				completedCount++
			}
		}
		if r.Cost != nil {
			s.TotalCost = s.TotalCost.Add(*r.Cost)
		}
	}
	if completedCount > 0 {
		s.AvgCompletionTime = completedSpan.Hours() / float64(completedCount)
	}
	return s
}
