package dto

import (
	"time"

	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/fleet"
)

// Conversión entidad -> respuesta, compartida por los casos de uso.

func FromOrganization(o *entity.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:         o.ID,
		ExternalID: o.ExternalID,
		Name:       o.Name,
		Slug:       o.Slug,
		ImageURL:   o.ImageURL,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func FromUser(u *entity.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		Name:       u.Name,
		ImageURL:   u.ImageURL,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func FromEquipment(e *entity.Equipment) *EquipmentResponse {
	return &EquipmentResponse{
		ID:                   e.ID,
		OrganizationID:       e.OrganizationID,
		Name:                 e.Name,
		Category:             string(e.Category),
		Status:               string(e.Status),
		AssetValue:           e.AssetValue,
		TotalHoursUsed:       e.TotalHoursUsed,
		LastServiceDate:      e.LastServiceDate,
		LastServiceHours:     e.LastServiceHours,
		NextServiceDate:      e.NextServiceDate,
		NextServiceHours:     e.NextServiceHours,
		ServiceIntervalDays:  e.ServiceIntervalDays,
		ServiceIntervalHours: e.ServiceIntervalHours,
		Notes:                e.Notes,
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func FromCustomer(c *entity.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// FromRental incluye el estado derivado en now.
func FromRental(r *entity.Rental, now time.Time) *RentalResponse {
	return &RentalResponse{
		ID:             r.ID,
		OrganizationID: r.OrganizationID,
		EquipmentID:    r.EquipmentID,
		CustomerID:     r.CustomerID,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		ReturnDate:     r.ReturnDate,
		DailyRate:      r.DailyRate,
		Status:         string(fleet.RentalStatus(r, now)),
		Notes:          r.Notes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func FromInspection(i *entity.Inspection) *InspectionResponse {
	checklist := make([]ChecklistResultDTO, 0, len(i.ChecklistResults))
	for _, c := range i.ChecklistResults {
		checklist = append(checklist, ChecklistResultDTO{Item: c.Item, Status: string(c.Status), Notes: c.Notes})
	}
	photos := i.Photos
	if photos == nil {
		photos = []string{}
	}
	return &InspectionResponse{
		ID:                  i.ID,
		OrganizationID:      i.OrganizationID,
		EquipmentID:         i.EquipmentID,
		Type:                string(i.Type),
		RentalID:            i.RentalID,
		ChecklistResults:    checklist,
		OverallCondition:    string(i.OverallCondition),
		DamageFound:         i.DamageFound,
		DamageDescription:   i.DamageDescription,
		DamageCost:          i.DamageCost,
		MaintenanceRequired: i.MaintenanceRequired,
		MaintenanceNotes:    i.MaintenanceNotes,
		Photos:              photos,
		InspectorID:         i.InspectorID,
		InspectedAt:         i.InspectedAt,
		CreatedAt:           i.CreatedAt,
	}
}

func FromMaintenance(m *entity.MaintenanceRecord) *MaintenanceResponse {
	return &MaintenanceResponse{
		ID:               m.ID,
		OrganizationID:   m.OrganizationID,
		EquipmentID:      m.EquipmentID,
		Source:           string(m.Source),
		InspectionID:     m.InspectionID,
		WorkOrder:        m.WorkOrder,
		Status:           string(m.Status),
		PartsUsed:        m.PartsUsed,
		LaborDescription: m.LaborDescription,
		Cost:             m.Cost,
		HoursAtService:   m.HoursAtService,
		AssignedTo:       m.AssignedTo,
		Notes:            m.Notes,
		CompletedAt:      m.CompletedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ── Indicadores y colas ───────────────────────────────────────────────────────

func FromEquipmentStats(s fleet.EquipmentStats) EquipmentStatsResponse {
	return EquipmentStatsResponse{
		Total:           s.Total,
		Available:       s.Available,
		Rented:          s.Rented,
		Maintenance:     s.Maintenance,
		TotalAssetValue: s.TotalAssetValue,
		UtilizationRate: s.UtilizationRate,
	}
}

func FromRentalStats(s fleet.RentalStats) RentalStatsResponse {
	return RentalStatsResponse{
		Total:        s.Total,
		Active:       s.Active,
		Returned:     s.Returned,
		Overdue:      s.Overdue,
		TotalRevenue: s.TotalRevenue,
	}
}

func FromInspectionStats(s fleet.InspectionStats) InspectionStatsResponse {
	return InspectionStatsResponse{
		Total:                 s.Total,
		PreRental:             s.PreRental,
		PostRental:            s.PostRental,
		Routine:               s.Routine,
		PassedCount:           s.PassedCount,
		NeedsMaintenanceCount: s.NeedsMaintenanceCount,
		DamageFoundCount:      s.DamageFoundCount,
		TotalDamageCost:       s.TotalDamageCost,
	}
}

func FromMaintenanceStats(s fleet.MaintenanceStats) MaintenanceStatsResponse {
	return MaintenanceStatsResponse{
		Total:             s.Total,
		Pending:           s.Pending,
		InProgress:        s.InProgress,
		Completed:         s.Completed,
		TotalCost:         s.TotalCost,
		AvgCompletionTime: s.AvgCompletionTime,
	}
}

func FromInspectionQueue(q fleet.InspectionQueue) InspectionQueueResponse {
	out := InspectionQueueResponse{
		PreRentalDue:          make([]PreRentalDueDTO, 0, len(q.PreRentalDue)),
		PostRentalDue:         make([]PostRentalDueDTO, 0, len(q.PostRentalDue)),
		RoutineOverdue:        make([]RoutineOverdueDTO, 0, len(q.RoutineOverdue)),
		FlaggedFromInspection: make([]FlaggedInspectionDTO, 0, len(q.FlaggedFromInspection)),
	}
	for _, d := range q.PreRentalDue {
		out.PreRentalDue = append(out.PreRentalDue, PreRentalDueDTO{
			RentalID: d.RentalID, EquipmentID: d.EquipmentID,
			EquipmentName: d.EquipmentName, CustomerName: d.CustomerName, StartDate: d.Date,
		})
	}
	for _, d := range q.PostRentalDue {
		out.PostRentalDue = append(out.PostRentalDue, PostRentalDueDTO{
			RentalID: d.RentalID, EquipmentID: d.EquipmentID,
			EquipmentName: d.EquipmentName, CustomerName: d.CustomerName, ReturnDate: d.Date,
		})
	}
	for _, r := range q.RoutineOverdue {
		out.RoutineOverdue = append(out.RoutineOverdue, RoutineOverdueDTO(r))
	}
	for _, f := range q.FlaggedFromInspection {
		out.FlaggedFromInspection = append(out.FlaggedFromInspection, FlaggedInspectionDTO(f))
	}
	return out
}

func workOrderItems(items []fleet.WorkOrderItem) []WorkOrderItemDTO {
	out := make([]WorkOrderItemDTO, 0, len(items))
	for _, w := range items {
		out = append(out, WorkOrderItemDTO{
			ID:            w.RecordID,
			EquipmentID:   w.EquipmentID,
			EquipmentName: w.EquipmentName,
			WorkOrder:     w.WorkOrder,
			InspectionID:  w.InspectionID,
			AssignedTo:    w.AssignedTo,
			Cost:          w.Cost,
			CreatedAt:     w.CreatedAt,
			CompletedAt:   w.CompletedAt,
		})
	}
	return out
}

func FromMaintenanceQueue(q fleet.MaintenanceQueue) MaintenanceQueueResponse {
	out := MaintenanceQueueResponse{
		FlaggedFromInspections: workOrderItems(q.FlaggedFromInspections),
		PreventiveDue:          make([]PreventiveDueDTO, 0, len(q.PreventiveDue)),
		InProgress:             workOrderItems(q.InProgress),
		RecentlyCompleted:      workOrderItems(q.RecentlyCompleted),
	}
	for _, p := range q.PreventiveDue {
		out.PreventiveDue = append(out.PreventiveDue, PreventiveDueDTO{
			EquipmentID:      p.EquipmentID,
			EquipmentName:    p.EquipmentName,
			Source:           string(p.Source),
			NextServiceDate:  p.NextServiceDate,
			NextServiceHours: p.NextServiceHours,
			CurrentHours:     p.CurrentHours,
		})
	}
	return out
}
