package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/fieldops/services/inventory/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"inventory item not found"`
} // @name ErrorResponse

// ItemResponse is the JSON shape of a catalog item.
type ItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code" example:"EQ-01"`
	Description  string    `json:"description"`
	Unit         string    `json:"unit" example:"unidades"`
	Type         string    `json:"type" example:"equipment"`
	CurrentStock int       `json:"current_stock"`
	MinimumStock int       `json:"minimum_stock"`
	CreatedAt    time.Time `json:"created_at"`
} // @name ItemResponse

// AssignmentResponse mirrors models.Assignment.
type AssignmentResponse struct {
	CrewID     uuid.UUID `json:"crew_id"`
	OrderID    string    `json:"order_id,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
} // @name AssignmentResponse

// InstallationResponse mirrors models.Installation.
type InstallationResponse struct {
	OrderID       string    `json:"order_id"`
	InstalledDate time.Time `json:"installed_date"`
	Location      string    `json:"location,omitempty"`
} // @name InstallationResponse

// InstanceResponse is the JSON shape of one serialized equipment unit.
type InstanceResponse struct {
	ItemID       uuid.UUID             `json:"item_id"`
	UniqueID     string                `json:"unique_id" example:"SN001"`
	SerialNumber string                `json:"serial_number,omitempty"`
	MACAddress   string                `json:"mac_address,omitempty"`
	Status       string                `json:"status" example:"in-stock"`
	AssignedTo   *AssignmentResponse   `json:"assigned_to,omitempty"`
	InstalledAt  *InstallationResponse `json:"installed_at,omitempty"`
	Notes        string                `json:"notes,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
} // @name InstanceResponse

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		Code:         item.Code.String(),
		Description:  item.Description,
		Unit:         item.Unit,
		Type:         string(item.Type),
		CurrentStock: item.CurrentStock,
		MinimumStock: item.MinimumStock,
		CreatedAt:    item.CreatedAt,
	}
}

func toInstanceResponse(inst *models.Instance) InstanceResponse {
	resp := InstanceResponse{
		ItemID:       inst.ItemID,
		UniqueID:     inst.UniqueID,
		SerialNumber: inst.SerialNumber,
		MACAddress:   inst.MACAddress,
		Status:       string(inst.Status),
		Notes:        inst.Notes,
		CreatedAt:    inst.CreatedAt,
	}
	if inst.Assignment != nil {
		resp.AssignedTo = &AssignmentResponse{
			CrewID:     inst.Assignment.CrewID,
			OrderID:    inst.Assignment.OrderID,
			AssignedAt: inst.Assignment.AssignedAt,
		}
	}
	if inst.Installation != nil {
		resp.InstalledAt = &InstallationResponse{
			OrderID:       inst.Installation.OrderID,
			InstalledDate: inst.Installation.InstalledDate,
			Location:      inst.Installation.Location,
		}
	}
	return resp
}

func toInstanceResponses(instances []*models.Instance) []InstanceResponse {
	out := make([]InstanceResponse, len(instances))
	for i, inst := range instances {
		out[i] = toInstanceResponse(inst)
	}
	return out
}
