package format

import "github.com/paoluke/tienda/app/models"

type StatusInfo struct {
	Label string
	Color string
}

var statusInfo = map[models.ProductStatus]StatusInfo{
	models.StatusAvailable: {Label: "Disponible", Color: "#10B981"},
	models.StatusReserved:  {Label: "Reservado", Color: "#F59E0B"},
	models.StatusSold:      {Label: "Vendido", Color: "#EF4444"},
}

var unknownStatus = StatusInfo{Label: "Desconocido", Color: "#6B7280"}

func StatusPresentation(status models.ProductStatus) StatusInfo {
	if info, ok := statusInfo[status]; ok {
		return info
	}
	return unknownStatus
}
