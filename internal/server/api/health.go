package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-todolist/internal/server/response"
)

// Health отдаёт метаданные сервиса и состояние бд.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200 {object} models.SuccessResponse{data=models.Health}
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.Svc.Health.Check(r.Context())
	response.Success(w, http.StatusOK, "Service is healthy", toHealthDTO(st))
}
