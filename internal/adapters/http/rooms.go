package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/signtalk/signtalk/internal/app"
	"github.com/signtalk/signtalk/internal/domain"
)

type RoomHandler struct {
	Orch *app.Orchestrator
}

type roomListItem struct {
	Code      domain.RoomCode `json:"code"`
	Name      domain.RoomName `json:"name"`
	Icon      string          `json:"icon"`
	UserCount int             `json:"userCount"`
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	infos := h.Orch.Rooms.List()
	out := make([]roomListItem, 0, len(infos))
	for _, info := range infos {
		out = append(out, roomListItem{Code: info.Code, Name: info.Name, Icon: "F", UserCount: info.MemberCount})
	}
	c.JSON(http.StatusOK, out)
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Room name and code are required"})
		return
	}
	name := req.Name
	if len(name) > domain.MaxRoomNameLen {
		name = name[:domain.MaxRoomNameLen]
	}

	err := h.Orch.Rooms.Create(domain.RoomCode(req.Code), domain.RoomName(name))
	if errors.Is(err, domain.ErrRoomExists) {
		c.JSON(http.StatusConflict, gin.H{"message": "Room already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Room created", "code": req.Code, "name": name})
}
