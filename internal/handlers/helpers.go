package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"villa_backend/pkg/utils"
)

// ListResponse is the envelope for paginated collections.
type ListResponse struct {
	Data     interface{} `json:"data"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func parseIDParam(c *gin.Context, param, resource string) (int64, bool) {
	idStr := c.Param(param)
	id, err := utils.StrToInt64(idStr)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+resource+" ID format.", "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func respondBindError(c *gin.Context, op string, err error) {
	utils.LogError(err, op+": Failed to bind request")
	utils.RespondValidationFailed(c, err.Error())
}

func respondNotFound(c *gin.Context, message string, err error) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, message, err.Error()))
}

func respondConflict(c *gin.Context, message string, err error) {
	utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, message, err.Error()))
}
