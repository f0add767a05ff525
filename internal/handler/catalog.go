package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) catalogFaculties(c *gin.Context) {
	faculties, err := h.services.Catalog.Faculties(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, faculties)
}

func (h *Handler) catalogDepartments(c *gin.Context) {
	facultyID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	departments, err := h.services.Catalog.Departments(c.Request.Context(), facultyID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, departments)
}

func (h *Handler) catalogPapers(c *gin.Context) {
	departmentID, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return
	}

	level, err0 := optionalIntQuery(c, "level")
	semester, err1 := optionalIntQuery(c, "semester")
	if err0 != nil || err1 != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errLevelMustBeInt.Error()))
		return
	}

	papers, err := h.services.Catalog.Papers(c.Request.Context(), departmentID, level, semester)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, papers)
}

func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
