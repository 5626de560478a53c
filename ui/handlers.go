package ui

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopower/app"
	"gopower/domain/study"
	"gopower/internal/errors"
)

func (s *Server) handleIndex(c *gin.Context) {
	data := gin.H{
		"Guide":              s.guideHTML,
		"StudentsPerTeacher": s.defaults.StudentsPerTeacher,
		"SweepGrid":          study.SweepGrid,
		"TargetPower":        study.TargetPower,
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.templates.ExecuteTemplate(c.Writer, "index.html", data); err != nil {
		log.Printf("[ui] template render failed: %v", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (s *Server) handlePower(c *gin.Context) {
	var req app.PowerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	s.applyDesignDefaults(&req.Design)

	est, err := s.service.EstimatePower(req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (s *Server) handleSampleSize(c *gin.Context) {
	var req app.SampleSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	if req.StudentsPerTeacher == 0 {
		req.StudentsPerTeacher = s.defaults.StudentsPerTeacher
	}

	est, err := s.service.EstimateSampleSize(req)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, est)
}

func (s *Server) handleSweep(c *gin.Context) {
	var design study.Design
	if err := c.ShouldBindJSON(&design); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	s.applyDesignDefaults(&design)

	result, err := s.service.PowerSweep(design)
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSweepExport(c *gin.Context) {
	var design study.Design
	if err := c.ShouldBindJSON(&design); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}
	s.applyDesignDefaults(&design)

	result, err := s.service.PowerSweep(design)
	if err != nil {
		s.renderError(c, err)
		return
	}

	workbook, err := buildSweepWorkbook(result)
	if err != nil {
		log.Printf("[ui] sweep export failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="power-sweep-%s.xlsx"`, result.SweepID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		log.Printf("[ui] sweep export write failed: %v", err)
	}
}

func (s *Server) applyDesignDefaults(d *study.Design) {
	if d.StudentsPerTeacher == 0 {
		d.StudentsPerTeacher = s.defaults.StudentsPerTeacher
	}
}

// renderError maps the core error taxonomy onto HTTP statuses. The core
// returns typed failures; the shell decides how they render.
func (s *Server) renderError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeInvalidRange:
		status = http.StatusBadRequest
	case errors.CodeDegenerateInput:
		status = http.StatusUnprocessableEntity
	case errors.CodeSolverFailure:
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
