package records

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc        *Service
	appBaseURL string
}

func NewHandler(svc *Service, appBaseURL string) *Handler {
	return &Handler{svc: svc, appBaseURL: appBaseURL}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/ai")
	g.POST("/transcribe", h.Transcribe)
	g.POST("/summarize/:recordID", h.Summarize)
	g.POST("/extract-info/:recordID", h.ExtractInfo)
	g.GET("/records/patient/:pacienteID", h.ListPatientRecords)
	g.GET("/records/:recordID", h.GetRecord)
	g.GET("/records/:recordID/pdf", h.ExportPDF)
}

func (h *Handler) Transcribe(c echo.Context) error {
	pacienteID, err := uuid.Parse(c.FormValue("paciente_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente_id")
	}
	professionalID, err := uuid.Parse(c.FormValue("professional_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid professional_id")
	}

	upload := &Upload{PacienteID: pacienteID, ProfessionalID: professionalID}
	if v := c.FormValue("agendamento_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid agendamento_id")
		}
		upload.AgendamentoID = &id
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "audio file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()

	upload.FileName = fileHeader.Filename
	upload.ContentType = fileHeader.Header.Get("Content-Type")
	upload.Content, err = io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.svc.Transcribe(c.Request().Context(), upload)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"record_id":     record.ID,
		"transcription": record.Transcription,
	})
}

func (h *Handler) Summarize(c echo.Context) error {
	id, err := uuid.Parse(c.Param("recordID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	summary, err := h.svc.Summarize(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "summary": summary})
}

func (h *Handler) ExtractInfo(c echo.Context) error {
	id, err := uuid.Parse(c.Param("recordID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	info, err := h.svc.ExtractInfo(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "extracted_info": info})
}

func (h *Handler) ListPatientRecords(c echo.Context) error {
	pacienteID, err := uuid.Parse(c.Param("pacienteID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid paciente id")
	}
	items, err := h.svc.ListPatientRecords(c.Request().Context(), pacienteID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []*AudioRecord{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "records": items})
}

func (h *Handler) GetRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("recordID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	record, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Record not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "record": record})
}

func (h *Handler) ExportPDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("recordID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	pdf, err := h.svc.ExportPDF(c.Request().Context(), id, h.appBaseURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Record not found")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="prontuario.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
