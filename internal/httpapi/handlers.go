package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/monstermash2008/time-range/internal/domain"
	"github.com/monstermash2008/time-range/internal/hours"
)

// Handler serves the time and work-hours endpoints.
type Handler struct {
	hours *hours.Service
	log   *zap.Logger
}

func NewHandler(svc *hours.Service, log *zap.Logger) *Handler {
	return &Handler{hours: svc, log: log}
}

type timeView struct {
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Display string `json:"display"`
}

func viewOf(t *domain.Time) *timeView {
	if t == nil {
		return nil
	}
	return &timeView{Hour: t.Hour, Minute: t.Minute, Display: t.String()}
}

type reportView struct {
	From   *timeView `json:"from"`
	To     *timeView `json:"to"`
	Valid  bool      `json:"valid"`
	Errors []string  `json:"errors"`
}

func viewOfReport(rep hours.Report) reportView {
	errs := rep.Messages()
	if errs == nil {
		errs = []string{}
	}
	return reportView{
		From:   viewOf(rep.Range.From),
		To:     viewOf(rep.Range.To),
		Valid:  rep.Range.Valid(),
		Errors: errs,
	}
}

// ParseTime handles GET /api/time/parse?q=930pm.
func (h *Handler) ParseTime(c *gin.Context) {
	q := c.Query("q")
	t, err := domain.Parse(q)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, viewOf(&t))
}

// FormatTime handles POST /api/time/format with {"hour":13,"minute":30}.
func (h *Handler) FormatTime(c *gin.Context) {
	var input struct {
		Hour   *int `json:"hour" binding:"required"`
		Minute *int `json:"minute" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	s, err := domain.Format(domain.Time{Hour: *input.Hour, Minute: *input.Minute})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"display": s})
}

type rangeInput struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ValidateRange handles POST /api/range/validate with raw from/to text.
func (h *Handler) ValidateRange(c *gin.Context) {
	var input rangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, viewOfReport(hours.Evaluate(input.From, input.To)))
}

// ParseRange handles GET /api/range/parse?q=9am-5pm.
func (h *Handler) ParseRange(c *gin.Context) {
	r, err := domain.ParseRange(c.Query("q"))
	var fe *domain.FieldError
	switch {
	case errors.As(err, &fe):
		rep := hours.Report{Range: r, FromError: fe.Has(domain.FieldFrom), ToError: fe.Has(domain.FieldTo)}
		c.JSON(http.StatusUnprocessableEntity, viewOfReport(rep))
		return
	case err != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	rep := hours.Report{Range: r, RangeError: r.Complete() && !r.Valid()}
	c.JSON(http.StatusOK, viewOfReport(rep))
}

func chatIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("chatID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return 0, false
	}
	return id, true
}

// GetHours handles GET /api/hours/:chatID.
func (h *Handler) GetHours(c *gin.Context) {
	id, ok := chatIDParam(c)
	if !ok {
		return
	}
	rep, err := h.hours.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Error("get hours failed", zap.Error(err), zap.Int64("chatID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hours"})
		return
	}
	c.JSON(http.StatusOK, viewOfReport(rep))
}

// PutHours handles PUT /api/hours/:chatID with raw from/to text.
// Field errors are reported in the body; storage keeps the previous value
// for a field that did not parse.
func (h *Handler) PutHours(c *gin.Context) {
	id, ok := chatIDParam(c)
	if !ok {
		return
	}
	var input rangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rep, err := h.hours.Set(c.Request.Context(), id, input.From, input.To)
	if err != nil {
		h.log.Error("set hours failed", zap.Error(err), zap.Int64("chatID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save hours"})
		return
	}
	status := http.StatusOK
	if rep.FromError || rep.ToError {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, viewOfReport(rep))
}

// DeleteHours handles DELETE /api/hours/:chatID.
func (h *Handler) DeleteHours(c *gin.Context) {
	id, ok := chatIDParam(c)
	if !ok {
		return
	}
	if err := h.hours.Reset(c.Request.Context(), id); err != nil {
		h.log.Error("reset hours failed", zap.Error(err), zap.Int64("chatID", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset hours"})
		return
	}
	c.Status(http.StatusNoContent)
}
