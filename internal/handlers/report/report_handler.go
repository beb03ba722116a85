// internal/handlers/report/report_handler.go
package report

import (
	"errors"
	"net/http"

	domain "github.com/tomraj007/txnportal/internal/domain/report"
	xerrors "github.com/tomraj007/txnportal/internal/pkg/errors"
	reportService "github.com/tomraj007/txnportal/internal/service/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportHandler struct {
	reportService *reportService.ReportService
	logger        *zap.Logger
}

func NewReportHandler(svc *reportService.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: svc,
		logger:        logger,
	}
}

// TransactionReport serves one filtered report page. The request rides in
// a transactionReportDto envelope.
func (h *ReportHandler) TransactionReport(c *gin.Context) {
	var envelope domain.Envelope
	if err := c.ShouldBindJSON(&envelope); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	resp, err := h.reportService.TransactionReport(c.Request.Context(), &envelope.TransactionReportDto)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		h.logger.Error("transaction report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load transaction report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
