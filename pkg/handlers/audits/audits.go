package audits

import (
	"context"
	"net/http"

	"github.com/chris/hive-timebank/pkg/audit"
	"github.com/chris/hive-timebank/pkg/handlers/respond"
	"github.com/chris/hive-timebank/pkg/mapping"
)

// Auditor runs an invariant audit.
type Auditor interface {
	Run(ctx context.Context) (*audit.Report, error)
}

// AuditHandler serves audit reports.
type AuditHandler struct {
	Auditor Auditor
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditor Auditor) *AuditHandler {
	return &AuditHandler{Auditor: auditor}
}

// GetAudit runs an audit and returns its report. A report with violations is
// still a successful response; callers check its ok field.
func (h *AuditHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	report, err := h.Auditor.Run(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, mapping.ToApiAuditReport(report))
}
