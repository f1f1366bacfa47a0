package intelligence

import "github.com/alexanderramin/worklens/internal/domain"

// HeaderMismatch reports whether the columns the model identified overlap
// the actual CSV header by less than half. That usually means the upload
// had title rows above the real header, so the dashboard asks for a clean
// reupload instead of filtering against garbage columns. A warning, not an
// error: the threshold is deliberately loose.
func HeaderMismatch(reported, actual []string) bool {
	if len(reported) == 0 {
		return false
	}
	return float64(domain.HeaderOverlap(reported, actual)) < float64(len(reported))/2
}
