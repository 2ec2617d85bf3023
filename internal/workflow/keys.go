package workflow

import (
	"fmt"

	"github.com/google/uuid"
)

// Blob keys are deterministic so a reprocessed plan overwrites its own
// artifacts rather than accumulating orphans. Only the first page is
// rendered and exported; the page number is fixed at 1.
func pageImageKey(userID string, planID uuid.UUID) string {
	return fmt.Sprintf("user-%s/%s/page-1.png", userID, planID)
}

func svgKey(userID string, planID uuid.UUID) string {
	return fmt.Sprintf("user-%s/%s/page-1.svg", userID, planID)
}

func csvKey(userID string, planID uuid.UUID) string {
	return fmt.Sprintf("user-%s/%s/page-1.csv", userID, planID)
}
