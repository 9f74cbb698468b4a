package handlers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func newEntityID(prefix string) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s_%s", prefix, hex[:8])
}
