package storage

import (
	"github.com/renato0307/keebs/internal/domain"
)

// overrideModelsToMap converts override rows to a domain.ShortcutMap
func overrideModelsToMap(models []OverrideModel) domain.ShortcutMap {
	result := make(domain.ShortcutMap, len(models))
	for _, m := range models {
		result[m.ID] = m.Shortcut
	}
	return result
}
