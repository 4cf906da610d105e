// Package diff computes the changed-field snapshots recorded in the audit
// trail.
package diff

// Changed compares two field maps with the same key set and returns the old
// and new values of every key whose value differs. Both results are nil when
// the maps agree, so callers can skip the audit write on a no-op edit.
func Changed(oldData, newData map[string]string) (map[string]string, map[string]string) {
	oldValues := map[string]string{}
	newValues := map[string]string{}
	for key, newVal := range newData {
		if oldData[key] != newVal {
			oldValues[key] = oldData[key]
			newValues[key] = newVal
		}
	}
	if len(newValues) == 0 {
		return nil, nil
	}
	return oldValues, newValues
}
