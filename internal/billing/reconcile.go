package billing

// ChangeType is the kind of a store change notification.
type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// ChangeEvent is one row change pushed by the store. New carries the row
// for inserts and updates; OldID identifies the deleted row.
type ChangeEvent struct {
	Type  ChangeType `json:"eventType"`
	New   RawRecord  `json:"new,omitempty"`
	OldID int64      `json:"oldId,omitempty"`
}

// InsertEvent wraps a stored trip as an INSERT notification.
func InsertEvent(t Trip) ChangeEvent { return ChangeEvent{Type: ChangeInsert, New: t.Raw()} }

// UpdateEvent wraps a stored trip as an UPDATE notification.
func UpdateEvent(t Trip) ChangeEvent { return ChangeEvent{Type: ChangeUpdate, New: t.Raw()} }

// DeleteEvent is the notification for a removed trip.
func DeleteEvent(id int64) ChangeEvent { return ChangeEvent{Type: ChangeDelete, OldID: id} }

// ApplyChange folds one event into a trip list and returns a new slice.
// Inserts replace an existing trip with the same id or else go first;
// updates replace by id; deletes remove by id. Unknown events and events
// without a usable row leave the list as it was.
func ApplyChange(list []Trip, ev ChangeEvent) []Trip {
	switch ev.Type {
	case ChangeInsert:
		t := Normalize(ev.New)
		if t == nil {
			return cloneTrips(list)
		}
		if i := indexOf(list, t.ID); i >= 0 && t.ID != 0 {
			out := cloneTrips(list)
			out[i] = *t
			return out
		}
		out := make([]Trip, 0, len(list)+1)
		out = append(out, *t)
		return append(out, list...)
	case ChangeUpdate:
		t := Normalize(ev.New)
		out := cloneTrips(list)
		if t == nil {
			return out
		}
		if i := indexOf(out, t.ID); i >= 0 {
			out[i] = *t
		}
		return out
	case ChangeDelete:
		out := make([]Trip, 0, len(list))
		for _, t := range list {
			if t.ID != ev.OldID {
				out = append(out, t)
			}
		}
		return out
	}
	return cloneTrips(list)
}

func indexOf(list []Trip, id int64) int {
	for i, t := range list {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTrips(list []Trip) []Trip {
	out := make([]Trip, len(list))
	copy(out, list)
	return out
}
