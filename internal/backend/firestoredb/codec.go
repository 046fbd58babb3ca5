package firestoredb

import (
	"path"

	firestore "google.golang.org/api/firestore/v1"

	"todolist/internal/store"
)

// Zero values are forced onto the wire, otherwise the generated types would
// drop completed=false and an empty text.
func stringValue(s string) firestore.Value {
	return firestore.Value{StringValue: s, ForceSendFields: []string{"StringValue"}}
}

func boolValue(b bool) firestore.Value {
	return firestore.Value{BooleanValue: b, ForceSendFields: []string{"BooleanValue"}}
}

// recordDocument builds the body of a new task document.
func recordDocument(rec store.Record) *firestore.Document {
	return &firestore.Document{Fields: map[string]firestore.Value{
		"text":      stringValue(rec.Text),
		"completed": boolValue(rec.Completed),
		"deadline":  stringValue(rec.Deadline),
	}}
}

// patchDocument carries only the fields p sets; the update mask names the same ones.
func patchDocument(p store.Patch) *firestore.Document {
	fields := make(map[string]firestore.Value, 3)
	if p.Text != nil {
		fields["text"] = stringValue(*p.Text)
	}
	if p.Completed != nil {
		fields["completed"] = boolValue(*p.Completed)
	}
	if p.Deadline != nil {
		fields["deadline"] = stringValue(*p.Deadline)
	}
	return &firestore.Document{Fields: fields}
}

// decodeDocument reads a task from a document. Missing fields decode to
// zero values; the id is the last segment of the document name.
func decodeDocument(doc *firestore.Document) store.Task {
	return store.Task{
		ID:        path.Base(doc.Name),
		Text:      doc.Fields["text"].StringValue,
		Completed: doc.Fields["completed"].BooleanValue,
		Deadline:  doc.Fields["deadline"].StringValue,
	}
}
