package entity

// ChangeNotification reports the full content of a field whose text changed
// during a batch. At most one is produced per field per batch.
type ChangeNotification struct {
	FieldID FieldID
	Text    string
}

// NumberChanged reports the clamped value of a number input.
type NumberChanged struct {
	FieldID FieldID
	Value   int64
}
