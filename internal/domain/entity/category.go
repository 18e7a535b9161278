package entity

// Category agrupa productos. El nombre es único (comparación exacta, sensible a mayúsculas).
type Category struct {
	ID          int64
	Name        string
	Description string
}
