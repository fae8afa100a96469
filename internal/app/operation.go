package app

// LabOperation tracks a CLI operation that may mutate the database.
// Operations are created in memory with ID=0. Only DB-mutating commands
// persist them (giving them an auto-increment ID from the database).
type LabOperation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewLabOperation creates a new in-memory lab operation.
func NewLabOperation(operation, parameters string) *LabOperation {
	return &LabOperation{
		Operation:  operation,
		Parameters: parameters,
		Status:     "success",
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *LabOperation) Persisted() bool {
	return op.ID != 0
}
