package model

// Todo is one record returned by the list endpoint.
// Every field is passed through as received; nothing here mutates it.
type Todo struct {
	ID        int    `json:"id"`
	OwnerID   int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Status suffixes printed after a title.
const (
	SuffixCompleted    = " - Completed"
	SuffixNotCompleted = " - Not Completed"
)

// Suffix is the status text shown after the title.
func (t Todo) Suffix() string {
	if t.Completed {
		return SuffixCompleted
	}
	return SuffixNotCompleted
}

// Stats counts completed and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
